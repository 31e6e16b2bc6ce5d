package tracking

import (
	"context"
	"math"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	DefaultSearchRadiusKm   = 10
	DefaultSearchMaxResults = 20
)

type NearbyBus struct {
	Position   busdf.PositionReport `json:"tracking" groups:"basic"`
	DistanceKm float64              `json:"distance" groups:"basic"`
}

// ProximitySearch ranks buses by distance from a reference point using each
// bus's latest known position.
type ProximitySearch struct {
	log PositionLog
}

func NewProximitySearch(log PositionLog) *ProximitySearch {
	return &ProximitySearch{log: log}
}

// FindNearest returns the buses whose latest position lies within radiusKm of
// the reference point, closest first, capped at maxResults. A bus with stale
// data still participates as long as that record is its most recent one. An
// empty result is a valid answer, not an error.
func (search *ProximitySearch) FindNearest(ctx context.Context, refLat float64, refLon float64, radiusKm float64, maxResults int) ([]NearbyBus, error) {
	if math.IsNaN(refLat) || math.IsInf(refLat, 0) || math.IsNaN(refLon) || math.IsInf(refLon, 0) {
		return nil, ValidationError{Message: "Latitude and longitude are required"}
	}

	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}
	if maxResults <= 0 {
		maxResults = DefaultSearchMaxResults
	}

	timer := prometheus.NewTimer(nearestSearchDuration)
	defer timer.ObserveDuration()

	reports, err := search.log.QueryAll(ctx)
	if err != nil {
		return nil, err
	}

	latestPerBus := LatestPerBus(reports)

	nearby := []NearbyBus{}
	for _, report := range maps.Values(latestPerBus) {
		distance := busdf.Haversine(refLat, refLon, report.Location.Latitude, report.Location.Longitude)

		if distance <= radiusKm {
			nearby = append(nearby, NearbyBus{Position: report, DistanceKm: distance})
		}
	}

	slices.SortStableFunc(nearby, func(a NearbyBus, b NearbyBus) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		}
		return 0
	})

	if len(nearby) > maxResults {
		nearby = nearby[:maxResults]
	}

	return nearby, nil
}

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
