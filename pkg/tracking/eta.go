package tracking

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// FallbackSpeedKmh is assumed when the bus is stationary or its speed is
// unreported, so a projection never divides by zero.
const FallbackSpeedKmh = 40

const routeCacheExpiration = 5 * time.Minute

type EtaResult struct {
	TripID   string `json:"tripId" groups:"basic"`
	StopID   string `json:"stopId" groups:"basic"`
	StopName string `json:"stopName" groups:"basic"`

	CurrentLocation EtaLocation `json:"currentLocation" groups:"basic"`

	DistanceToStopKm     float64   `json:"distanceToStop" groups:"basic"`
	AverageSpeedKmh      float64   `json:"averageSpeed" groups:"basic"`
	EstimatedTimeMinutes int       `json:"estimatedTimeMinutes" groups:"basic"`
	EstimatedArrival     time.Time `json:"estimatedArrival" groups:"basic"`

	Confidence string `json:"confidence" groups:"basic"`
}

type EtaLocation struct {
	Latitude     float64 `json:"latitude" groups:"basic"`
	Longitude    float64 `json:"longitude" groups:"basic"`
	RecordedDate string  `json:"createdDate" groups:"basic"`
	RecordedTime string  `json:"createdTime" groups:"basic"`
}

// EtaEstimator projects a bus's arrival time at a route stop from its latest
// known position. It is a projection, not a simulation: straight-line
// distance at constant current speed, no route following and no traffic
// model.
type EtaEstimator struct {
	trips  TripRepository
	routes RouteRepository
	log    PositionLog

	routeCache *cache.Cache[*busdf.Route]

	now func() time.Time
}

func NewEtaEstimator(trips TripRepository, routes RouteRepository, log PositionLog, redisClient *redis.Client) *EtaEstimator {
	estimator := &EtaEstimator{
		trips:  trips,
		routes: routes,
		log:    log,
		now:    time.Now,
	}

	if redisClient != nil {
		redisStore := redisstore.NewRedis(redisClient, store.WithExpiration(routeCacheExpiration))
		estimator.routeCache = cache.New[*busdf.Route](redisStore)
	}

	return estimator
}

func (estimator *EtaEstimator) Estimate(ctx context.Context, tripID string, stopID string) (*EtaResult, error) {
	trip, err := estimator.trips.Trip(ctx, tripID)
	if err != nil {
		etaRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	route, err := estimator.route(ctx, trip.RouteID)
	if err != nil {
		etaRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	targetStop := route.FindWaypoint(stopID)
	if targetStop == nil {
		etaRequests.WithLabelValues("error").Inc()
		return nil, NotFoundError{Subject: "stop", Message: "Stop not found on this route"}
	}

	reports, err := estimator.log.QueryByBus(ctx, trip.BusID, nil)
	if err != nil {
		etaRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	latestReport, err := Latest(reports)
	if err != nil {
		etaRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	distanceToStop := busdf.Haversine(
		latestReport.Location.Latitude, latestReport.Location.Longitude,
		targetStop.Latitude, targetStop.Longitude,
	)

	effectiveSpeed := latestReport.SpeedKmh
	if effectiveSpeed <= 0 {
		effectiveSpeed = FallbackSpeedKmh
	}

	etaMinutes := (distanceToStop / effectiveSpeed) * 60

	etaRequests.WithLabelValues("ok").Inc()

	return &EtaResult{
		TripID:   tripID,
		StopID:   targetStop.Identifier(),
		StopName: targetStop.Name,
		CurrentLocation: EtaLocation{
			Latitude:     latestReport.Location.Latitude,
			Longitude:    latestReport.Location.Longitude,
			RecordedDate: latestReport.RecordedDate,
			RecordedTime: latestReport.RecordedTime,
		},
		DistanceToStopKm:     roundTwoDecimals(distanceToStop),
		AverageSpeedKmh:      roundTwoDecimals(effectiveSpeed),
		EstimatedTimeMinutes: int(math.Round(etaMinutes)),
		EstimatedArrival:     estimator.now().Add(time.Duration(etaMinutes * float64(time.Minute))),
		// No observed signal varies this yet; a real model would derive it
		// from report staleness and accuracy.
		Confidence: "MEDIUM",
	}, nil
}

func (estimator *EtaEstimator) route(ctx context.Context, routeID string) (*busdf.Route, error) {
	cacheKey := fmt.Sprintf("route:%s", routeID)

	if estimator.routeCache != nil {
		if cached, err := estimator.routeCache.Get(ctx, cacheKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	route, err := estimator.routes.Route(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if estimator.routeCache != nil {
		if err := estimator.routeCache.Set(ctx, cacheKey, route); err != nil {
			log.Debug().Err(err).Str("route", routeID).Msg("Failed to cache route")
		}
	}

	return route, nil
}
