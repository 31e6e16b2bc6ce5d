package tracking

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/busmitra/busmitra/pkg/busdf"
)

// positionedReport places a bus roughly distanceKm north of the equator
// reference point (one degree of latitude is ~111.19 km).
func positionedReport(busID string, distanceKm float64) busdf.PositionReport {
	r := report(busID, "2024-01-01", "10:00:00")
	r.Location = busdf.Location{Latitude: distanceKm / 111.19, Longitude: 0}
	return r
}

func TestFindNearestFiltersAndOrders(t *testing.T) {
	log := &fakePositionLog{reports: []busdf.PositionReport{
		positionedReport("bus-far", 15),
		positionedReport("bus-close", 2),
		positionedReport("bus-mid", 8),
	}}

	search := NewProximitySearch(log)

	nearby, err := search.FindNearest(context.Background(), 0, 0, 10, 20)
	if err != nil {
		t.Fatalf("FindNearest: %v", err)
	}

	if len(nearby) != 2 {
		t.Fatalf("expected 2 buses within radius, got %d", len(nearby))
	}

	if nearby[0].Position.BusID != "bus-close" || nearby[1].Position.BusID != "bus-mid" {
		t.Errorf("wrong order: %s, %s", nearby[0].Position.BusID, nearby[1].Position.BusID)
	}

	if math.Abs(nearby[0].DistanceKm-2) > 0.1 {
		t.Errorf("expected ~2 km, got %f", nearby[0].DistanceKm)
	}
}

func TestFindNearestUsesLatestReportPerBus(t *testing.T) {
	older := positionedReport("bus-1", 2)
	older.RecordedTime = "08:00:00"

	newer := positionedReport("bus-1", 50)
	newer.RecordedTime = "09:00:00"

	log := &fakePositionLog{reports: []busdf.PositionReport{older, newer}}
	search := NewProximitySearch(log)

	nearby, err := search.FindNearest(context.Background(), 0, 0, 10, 20)
	if err != nil {
		t.Fatalf("FindNearest: %v", err)
	}

	// The bus's latest position is outside the radius, so its older position
	// inside the radius must not resurrect it.
	if len(nearby) != 0 {
		t.Errorf("expected no buses, got %d", len(nearby))
	}
}

func TestFindNearestTruncatesToMaxResults(t *testing.T) {
	log := &fakePositionLog{reports: []busdf.PositionReport{
		positionedReport("bus-1", 1),
		positionedReport("bus-2", 2),
		positionedReport("bus-3", 3),
	}}

	search := NewProximitySearch(log)

	nearby, err := search.FindNearest(context.Background(), 0, 0, 10, 2)
	if err != nil {
		t.Fatalf("FindNearest: %v", err)
	}

	if len(nearby) != 2 {
		t.Errorf("expected 2 results, got %d", len(nearby))
	}
}

func TestFindNearestEmptyRadiusIsNotAnError(t *testing.T) {
	log := &fakePositionLog{reports: []busdf.PositionReport{
		positionedReport("bus-1", 500),
	}}

	search := NewProximitySearch(log)

	nearby, err := search.FindNearest(context.Background(), 0, 0, 10, 20)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(nearby) != 0 {
		t.Errorf("expected empty result, got %d entries", len(nearby))
	}
}

func TestFindNearestRejectsNonFiniteCoordinates(t *testing.T) {
	search := NewProximitySearch(&fakePositionLog{})

	tests := []struct {
		name     string
		lat, lon float64
	}{
		{name: "nan latitude", lat: math.NaN(), lon: 79.8},
		{name: "nan longitude", lat: 6.9, lon: math.NaN()},
		{name: "infinite latitude", lat: math.Inf(1), lon: 79.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := search.FindNearest(context.Background(), tt.lat, tt.lon, 10, 20)

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestFindNearestPropagatesStoreFailure(t *testing.T) {
	log := &fakePositionLog{queryErr: StoreError{Operation: "query all reports", Err: context.Canceled}}
	search := NewProximitySearch(log)

	_, err := search.FindNearest(context.Background(), 0, 0, 10, 20)

	var storeErr StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
