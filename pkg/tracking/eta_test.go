package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/busmitra/busmitra/pkg/busdf"
)

func newTestEstimator(log PositionLog) *EtaEstimator {
	trips := &fakeTripRepository{trips: map[string]*busdf.Trip{
		"trip-1": {PrimaryIdentifier: "trip-1", BusID: "bus-1", RouteID: "route-1"},
	}}

	routes := &fakeRouteRepository{routes: map[string]*busdf.Route{
		"route-1": {
			PrimaryIdentifier: "route-1",
			Waypoints: []busdf.Waypoint{
				{Sequence: 1, StopID: "origin", Name: "Origin", Latitude: 0, Longitude: 0},
				{Sequence: 2, StopID: "target", Name: "Target", Latitude: 0, Longitude: 1},
			},
		},
	}}

	return NewEtaEstimator(trips, routes, log, nil)
}

func TestEstimateWithStationaryBusFallsBackToAverageSpeed(t *testing.T) {
	stationary := report("bus-1", "2024-01-01", "10:00:00")
	stationary.Location = busdf.Location{Latitude: 0, Longitude: 0}
	stationary.SpeedKmh = 0

	estimator := newTestEstimator(&fakePositionLog{reports: []busdf.PositionReport{stationary}})
	now := time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)
	estimator.now = func() time.Time { return now }

	result, err := estimator.Estimate(context.Background(), "trip-1", "target")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if result.AverageSpeedKmh != 40 {
		t.Errorf("expected fallback speed 40, got %f", result.AverageSpeedKmh)
	}

	// ~111.19 km at 40 km/h is 167 minutes
	if result.EstimatedTimeMinutes != 167 {
		t.Errorf("expected 167 minutes, got %d", result.EstimatedTimeMinutes)
	}

	if !result.EstimatedArrival.After(now) {
		t.Error("estimated arrival should be in the future")
	}

	if result.Confidence != "MEDIUM" {
		t.Errorf("expected MEDIUM confidence, got %s", result.Confidence)
	}

	if result.StopName != "Target" || result.StopID != "target" {
		t.Errorf("wrong stop identity: %s %s", result.StopID, result.StopName)
	}
}

func TestEstimateUsesReportedSpeed(t *testing.T) {
	moving := report("bus-1", "2024-01-01", "10:00:00")
	moving.Location = busdf.Location{Latitude: 0, Longitude: 0}
	moving.SpeedKmh = 55.5

	estimator := newTestEstimator(&fakePositionLog{reports: []busdf.PositionReport{moving}})

	result, err := estimator.Estimate(context.Background(), "trip-1", "target")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if result.AverageSpeedKmh != 55.5 {
		t.Errorf("expected 55.5, got %f", result.AverageSpeedKmh)
	}
}

func TestEstimateResolvesStopBySequence(t *testing.T) {
	current := report("bus-1", "2024-01-01", "10:00:00")
	estimator := newTestEstimator(&fakePositionLog{reports: []busdf.PositionReport{current}})

	result, err := estimator.Estimate(context.Background(), "trip-1", "2")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if result.StopName != "Target" {
		t.Errorf("expected Target, got %s", result.StopName)
	}
}

func TestEstimateNotFoundCases(t *testing.T) {
	tests := []struct {
		name            string
		tripID          string
		stopID          string
		reports         []busdf.PositionReport
		expectedSubject string
	}{
		{
			name:   "unknown trip",
			tripID: "trip-unknown", stopID: "target",
			expectedSubject: "trip",
		},
		{
			name:   "unknown stop",
			tripID: "trip-1", stopID: "not_on_route",
			reports:         []busdf.PositionReport{report("bus-1", "2024-01-01", "10:00:00")},
			expectedSubject: "stop",
		},
		{
			name:   "no tracking data",
			tripID: "trip-1", stopID: "target",
			expectedSubject: "tracking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimator := newTestEstimator(&fakePositionLog{reports: tt.reports})

			_, err := estimator.Estimate(context.Background(), tt.tripID, tt.stopID)

			var notFound NotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}

			if notFound.Subject != tt.expectedSubject {
				t.Errorf("expected subject %s, got %s", tt.expectedSubject, notFound.Subject)
			}
		})
	}
}

func TestEstimateUsesLatestReport(t *testing.T) {
	older := report("bus-1", "2024-01-01", "08:00:00")
	older.Location = busdf.Location{Latitude: 0, Longitude: 0.5}

	newer := report("bus-1", "2024-01-01", "09:30:00")
	newer.Location = busdf.Location{Latitude: 0, Longitude: 0}
	newer.SpeedKmh = 40

	estimator := newTestEstimator(&fakePositionLog{reports: []busdf.PositionReport{older, newer}})

	result, err := estimator.Estimate(context.Background(), "trip-1", "target")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if result.CurrentLocation.RecordedTime != "09:30:00" {
		t.Errorf("expected the 09:30:00 report, got %s", result.CurrentLocation.RecordedTime)
	}

	// Full degree of longitude from the newer position
	if result.DistanceToStopKm < 110 || result.DistanceToStopKm > 112 {
		t.Errorf("expected ~111.19 km, got %f", result.DistanceToStopKm)
	}
}
