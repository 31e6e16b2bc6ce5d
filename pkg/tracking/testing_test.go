package tracking

import (
	"context"
	"time"

	"github.com/busmitra/busmitra/pkg/busdf"
)

// fakePositionLog is an in-memory PositionLog for exercising the read paths
// without a live store.
type fakePositionLog struct {
	reports []busdf.PositionReport

	appendErr error
	queryErr  error

	appended []busdf.PositionReport
}

func (fake *fakePositionLog) Append(ctx context.Context, report *busdf.PositionReport) (string, error) {
	if fake.appendErr != nil {
		return "", fake.appendErr
	}

	fake.appended = append(fake.appended, *report)
	return "report-1", nil
}

func (fake *fakePositionLog) QueryByBus(ctx context.Context, busID string, since *time.Time) ([]busdf.PositionReport, error) {
	if fake.queryErr != nil {
		return nil, fake.queryErr
	}

	matched := []busdf.PositionReport{}
	for _, report := range fake.reports {
		if report.BusID != busID {
			continue
		}

		if since != nil {
			recordedAt, err := report.RecordedAt()
			if err != nil || recordedAt.Time().Before(*since) {
				continue
			}
		}

		matched = append(matched, report)
	}

	return matched, nil
}

func (fake *fakePositionLog) QueryByRoute(ctx context.Context, routeID string) ([]busdf.PositionReport, error) {
	if fake.queryErr != nil {
		return nil, fake.queryErr
	}

	matched := []busdf.PositionReport{}
	for _, report := range fake.reports {
		if report.RouteID == routeID {
			matched = append(matched, report)
		}
	}

	return matched, nil
}

func (fake *fakePositionLog) QueryAll(ctx context.Context) ([]busdf.PositionReport, error) {
	if fake.queryErr != nil {
		return nil, fake.queryErr
	}

	return fake.reports, nil
}

type fakeTripRepository struct {
	trips map[string]*busdf.Trip
}

func (fake *fakeTripRepository) Trip(ctx context.Context, tripID string) (*busdf.Trip, error) {
	trip, found := fake.trips[tripID]
	if !found {
		return nil, NotFoundError{Subject: "trip", Message: "Trip not found"}
	}

	return trip, nil
}

type fakeRouteRepository struct {
	routes map[string]*busdf.Route
}

func (fake *fakeRouteRepository) Route(ctx context.Context, routeID string) (*busdf.Route, error) {
	route, found := fake.routes[routeID]
	if !found {
		return nil, NotFoundError{Subject: "route", Message: "Route not found"}
	}

	return route, nil
}

func report(busID string, date string, timeOfDay string) busdf.PositionReport {
	return busdf.PositionReport{
		BusID:        busID,
		RouteID:      "route-1",
		RecordedDate: date,
		RecordedTime: timeOfDay,
	}
}
