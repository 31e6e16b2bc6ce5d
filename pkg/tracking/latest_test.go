package tracking

import (
	"errors"
	"testing"

	"github.com/busmitra/busmitra/pkg/busdf"
)

func TestLatestSelectsMostRecentAcrossDays(t *testing.T) {
	reports := []busdf.PositionReport{
		report("bus-1", "2024-01-01", "08:00:00"),
		report("bus-1", "2024-01-01", "09:30:00"),
		report("bus-1", "2023-12-31", "23:59:59"),
	}

	latest, err := Latest(reports)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}

	if latest.RecordedDate != "2024-01-01" || latest.RecordedTime != "09:30:00" {
		t.Errorf("expected 2024-01-01 09:30:00, got %s %s", latest.RecordedDate, latest.RecordedTime)
	}
}

func TestLatestEmptyInputIsNotFound(t *testing.T) {
	_, err := Latest(nil)
	if err == nil {
		t.Fatal("expected an error for empty input")
	}

	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}

	if notFound.Subject != "tracking" {
		t.Errorf("expected subject tracking, got %s", notFound.Subject)
	}
}

func TestLatestIsDeterministic(t *testing.T) {
	reports := []busdf.PositionReport{
		report("bus-1", "2024-01-02", "10:00:00"),
		report("bus-1", "2024-01-02", "10:00:00"),
		report("bus-1", "2024-01-01", "22:00:00"),
	}
	reports[0].PrimaryIdentifier = "first"
	reports[1].PrimaryIdentifier = "second"

	initial, err := Latest(reports)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}

	for i := 0; i < 10; i++ {
		repeat, err := Latest(reports)
		if err != nil {
			t.Fatalf("Latest: %v", err)
		}

		if repeat.PrimaryIdentifier != initial.PrimaryIdentifier {
			t.Fatalf("run %d selected %s, first run selected %s", i, repeat.PrimaryIdentifier, initial.PrimaryIdentifier)
		}
	}
}

func TestLatestPerBus(t *testing.T) {
	reports := []busdf.PositionReport{
		report("bus-1", "2024-01-01", "08:00:00"),
		report("bus-2", "2024-01-01", "11:00:00"),
		report("bus-1", "2024-01-01", "09:30:00"),
		report("bus-2", "2023-12-31", "23:59:59"),
		report("bus-3", "2024-01-01", "07:15:00"),
	}

	latest := LatestPerBus(reports)

	if len(latest) != 3 {
		t.Fatalf("expected 3 buses, got %d", len(latest))
	}

	tests := []struct {
		busID        string
		expectedTime string
	}{
		{busID: "bus-1", expectedTime: "09:30:00"},
		{busID: "bus-2", expectedTime: "11:00:00"},
		{busID: "bus-3", expectedTime: "07:15:00"},
	}

	for _, tt := range tests {
		t.Run(tt.busID, func(t *testing.T) {
			selected, found := latest[tt.busID]
			if !found {
				t.Fatalf("no entry for %s", tt.busID)
			}

			if selected.RecordedTime != tt.expectedTime {
				t.Errorf("expected %s, got %s", tt.expectedTime, selected.RecordedTime)
			}
		})
	}
}

func TestLatestPerBusDoesNotMutateInput(t *testing.T) {
	reports := []busdf.PositionReport{
		report("bus-1", "2024-01-01", "08:00:00"),
		report("bus-1", "2024-01-01", "09:30:00"),
	}

	LatestPerBus(reports)

	if reports[0].RecordedTime != "08:00:00" {
		t.Error("input slice was reordered")
	}
}

func TestSortByRecencyDescendingIsStableOnTies(t *testing.T) {
	reports := []busdf.PositionReport{
		report("bus-1", "2024-01-01", "10:00:00"),
		report("bus-2", "2024-01-01", "10:00:00"),
		report("bus-3", "2024-01-01", "10:00:00"),
	}

	SortByRecencyDescending(reports)

	expected := []string{"bus-1", "bus-2", "bus-3"}
	for i, busID := range expected {
		if reports[i].BusID != busID {
			t.Errorf("position %d: expected %s, got %s", i, busID, reports[i].BusID)
		}
	}
}
