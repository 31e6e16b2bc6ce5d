package tracking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/busmitra/busmitra/pkg/busdf"
)

func floatPtr(v float64) *float64 { return &v }

func TestIngestStampsAndDefaults(t *testing.T) {
	log := &fakePositionLog{}

	ingestor := NewIngestor(log)
	ingestor.now = func() busdf.Timestamp {
		return busdf.At(time.Date(2024, 3, 5, 6, 7, 8, 0, time.UTC))
	}

	reportID, err := ingestor.Ingest(context.Background(), IngestInput{
		BusID:     "bus-1",
		RouteID:   "route-1",
		Latitude:  floatPtr(6.9271),
		Longitude: floatPtr(79.8612),
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if reportID == "" {
		t.Error("expected a report id")
	}

	if len(log.appended) != 1 {
		t.Fatalf("expected 1 appended report, got %d", len(log.appended))
	}

	appended := log.appended[0]

	if appended.Location.AccuracyMeters != 15.0 {
		t.Errorf("expected default accuracy 15.0, got %f", appended.Location.AccuracyMeters)
	}
	if appended.SpeedKmh != 0 || appended.DelayMinutes != 0 {
		t.Error("expected zero defaults for speed and delay")
	}
	if appended.Status != busdf.PositionReportStatusInTransit {
		t.Errorf("expected IN_TRANSIT, got %s", appended.Status)
	}
	if appended.Occupancy != busdf.OccupancyLevelUnknown {
		t.Errorf("expected UNKNOWN, got %s", appended.Occupancy)
	}
	if appended.BatteryLevel != nil || appended.SignalStrength != nil {
		t.Error("expected nil diagnostics when unreported")
	}

	// 06:07:08 UTC is 11:37:08 IST
	if appended.RecordedDate != "2024-03-05" || appended.RecordedTime != "11:37:08" {
		t.Errorf("wrong stamp: %s %s", appended.RecordedDate, appended.RecordedTime)
	}
}

func TestIngestKeepsProvidedOptionalFields(t *testing.T) {
	log := &fakePositionLog{}
	ingestor := NewIngestor(log)

	delay := 7
	_, err := ingestor.Ingest(context.Background(), IngestInput{
		BusID:        "bus-1",
		RouteID:      "route-1",
		Latitude:     floatPtr(6.9271),
		Longitude:    floatPtr(79.8612),
		Accuracy:     floatPtr(4.5),
		Speed:        floatPtr(62),
		Direction:    floatPtr(178),
		NextStop:     "kandy_central",
		Status:       "BOARDING",
		Delay:        &delay,
		Occupancy:    "HIGH",
		BatteryLevel: floatPtr(88),
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	appended := log.appended[0]

	if appended.Location.AccuracyMeters != 4.5 {
		t.Errorf("expected accuracy 4.5, got %f", appended.Location.AccuracyMeters)
	}
	if appended.SpeedKmh != 62 || appended.DirectionDegrees != 178 {
		t.Error("speed or direction not carried")
	}
	if appended.NextStopID != "kandy_central" {
		t.Errorf("next stop not carried: %s", appended.NextStopID)
	}
	if appended.Status != busdf.PositionReportStatusBoarding || appended.Occupancy != busdf.OccupancyLevelHigh {
		t.Error("status or occupancy not carried")
	}
	if appended.DelayMinutes != 7 {
		t.Errorf("expected delay 7, got %d", appended.DelayMinutes)
	}
	if appended.BatteryLevel == nil || *appended.BatteryLevel != 88 {
		t.Error("battery level not carried")
	}
}

func TestIngestRejectsMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name          string
		input         IngestInput
		expectedField string
	}{
		{
			name: "missing latitude",
			input: IngestInput{
				BusID: "bus-1", RouteID: "route-1", Longitude: floatPtr(79.8612),
			},
			expectedField: "latitude",
		},
		{
			name: "missing bus id",
			input: IngestInput{
				RouteID: "route-1", Latitude: floatPtr(6.9), Longitude: floatPtr(79.8),
			},
			expectedField: "busId",
		},
		{
			name:          "missing everything",
			input:         IngestInput{},
			expectedField: "busId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &fakePositionLog{}
			ingestor := NewIngestor(log)

			_, err := ingestor.Ingest(context.Background(), tt.input)

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			if !strings.Contains(validationErr.Message, tt.expectedField) {
				t.Errorf("message %q should name %s", validationErr.Message, tt.expectedField)
			}

			if len(log.appended) != 0 {
				t.Error("nothing should reach the store on validation failure")
			}
		})
	}
}

func TestIngestPropagatesStoreFailure(t *testing.T) {
	log := &fakePositionLog{appendErr: StoreError{Operation: "append position report", Err: context.DeadlineExceeded}}
	ingestor := NewIngestor(log)

	_, err := ingestor.Ingest(context.Background(), IngestInput{
		BusID:     "bus-1",
		RouteID:   "route-1",
		Latitude:  floatPtr(6.9271),
		Longitude: floatPtr(79.8612),
	})

	var storeErr StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
