package tracking

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/go-playground/validator/v10"
)

// IngestInput is the explicit payload for a position update. Required fields
// fail closed; optional ones get the documented defaults.
type IngestInput struct {
	BusID   string `json:"busId" validate:"required"`
	RouteID string `json:"routeId" validate:"required"`

	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Accuracy  *float64 `json:"accuracy" validate:"omitempty,gte=0"`

	Speed     *float64 `json:"speed" validate:"omitempty,gte=0"`
	Direction *float64 `json:"direction"`
	NextStop  string   `json:"nextStop"`
	Status    string   `json:"status"`
	Delay     *int     `json:"delay"`
	Occupancy string   `json:"occupancy"`

	BatteryLevel   *float64 `json:"batteryLevel"`
	SignalStrength *float64 `json:"signalStrength"`
}

const defaultAccuracyMeters = 15.0

// Ingestor validates position updates and appends them to the log. Who is
// allowed to call it is the transport layer's concern; validation here is
// independent of the caller's identity.
type Ingestor struct {
	log      PositionLog
	validate *validator.Validate

	now func() busdf.Timestamp
}

func NewIngestor(log PositionLog) *Ingestor {
	validate := validator.New()

	// Report validation failures with the wire field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Ingestor{
		log:      log,
		validate: validate,
		now:      busdf.Now,
	}
}

func (ingestor *Ingestor) Ingest(ctx context.Context, input IngestInput) (string, error) {
	if err := ingestor.validate.Struct(input); err != nil {
		return "", ValidationError{Message: missingFieldsMessage(err)}
	}

	report := &busdf.PositionReport{
		BusID:   input.BusID,
		RouteID: input.RouteID,
		Location: busdf.Location{
			Latitude:       *input.Latitude,
			Longitude:      *input.Longitude,
			AccuracyMeters: defaultAccuracyMeters,
		},
		Status:         busdf.PositionReportStatusInTransit,
		Occupancy:      busdf.OccupancyLevelUnknown,
		NextStopID:     input.NextStop,
		BatteryLevel:   input.BatteryLevel,
		SignalStrength: input.SignalStrength,
	}

	if input.Accuracy != nil {
		report.Location.AccuracyMeters = *input.Accuracy
	}
	if input.Speed != nil {
		report.SpeedKmh = *input.Speed
	}
	if input.Direction != nil {
		report.DirectionDegrees = *input.Direction
	}
	if input.Status != "" {
		report.Status = busdf.PositionReportStatus(input.Status)
	}
	if input.Delay != nil {
		report.DelayMinutes = *input.Delay
	}
	if input.Occupancy != "" {
		report.Occupancy = busdf.OccupancyLevel(input.Occupancy)
	}

	recordedAt := ingestor.now()
	report.RecordedDate = recordedAt.DateString()
	report.RecordedTime = recordedAt.TimeString()

	reportID, err := ingestor.log.Append(ctx, report)
	if err != nil {
		return "", err
	}

	reportsIngested.Inc()

	return reportID, nil
}

func missingFieldsMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	fields := []string{}
	for _, fieldError := range validationErrors {
		if fieldError.Tag() == "required" {
			fields = append(fields, fieldError.Field())
		}
	}

	if len(fields) == 0 {
		return validationErrors.Error()
	}

	return fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", "))
}
