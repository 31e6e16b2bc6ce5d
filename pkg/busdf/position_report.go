package busdf

type PositionReportStatus string

const (
	PositionReportStatusInTransit PositionReportStatus = "IN_TRANSIT"
	PositionReportStatusStopped   PositionReportStatus = "STOPPED"
	PositionReportStatusBoarding  PositionReportStatus = "BOARDING"
	PositionReportStatusCompleted PositionReportStatus = "COMPLETED"
)

type OccupancyLevel string

const (
	OccupancyLevelLow     OccupancyLevel = "LOW"
	OccupancyLevelMedium  OccupancyLevel = "MEDIUM"
	OccupancyLevelHigh    OccupancyLevel = "HIGH"
	OccupancyLevelUnknown OccupancyLevel = "UNKNOWN"
)

// PositionReport is one bus's self-reported state at a point in time.
// Reports are append-only: once written they are never updated or deleted,
// and recency is always recomputed from RecordedDate/RecordedTime.
type PositionReport struct {
	PrimaryIdentifier string `json:"id" bson:"primaryidentifier" groups:"basic"`

	BusID   string `json:"busId" bson:"busid" groups:"basic"`
	RouteID string `json:"routeId" bson:"routeid" groups:"basic"`

	Location Location `json:"location" bson:"location" groups:"basic"`

	SpeedKmh         float64              `json:"speed" bson:"speed" groups:"basic"`
	DirectionDegrees float64              `json:"direction" bson:"direction" groups:"basic"`
	NextStopID       string               `json:"nextStop,omitempty" bson:"nextstop,omitempty" groups:"basic"`
	Status           PositionReportStatus `json:"status" bson:"status" groups:"basic"`
	DelayMinutes     int                  `json:"delay" bson:"delay" groups:"basic"`
	Occupancy        OccupancyLevel       `json:"occupancy" bson:"occupancy" groups:"basic"`

	BatteryLevel   *float64 `json:"batteryLevel" bson:"batterylevel" groups:"internal"`
	SignalStrength *float64 `json:"signalStrength" bson:"signalstrength" groups:"internal"`

	// Zero-padded projections of the report's creation Timestamp. The store's
	// indexed range queries only resolve to the date component; anything finer
	// is filtered in-process.
	RecordedDate string `json:"createdDate" bson:"createddate" groups:"basic"`
	RecordedTime string `json:"createdTime" bson:"createdtime" groups:"basic"`
}

// RecordedAt reconstructs the creation instant from the split projection.
func (r *PositionReport) RecordedAt() (Timestamp, error) {
	return ParseTimestamp(r.RecordedDate, r.RecordedTime)
}
