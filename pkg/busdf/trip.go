package busdf

type TripStatus string

const (
	TripStatusScheduled  TripStatus = "SCHEDULED"
	TripStatusStarted    TripStatus = "STARTED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusDelayed    TripStatus = "DELAYED"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusScheduled, TripStatusStarted, TripStatusInProgress,
		TripStatusDelayed, TripStatusCompleted, TripStatusCancelled:
		return true
	}

	return false
}

// ActiveTripStatuses are the states a trip can be in while a bus is out on
// the road.
var ActiveTripStatuses = []TripStatus{TripStatusStarted, TripStatusInProgress, TripStatusDelayed}

type Trip struct {
	PrimaryIdentifier string `json:"id" bson:"primaryidentifier" groups:"basic"`

	BusID   string `json:"busId" bson:"busid" groups:"basic"`
	RouteID string `json:"routeId" bson:"routeid" groups:"basic"`

	DriverID   string `json:"driverId,omitempty" bson:"driverid,omitempty" groups:"internal"`
	DriverName string `json:"driverName,omitempty" bson:"drivername,omitempty" groups:"basic"`

	ScheduledStart string `json:"scheduledStart" bson:"scheduledstart" groups:"basic"`
	ScheduledEnd   string `json:"scheduledEnd" bson:"scheduledend" groups:"basic"`
	ActualStart    string `json:"actualStart,omitempty" bson:"actualstart,omitempty" groups:"basic"`
	ActualEnd      string `json:"actualEnd,omitempty" bson:"actualend,omitempty" groups:"basic"`

	Status       TripStatus `json:"status" bson:"status" groups:"basic"`
	DelayMinutes int        `json:"delay" bson:"delay" groups:"basic"`

	CurrentPassengers int     `json:"currentPassengers" bson:"currentpassengers" groups:"basic"`
	MaxPassengers     int     `json:"maxPassengers,omitempty" bson:"maxpassengers,omitempty" groups:"basic"`
	Fare              float64 `json:"fare,omitempty" bson:"fare,omitempty" groups:"basic"`
	Notes             string  `json:"notes,omitempty" bson:"notes,omitempty" groups:"internal"`

	IsActive bool `json:"isActive" bson:"isactive" groups:"basic"`

	CreatedDate string `json:"createdDate" bson:"createddate" groups:"basic"`
	CreatedTime string `json:"createdTime" bson:"createdtime" groups:"basic"`
	UpdatedDate string `json:"updatedDate,omitempty" bson:"updateddate,omitempty" groups:"basic"`
	UpdatedTime string `json:"updatedTime,omitempty" bson:"updatedtime,omitempty" groups:"basic"`
}
