package busdf

type BusStatus string

const (
	BusStatusActive      BusStatus = "ACTIVE"
	BusStatusInactive    BusStatus = "INACTIVE"
	BusStatusMaintenance BusStatus = "MAINTENANCE"
	BusStatusBreakdown   BusStatus = "BREAKDOWN"
	BusStatusCleaning    BusStatus = "CLEANING"
)

func (s BusStatus) Valid() bool {
	switch s {
	case BusStatusActive, BusStatusInactive, BusStatusMaintenance, BusStatusBreakdown, BusStatusCleaning:
		return true
	}

	return false
}

type Bus struct {
	PrimaryIdentifier string `json:"id" bson:"primaryidentifier" groups:"basic"`

	LicensePlate string `json:"licensePlate" bson:"licenseplate" groups:"basic"`
	BusNumber    string `json:"busNumber" bson:"busnumber" groups:"basic"`

	OperatorID   string `json:"operatorId,omitempty" bson:"operatorid,omitempty" groups:"basic"`
	OperatorName string `json:"operatorName,omitempty" bson:"operatorname,omitempty" groups:"basic"`
	RouteID      string `json:"routeId,omitempty" bson:"routeid,omitempty" groups:"basic"`

	Capacity   int      `json:"capacity" bson:"capacity" groups:"basic"`
	Model      string   `json:"model" bson:"model" groups:"basic"`
	Year       int      `json:"year" bson:"year" groups:"basic"`
	Colour     string   `json:"color" bson:"color" groups:"basic"`
	Facilities []string `json:"facilities" bson:"facilities" groups:"basic"`

	IsActive      bool      `json:"isActive" bson:"isactive" groups:"basic"`
	CurrentStatus BusStatus `json:"currentStatus" bson:"currentstatus" groups:"basic"`

	LastMaintenance string `json:"lastMaintenance,omitempty" bson:"lastmaintenance,omitempty" groups:"internal"`
	NextMaintenance string `json:"nextMaintenance,omitempty" bson:"nextmaintenance,omitempty" groups:"internal"`

	CreatedDate string `json:"createdDate" bson:"createddate" groups:"basic"`
	CreatedTime string `json:"createdTime" bson:"createdtime" groups:"basic"`
	UpdatedDate string `json:"updatedDate,omitempty" bson:"updateddate,omitempty" groups:"basic"`
	UpdatedTime string `json:"updatedTime,omitempty" bson:"updatedtime,omitempty" groups:"basic"`
}
