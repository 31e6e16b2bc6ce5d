package busdf

type Operator struct {
	PrimaryIdentifier string `json:"id" bson:"primaryidentifier" groups:"basic"`

	CompanyName        string `json:"companyName" bson:"companyname" groups:"basic"`
	RegistrationNumber string `json:"registrationNumber" bson:"registrationnumber" groups:"basic"`
	Contact            string `json:"contact" bson:"contact" groups:"basic"`

	FleetSize          int      `json:"fleetSize" bson:"fleetsize" groups:"basic"`
	ActiveBuses        int      `json:"activeBuses" bson:"activebuses" groups:"basic"`
	OperatingProvinces []string `json:"operatingProvinces" bson:"operatingprovinces" groups:"basic"`

	LicenseExpiry string  `json:"licenseExpiry,omitempty" bson:"licenseexpiry,omitempty" groups:"internal"`
	Rating        float64 `json:"rating" bson:"rating" groups:"basic"`
	TotalTrips    int     `json:"totalTrips" bson:"totaltrips" groups:"basic"`

	IsActive   bool   `json:"isActive" bson:"isactive" groups:"basic"`
	JoinedDate string `json:"joinedDate,omitempty" bson:"joineddate,omitempty" groups:"basic"`

	CreatedDate string `json:"createdDate" bson:"createddate" groups:"basic"`
	CreatedTime string `json:"createdTime" bson:"createdtime" groups:"basic"`
	UpdatedDate string `json:"updatedDate,omitempty" bson:"updateddate,omitempty" groups:"basic"`
	UpdatedTime string `json:"updatedTime,omitempty" bson:"updatedtime,omitempty" groups:"basic"`
}
