package busdf

type StopLocation struct {
	Latitude  float64 `json:"latitude" bson:"latitude" groups:"basic"`
	Longitude float64 `json:"longitude" bson:"longitude" groups:"basic"`
	Address   string  `json:"address" bson:"address" groups:"basic"`
}

type Stop struct {
	PrimaryIdentifier string `json:"id" bson:"primaryidentifier" groups:"basic"`

	StopID string `json:"stopId" bson:"stopid" groups:"basic"`
	Name   string `json:"name" bson:"name" groups:"basic"`

	Location StopLocation `json:"location" bson:"location" groups:"basic"`

	Province   string   `json:"province,omitempty" bson:"province,omitempty" groups:"basic"`
	Type       string   `json:"type,omitempty" bson:"type,omitempty" groups:"basic"`
	Facilities []string `json:"facilities" bson:"facilities" groups:"basic"`

	IsActive bool `json:"isActive" bson:"isactive" groups:"basic"`

	CreatedDate string `json:"createdDate" bson:"createddate" groups:"basic"`
	CreatedTime string `json:"createdTime" bson:"createdtime" groups:"basic"`
}
