package busdf

type Province struct {
	PrimaryIdentifier string `json:"id" bson:"primaryidentifier" groups:"basic"`

	ProvinceID string `json:"provinceId" bson:"provinceid" groups:"basic"`
	Name       string `json:"name" bson:"name" groups:"basic"`
	Capital    string `json:"capital" bson:"capital" groups:"basic"`

	MajorCities []string `json:"majorCities" bson:"majorcities" groups:"basic"`
	BusStations []string `json:"busStations" bson:"busstations" groups:"basic"`

	IsActive bool `json:"isActive" bson:"isactive" groups:"basic"`

	CreatedDate string `json:"createdDate" bson:"createddate" groups:"basic"`
	CreatedTime string `json:"createdTime" bson:"createdtime" groups:"basic"`
	UpdatedDate string `json:"updatedDate,omitempty" bson:"updateddate,omitempty" groups:"basic"`
	UpdatedTime string `json:"updatedTime,omitempty" bson:"updatedtime,omitempty" groups:"basic"`
}
