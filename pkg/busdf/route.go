package busdf

import (
	"encoding/json"
	"strconv"
)

type Route struct {
	PrimaryIdentifier string `json:"id" bson:"primaryidentifier" groups:"basic"`

	RouteNumber string `json:"routeNumber" bson:"routenumber" groups:"basic"`
	RouteName   string `json:"routeName" bson:"routename" groups:"basic"`

	StartProvince string         `json:"startProvince" bson:"startprovince" groups:"basic"`
	EndProvince   string         `json:"endProvince" bson:"endprovince" groups:"basic"`
	StartLocation *NamedLocation `json:"startLocation" bson:"startlocation" groups:"basic"`
	EndLocation   *NamedLocation `json:"endLocation" bson:"endlocation" groups:"basic"`

	Waypoints []Waypoint `json:"waypoints" bson:"waypoints" groups:"basic"`

	DistanceKm        float64 `json:"distance" bson:"distance" groups:"basic"`
	EstimatedDuration string  `json:"estimatedDuration,omitempty" bson:"estimatedduration,omitempty" groups:"basic"`
	OperatingHours    string  `json:"operatingHours,omitempty" bson:"operatinghours,omitempty" groups:"basic"`
	Frequency         string  `json:"frequency,omitempty" bson:"frequency,omitempty" groups:"basic"`

	IsActive bool `json:"isActive" bson:"isactive" groups:"basic"`

	CreatedDate string `json:"createdDate" bson:"createddate" groups:"basic"`
	CreatedTime string `json:"createdTime" bson:"createdtime" groups:"basic"`
	UpdatedDate string `json:"updatedDate,omitempty" bson:"updateddate,omitempty" groups:"basic"`
	UpdatedTime string `json:"updatedTime,omitempty" bson:"updatedtime,omitempty" groups:"basic"`
}

type NamedLocation struct {
	Name      string  `json:"name" bson:"name" groups:"basic"`
	Latitude  float64 `json:"latitude" bson:"latitude" groups:"basic"`
	Longitude float64 `json:"longitude" bson:"longitude" groups:"basic"`
}

// Waypoint is one entry of a route's ordered stop sequence. Sequence numbers
// are route-unique and ascending.
type Waypoint struct {
	Sequence int    `json:"sequence" bson:"sequence" groups:"basic"`
	StopID   string `json:"stopId,omitempty" bson:"stopid,omitempty" groups:"basic"`
	Name     string `json:"name" bson:"name" groups:"basic"`
	Type     string `json:"type" bson:"type" groups:"basic"`

	Latitude  float64 `json:"latitude" bson:"latitude" groups:"basic"`
	Longitude float64 `json:"longitude" bson:"longitude" groups:"basic"`

	EstimatedTimeFromStart int    `json:"estimatedTimeFromStart" bson:"estimatedtimefromstart" groups:"basic"`
	Province               string `json:"province,omitempty" bson:"province,omitempty" groups:"basic"`
}

// FindWaypoint resolves a stop either by its explicit identifier or by its
// sequence number when the identifier parses as an integer.
func (route *Route) FindWaypoint(stopIdentifier string) *Waypoint {
	sequence, sequenceErr := strconv.Atoi(stopIdentifier)

	for index, waypoint := range route.Waypoints {
		if waypoint.StopID != "" && waypoint.StopID == stopIdentifier {
			return &route.Waypoints[index]
		}

		if sequenceErr == nil && waypoint.Sequence == sequence {
			return &route.Waypoints[index]
		}
	}

	return nil
}

// Identifier returns the stop's external identity, falling back to the
// sequence number for waypoints created without one.
func (w *Waypoint) Identifier() string {
	if w.StopID != "" {
		return w.StopID
	}

	return strconv.Itoa(w.Sequence)
}

func (route *Route) MarshalBinary() ([]byte, error) {
	return json.Marshal(route)
}

func (route *Route) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, route)
}
