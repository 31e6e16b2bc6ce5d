package busdf

import "math"

const earthRadiusKm = 6371

type Location struct {
	Latitude       float64 `json:"latitude" bson:"latitude" groups:"basic"`
	Longitude      float64 `json:"longitude" bson:"longitude" groups:"basic"`
	AccuracyMeters float64 `json:"accuracy" bson:"accuracy" groups:"basic"`
}

// Haversine returns the great-circle distance in kilometres between two
// coordinates given in degrees.
func Haversine(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func (l Location) DistanceKm(other Location) float64 {
	return Haversine(l.Latitude, l.Longitude, other.Latitude, other.Longitude)
}
