package busdf

import (
	"math"
	"testing"
)

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of longitude at the equator is roughly 111.19 km
	distance := Haversine(0, 0, 0, 1)

	if math.Abs(distance-111.19) > 0.5 {
		t.Errorf("expected ~111.19 km, got %f", distance)
	}
}

func TestHaversineIsSymmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{name: "colombo to kandy", lat1: 6.9271, lon1: 79.8612, lat2: 7.2906, lon2: 80.6337},
		{name: "across equator", lat1: -1.5, lon1: 36.8, lat2: 1.5, lon2: 36.8},
		{name: "antimeridian", lat1: 10, lon1: 179.5, lat2: 10, lon2: -179.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			backward := Haversine(tt.lat2, tt.lon2, tt.lat1, tt.lon1)

			if math.Abs(forward-backward) > 1e-9 {
				t.Errorf("not symmetric: %f vs %f", forward, backward)
			}
		})
	}
}

func TestHaversineZeroForIdenticalPoints(t *testing.T) {
	if distance := Haversine(6.9271, 79.8612, 6.9271, 79.8612); distance != 0 {
		t.Errorf("expected 0, got %f", distance)
	}
}

func TestLocationDistanceKm(t *testing.T) {
	a := Location{Latitude: 0, Longitude: 0}
	b := Location{Latitude: 0, Longitude: 1}

	if distance := a.DistanceKm(b); math.Abs(distance-111.19) > 0.5 {
		t.Errorf("expected ~111.19 km, got %f", distance)
	}
}
