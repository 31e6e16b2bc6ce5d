package routes

import (
	"testing"

	"github.com/busmitra/busmitra/pkg/busdf"
)

func TestCalculateTripMetrics(t *testing.T) {
	trips := []busdf.Trip{
		{Status: busdf.TripStatusCompleted, DelayMinutes: 0},
		{Status: busdf.TripStatusCompleted, DelayMinutes: 12},
		{Status: busdf.TripStatusCancelled, DelayMinutes: 0},
		{Status: busdf.TripStatusInProgress, DelayMinutes: 3},
	}

	metrics := calculateTripMetrics(trips)

	if metrics.TotalTrips != 4 {
		t.Errorf("expected 4 total trips, got %d", metrics.TotalTrips)
	}
	if metrics.CompletedTrips != 2 {
		t.Errorf("expected 2 completed trips, got %d", metrics.CompletedTrips)
	}
	if metrics.CancelledTrips != 1 {
		t.Errorf("expected 1 cancelled trip, got %d", metrics.CancelledTrips)
	}
	if metrics.DelayedTrips != 1 {
		t.Errorf("expected 1 delayed trip, got %d", metrics.DelayedTrips)
	}
	if metrics.OnTimeTrips != 3 {
		t.Errorf("expected 3 on-time trips, got %d", metrics.OnTimeTrips)
	}
	if metrics.AverageDelayMinutes != 3.75 {
		t.Errorf("expected average delay 3.75, got %v", metrics.AverageDelayMinutes)
	}
	if metrics.OnTimePercentage != 75 {
		t.Errorf("expected on-time percentage 75, got %v", metrics.OnTimePercentage)
	}
	if metrics.CompletionRate != 50 {
		t.Errorf("expected completion rate 50, got %v", metrics.CompletionRate)
	}
}

func TestCalculateTripMetricsEmpty(t *testing.T) {
	metrics := calculateTripMetrics(nil)

	if metrics.TotalTrips != 0 {
		t.Errorf("expected 0 total trips, got %d", metrics.TotalTrips)
	}
	if metrics.AverageDelayMinutes != 0 || metrics.OnTimePercentage != 0 || metrics.CompletionRate != 0 {
		t.Errorf("expected zeroed rates for empty input, got %+v", metrics)
	}
}

func TestRegexEscape(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Colombo", "Colombo"},
		{"Fort (Main)", "Fort \\(Main\\)"},
		{"a.b*c", "a\\.b\\*c"},
		{"", ""},
	}

	for _, testCase := range testCases {
		escaped := regexEscape(testCase.input)
		if escaped != testCase.expected {
			t.Errorf("regexEscape(%q) = %q, expected %q", testCase.input, escaped, testCase.expected)
		}
	}
}
