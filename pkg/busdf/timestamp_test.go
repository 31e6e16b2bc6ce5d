package busdf

import (
	"testing"
	"time"
)

func TestTimestampProjectionsAreZeroPadded(t *testing.T) {
	// 2024-03-05 06:07:08 UTC is 11:37:08 IST on the same day
	ts := At(time.Date(2024, 3, 5, 6, 7, 8, 0, time.UTC))

	if got := ts.DateString(); got != "2024-03-05" {
		t.Errorf("DateString: expected 2024-03-05, got %s", got)
	}

	if got := ts.TimeString(); got != "11:37:08" {
		t.Errorf("TimeString: expected 11:37:08, got %s", got)
	}
}

func TestTimestampDateRollsOverAtISTMidnight(t *testing.T) {
	// 19:00 UTC is 00:30 IST the next day
	ts := At(time.Date(2024, 12, 31, 19, 0, 0, 0, time.UTC))

	if got := ts.DateString(); got != "2025-01-01" {
		t.Errorf("expected 2025-01-01, got %s", got)
	}
}

func TestParseTimestampRoundTrips(t *testing.T) {
	ts, err := ParseTimestamp("2024-01-09", "08:05:00")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}

	if ts.DateString() != "2024-01-09" || ts.TimeString() != "08:05:00" {
		t.Errorf("round trip mismatch: %s %s", ts.DateString(), ts.TimeString())
	}
}

func TestParseTimestampRejectsMalformedInput(t *testing.T) {
	if _, err := ParseTimestamp("2024-1-9", "08:05:00"); err == nil {
		t.Error("expected error for unpadded date")
	}
}

func TestCompareDateTime(t *testing.T) {
	tests := []struct {
		name                   string
		aDate, aTime           string
		bDate, bTime           string
		expected               int
	}{
		{
			name:  "earlier date",
			aDate: "2023-12-31", aTime: "23:59:59",
			bDate: "2024-01-01", bTime: "00:00:00",
			expected: -1,
		},
		{
			name:  "same date earlier time",
			aDate: "2024-01-01", aTime: "08:00:00",
			bDate: "2024-01-01", bTime: "09:30:00",
			expected: -1,
		},
		{
			name:  "identical",
			aDate: "2024-01-01", aTime: "08:00:00",
			bDate: "2024-01-01", bTime: "08:00:00",
			expected: 0,
		},
		{
			name:  "later time",
			aDate: "2024-01-01", aTime: "10:00:00",
			bDate: "2024-01-01", bTime: "09:30:00",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CompareDateTime(tt.aDate, tt.aTime, tt.bDate, tt.bTime)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}
