package busdf

import (
	"fmt"
	"strings"
	"time"
)

// IST is the fixed offset all tracking records are stamped in.
var IST = time.FixedZone("IST", 5*3600+30*60)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Timestamp is the source of truth for recency ordering of tracking records.
// The store persists it as a split, zero-padded (date, time) string pair so
// that lexicographic comparison of the pair agrees with chronological order.
type Timestamp struct {
	time time.Time
}

func Now() Timestamp {
	return At(time.Now())
}

func At(t time.Time) Timestamp {
	return Timestamp{time: t.In(IST)}
}

// ParseTimestamp reconstructs a Timestamp from its persisted projection.
func ParseTimestamp(date string, timeOfDay string) (Timestamp, error) {
	t, err := time.ParseInLocation(dateLayout+"T"+timeLayout, fmt.Sprintf("%sT%s", date, timeOfDay), IST)
	if err != nil {
		return Timestamp{}, err
	}

	return Timestamp{time: t}, nil
}

func (ts Timestamp) Time() time.Time {
	return ts.time
}

func (ts Timestamp) DateString() string {
	return ts.time.Format(dateLayout)
}

func (ts Timestamp) TimeString() string {
	return ts.time.Format(timeLayout)
}

func (ts Timestamp) Before(other Timestamp) bool {
	return ts.time.Before(other.time)
}

// CompareDateTime orders two persisted (date, time) pairs chronologically.
// Both components are string-sortable, so plain string comparison is the
// authoritative order for every "latest record" decision.
func CompareDateTime(aDate, aTime, bDate, bTime string) int {
	if aDate != bDate {
		return strings.Compare(aDate, bDate)
	}

	return strings.Compare(aTime, bTime)
}
