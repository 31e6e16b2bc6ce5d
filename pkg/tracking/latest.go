package tracking

import (
	"github.com/busmitra/busmitra/pkg/busdf"
	"golang.org/x/exp/slices"
)

// compareRecency is the single authoritative comparator for "which report is
// newer". Everything that needs a latest record goes through it rather than
// re-sorting inline.
func compareRecency(a busdf.PositionReport, b busdf.PositionReport) int {
	return busdf.CompareDateTime(a.RecordedDate, a.RecordedTime, b.RecordedDate, b.RecordedTime)
}

// SortByRecencyDescending orders reports newest first. The sort is stable so
// reports sharing an identical (date, time) pair keep their relative input
// order, making repeated evaluation deterministic.
func SortByRecencyDescending(reports []busdf.PositionReport) {
	slices.SortStableFunc(reports, func(a busdf.PositionReport, b busdf.PositionReport) int {
		return compareRecency(b, a)
	})
}

// Latest selects the most recent report from an unordered snapshot.
func Latest(reports []busdf.PositionReport) (busdf.PositionReport, error) {
	if len(reports) == 0 {
		return busdf.PositionReport{}, newTrackingNotFound()
	}

	latest := reports[0]
	for _, report := range reports[1:] {
		if compareRecency(report, latest) > 0 {
			latest = report
		}
	}

	return latest, nil
}

// LatestPerBus resolves the most recent report for every bus present in the
// snapshot: sort newest first, keep the first occurrence per bus.
func LatestPerBus(reports []busdf.PositionReport) map[string]busdf.PositionReport {
	sorted := make([]busdf.PositionReport, len(reports))
	copy(sorted, reports)
	SortByRecencyDescending(sorted)

	latest := map[string]busdf.PositionReport{}
	for _, report := range sorted {
		if _, seen := latest[report.BusID]; !seen {
			latest[report.BusID] = report
		}
	}

	return latest
}
