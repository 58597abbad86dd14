// Package analytics implements the attendance analytics engine: filtering,
// aggregation, trend derivation, series generation, pattern and streak
// analysis, and the session state reducer. Every function here is pure and
// synchronous; the evaluation instant is always an explicit parameter.
package analytics

import (
	"time"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

// FilterAll is the sentinel value disabling a department or risk predicate.
const FilterAll = "all"

// FilterOptions narrows a record collection before aggregation.
type FilterOptions struct {
	Department string
	RiskLevel  string
	Range      models.TimeRange
}

// FilterRecords applies the department, risk-level and time predicates and
// returns the surviving records. The input slice is never mutated.
//
// Custom ranges are deliberately lenient: records without a last-attendance
// timestamp are kept, an invalid (inverted or zero) window disables the time
// predicate entirely, and a custom-range filter that would empty the
// collection falls back to the unfiltered input. Preset ranges carry none of
// that leniency and may legitimately produce an empty result.
func FilterRecords(records []models.AttendanceRecord, opts FilterOptions, now time.Time) []models.AttendanceRecord {
	if len(records) == 0 {
		return records
	}

	filtered := make([]models.AttendanceRecord, 0, len(records))
	for _, record := range records {
		if !matchesSelector(record.Department, opts.Department) {
			continue
		}
		if !matchesSelector(string(record.RiskLevel), opts.RiskLevel) {
			continue
		}
		if !matchesTimeRange(record, opts.Range, now) {
			continue
		}
		filtered = append(filtered, record)
	}

	if len(filtered) == 0 && opts.Range.Preset == models.PresetCustom {
		return records
	}
	return filtered
}

func matchesSelector(value, selector string) bool {
	return selector == "" || selector == FilterAll || value == selector
}

func matchesTimeRange(record models.AttendanceRecord, tr models.TimeRange, now time.Time) bool {
	if tr.Preset == models.PresetCustom {
		// No timestamp, or an unusable window: keep the record.
		if record.LastAttendance == nil {
			return true
		}
		start, end, ok := tr.Window(now)
		if !ok {
			return true
		}
		at := models.DayStart(*record.LastAttendance)
		return !at.Before(start) && !at.After(end)
	}

	start, end, ok := tr.Window(now)
	if !ok {
		return true
	}
	if record.LastAttendance == nil {
		return false
	}
	at := *record.LastAttendance
	return !at.Before(start) && !at.After(end)
}
