package models

import "time"

// TimePreset identifies how a time range is derived.
type TimePreset string

const (
	PresetToday   TimePreset = "today"
	PresetWeek    TimePreset = "week"
	PresetMonth   TimePreset = "month"
	PresetQuarter TimePreset = "quarter"
	PresetYear    TimePreset = "year"
	PresetCustom  TimePreset = "custom"
)

// Valid returns true when the preset is a supported value.
func (p TimePreset) Valid() bool {
	switch p {
	case PresetToday, PresetWeek, PresetMonth, PresetQuarter, PresetYear, PresetCustom:
		return true
	default:
		return false
	}
}

// TimeRange selects the evaluation window for filtering and series bucketing.
// Start/End are only read for the custom preset; every other preset recomputes
// its window from the evaluation instant and ignores whatever the caller put
// in Start/End.
type TimeRange struct {
	Preset TimePreset `json:"preset"`
	Start  time.Time  `json:"start,omitempty"`
	End    time.Time  `json:"end,omitempty"`
}

// CustomValid reports whether a custom range carries a usable window. A zero
// start or end, or an inverted pair, makes the range invalid; callers degrade
// to include-all filtering rather than include-none.
func (r TimeRange) CustomValid() bool {
	if r.Start.IsZero() || r.End.IsZero() {
		return false
	}
	return !r.Start.After(r.End)
}

// Window resolves the concrete [start, end] pair for the range at the given
// instant. For non-custom presets end is always now. The boolean is false when
// a custom range is invalid; the returned window is then meaningless.
func (r TimeRange) Window(now time.Time) (time.Time, time.Time, bool) {
	switch r.Preset {
	case PresetToday:
		return DayStart(now), now, true
	case PresetWeek:
		return now.AddDate(0, 0, -7), now, true
	case PresetMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now, true
	case PresetQuarter:
		quarterMonth := time.Month(((int(now.Month())-1)/3)*3 + 1)
		return time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location()), now, true
	case PresetYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now, true
	case PresetCustom:
		if !r.CustomValid() {
			return time.Time{}, time.Time{}, false
		}
		return DayStart(r.Start), DayEnd(r.End), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// DayStart truncates t to local midnight.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd extends t to the last representable instant of its day.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
