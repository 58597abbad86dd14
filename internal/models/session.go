package models

import "time"

// FilterEvent is one append-only entry in the cross-filter history. The core
// never prunes the log; display layers may truncate their own copies.
type FilterEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Filter    map[string]string `json:"filter"`
	Source    string            `json:"source"`
}

// CrossFilterState tracks which chart-driven filters are live.
type CrossFilterState struct {
	ActiveFilters  map[string]string `json:"activeFilters"`
	AppliedFilters map[string]string `json:"appliedFilters"`
	FilterHistory  []FilterEvent     `json:"filterHistory"`
}

// DrillLevel names a drill-down depth.
type DrillLevel string

const (
	DrillDepartment DrillLevel = "department"
	DrillInstructor DrillLevel = "instructor"
	DrillClass      DrillLevel = "class"
	DrillSession    DrillLevel = "session"
)

// Valid returns true when the level is supported.
func (l DrillLevel) Valid() bool {
	switch l {
	case DrillDepartment, DrillInstructor, DrillClass, DrillSession:
		return true
	default:
		return false
	}
}

// DrillDownState tracks where in the hierarchy the user has drilled and the
// breadcrumb trail that got them there.
type DrillDownState struct {
	IsActive    bool                  `json:"isActive"`
	Level       DrillLevel            `json:"level"`
	Data        map[string]string     `json:"data,omitempty"`
	Breadcrumbs []string              `json:"breadcrumbs"`
	Filters     map[DrillLevel]string `json:"filters"`
}

// SessionState is the complete mutable-by-reduction state of one analytics
// session. Values are immutable: every operation returns a fresh state.
type SessionState struct {
	CrossFilter CrossFilterState `json:"crossFilter"`
	DrillDown   DrillDownState   `json:"drillDown"`
}
