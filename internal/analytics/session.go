package analytics

import (
	"time"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

// Filter history sources: only the named selector actions append history.
const (
	SourceDepartmentChange = "department-change"
	SourceRiskChange       = "risk-change"
	SourceTimeRangeChange  = "time-range-change"
)

// navigateDeepLevel is the level assumed when truncating the breadcrumb stack
// to more than one entry; the department level is only reachable at depth 1.
const navigateDeepLevel = models.DrillClass

// NewSessionState returns the initial, inactive state of an analytics
// session.
func NewSessionState() models.SessionState {
	return models.SessionState{
		CrossFilter: models.CrossFilterState{
			ActiveFilters:  map[string]string{},
			AppliedFilters: map[string]string{},
			FilterHistory:  []models.FilterEvent{},
		},
		DrillDown: models.DrillDownState{
			Level:       models.DrillDepartment,
			Breadcrumbs: []string{},
			Filters:     map[models.DrillLevel]string{},
		},
	}
}

// ApplyCrossFilter merges the given filters into both the active and applied
// sets. Chart-driven cross filters never append to history; only the named
// selector actions do.
func ApplyCrossFilter(state models.SessionState, filters map[string]string) models.SessionState {
	next := cloneState(state)
	for key, value := range filters {
		if key == "" {
			continue
		}
		next.CrossFilter.ActiveFilters[key] = value
		next.CrossFilter.AppliedFilters[key] = value
	}
	return next
}

// RecordFilterChange logs a named selector action (department, risk or time
// range change) and applies it as an active+applied filter.
func RecordFilterChange(state models.SessionState, key, value, source string, now time.Time) models.SessionState {
	next := cloneState(state)
	if key != "" {
		next.CrossFilter.ActiveFilters[key] = value
		next.CrossFilter.AppliedFilters[key] = value
	}
	next.CrossFilter.FilterHistory = append(next.CrossFilter.FilterHistory, models.FilterEvent{
		Timestamp: now,
		Filter:    map[string]string{key: value},
		Source:    source,
	})
	return next
}

// ClearFilter removes the key from the active set only; the applied set and
// history are untouched. Unknown keys are a no-op.
func ClearFilter(state models.SessionState, key string) models.SessionState {
	next := cloneState(state)
	delete(next.CrossFilter.ActiveFilters, key)
	return next
}

// ResetAll returns the session to its initial shape: no filters, no history,
// drill-down inactive.
func ResetAll(models.SessionState) models.SessionState {
	return NewSessionState()
}

// DrillInto descends one level into the entity described by data. The entity
// label (data["label"], falling back to data["name"]) is appended to the
// breadcrumb trail and recorded as the level's filter value.
func DrillInto(state models.SessionState, level models.DrillLevel, data map[string]string) models.SessionState {
	if !level.Valid() {
		return state
	}
	next := cloneState(state)
	label := data["label"]
	if label == "" {
		label = data["name"]
	}
	next.DrillDown.IsActive = true
	next.DrillDown.Level = level
	next.DrillDown.Data = cloneMap(data)
	next.DrillDown.Breadcrumbs = append(next.DrillDown.Breadcrumbs, label)
	next.DrillDown.Filters[level] = label
	return next
}

// Navigate moves through the breadcrumb trail. index -1 pops one level;
// index >= 0 truncates the trail to index+1 entries. The level snaps back to
// department whenever at most one breadcrumb remains. Out-of-range indexes
// are a no-op.
func Navigate(state models.SessionState, index int) models.SessionState {
	next := cloneState(state)
	crumbs := next.DrillDown.Breadcrumbs

	switch {
	case index == -1:
		if len(crumbs) > 0 {
			crumbs = crumbs[:len(crumbs)-1]
		}
	case index >= 0 && index < len(crumbs):
		crumbs = crumbs[:index+1]
	default:
		return state
	}

	next.DrillDown.Breadcrumbs = crumbs
	if len(crumbs) <= 1 {
		next.DrillDown.Level = models.DrillDepartment
	} else {
		next.DrillDown.Level = navigateDeepLevel
	}
	if len(crumbs) == 0 {
		next.DrillDown.IsActive = false
	}
	return next
}

func cloneState(state models.SessionState) models.SessionState {
	next := models.SessionState{
		CrossFilter: models.CrossFilterState{
			ActiveFilters:  cloneMap(state.CrossFilter.ActiveFilters),
			AppliedFilters: cloneMap(state.CrossFilter.AppliedFilters),
			FilterHistory:  make([]models.FilterEvent, len(state.CrossFilter.FilterHistory)),
		},
		DrillDown: models.DrillDownState{
			IsActive:    state.DrillDown.IsActive,
			Level:       state.DrillDown.Level,
			Data:        cloneMap(state.DrillDown.Data),
			Breadcrumbs: make([]string, len(state.DrillDown.Breadcrumbs)),
			Filters:     make(map[models.DrillLevel]string, len(state.DrillDown.Filters)),
		},
	}
	for i, event := range state.CrossFilter.FilterHistory {
		event.Filter = cloneMap(event.Filter)
		next.CrossFilter.FilterHistory[i] = event
	}
	copy(next.DrillDown.Breadcrumbs, state.DrillDown.Breadcrumbs)
	for level, value := range state.DrillDown.Filters {
		next.DrillDown.Filters[level] = value
	}
	return next
}

func cloneMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
