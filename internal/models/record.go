package models

import "time"

// RiskLevel classifies how likely a person is to fall below the attendance target.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid returns true when the level is a supported value.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskNone, RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Color returns the display colour assigned to the risk bucket.
func (r RiskLevel) Color() string {
	switch r {
	case RiskHigh:
		return "#EF4444"
	case RiskMedium:
		return "#F59E0B"
	case RiskLow:
		return "#3B82F6"
	default:
		return "#10B981"
	}
}

// severity orders risk levels from none to high for stable bucket output.
func (r RiskLevel) severity() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// RiskLevelOrder lists supported levels from least to most severe.
func RiskLevelOrder() []RiskLevel {
	return []RiskLevel{RiskNone, RiskLow, RiskMedium, RiskHigh}
}

// LessSevere reports whether r ranks below other.
func (r RiskLevel) LessSevere(other RiskLevel) bool {
	return r.severity() < other.severity()
}

// RecordType distinguishes whose attendance a record describes. It only
// affects labelling, never computation.
type RecordType string

const (
	RecordTypeStudent    RecordType = "student"
	RecordTypeInstructor RecordType = "instructor"
)

// Valid returns true when the type is supported.
func (t RecordType) Valid() bool {
	return t == RecordTypeStudent || t == RecordTypeInstructor
}

// AttendanceRecord is one person's cumulative attendance row as supplied by
// the record source. The analytics engine treats it as immutable input.
// LastAttendance is nil when the source row had no usable timestamp; the
// record source normalises unparsable timestamps to nil rather than dropping
// the row.
type AttendanceRecord struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Department     string     `db:"department" json:"department"`
	DepartmentCode string     `db:"department_code" json:"department_code"`
	TotalClasses   int        `db:"total_classes" json:"total_classes"`
	Attended       int        `db:"attended" json:"attended"`
	Absent         int        `db:"absent" json:"absent"`
	Late           int        `db:"late" json:"late"`
	AttendanceRate float64    `db:"attendance_rate" json:"attendance_rate"`
	RiskLevel      RiskLevel  `db:"risk_level" json:"risk_level"`
	LastAttendance *time.Time `db:"last_attendance" json:"last_attendance,omitempty"`
	Active         bool       `db:"active" json:"active"`
	Subjects       []string   `json:"subjects,omitempty"`
}
