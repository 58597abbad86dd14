package models

// TrendDirection indicates how a metric moved against the previous period.
type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// Trend captures the period-over-period movement of one tracked metric.
// Change is an absolute percentage delta, never negative.
type Trend struct {
	Change    float64        `json:"change"`
	Direction TrendDirection `json:"direction"`
}

// TrendSet holds one trend per tracked dashboard metric.
type TrendSet struct {
	TotalCount     Trend `json:"totalCount"`
	AttendanceRate Trend `json:"attendanceRate"`
	Departments    Trend `json:"departments"`
	HighRisk       Trend `json:"highRisk"`
}

// DepartmentStat aggregates one department's slice of the filtered records.
type DepartmentStat struct {
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	Count          int     `json:"count"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// RiskBucket counts records sharing a risk classification.
type RiskBucket struct {
	Level RiskLevel `json:"level"`
	Count int       `json:"count"`
	Color string    `json:"color"`
}

// AnalyticsSnapshot is the aggregate view of one filtered record collection.
// It is a derived value, recomputed on every read, never persisted.
type AnalyticsSnapshot struct {
	Type           RecordType                `json:"type"`
	TotalCount     int                       `json:"totalCount"`
	AttendedTotal  int                       `json:"attendedTotal"`
	AbsentTotal    int                       `json:"absentTotal"`
	LateTotal      int                       `json:"lateTotal"`
	ClassesTotal   int                       `json:"classesTotal"`
	AttendanceRate float64                   `json:"attendanceRate"`
	LateRate       float64                   `json:"lateRate"`
	Departments    map[string]DepartmentStat `json:"departments"`
	RiskLevels     []RiskBucket              `json:"riskLevels"`
	Trends         TrendSet                  `json:"trends"`
}

// Empty reports whether the snapshot describes a collection emptied by
// filtering. Callers render an empty state for it; a genuinely empty dataset
// is represented by a nil snapshot instead.
func (s *AnalyticsSnapshot) Empty() bool {
	return s == nil || s.TotalCount == 0
}
