package models

// SeriesMetric selects which rate a generated series carries.
type SeriesMetric string

const (
	MetricAttendanceRate SeriesMetric = "attendanceRate"
	MetricLateRate       SeriesMetric = "lateRate"
)

// Valid returns true when the metric is supported.
func (m SeriesMetric) Valid() bool {
	return m == MetricAttendanceRate || m == MetricLateRate
}

// BucketKind discriminates what a series point's bucket value denotes. The
// kind travels with every point so consumers never have to sniff which field
// happens to be present.
type BucketKind string

const (
	BucketHour    BucketKind = "hour"
	BucketWeekday BucketKind = "weekday"
	BucketDate    BucketKind = "date"
	BucketWeek    BucketKind = "week"
	BucketMonth   BucketKind = "month"
)

// SeriesPoint is one bucket of a generated time series. Value is the selected
// metric, already clamped to its legal range. Previous is populated only in
// comparison mode and mirrors the same bucket one period back.
type SeriesPoint struct {
	BucketKind  BucketKind   `json:"bucketKind"`
	BucketValue string       `json:"bucketValue"`
	Label       string       `json:"label"`
	Metric      SeriesMetric `json:"metric"`
	Value       float64      `json:"value"`
	Previous    *float64     `json:"previous,omitempty"`
}
