package analytics

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

// SeriesOptions controls series generation.
type SeriesOptions struct {
	Metric         models.SeriesMetric
	Range          models.TimeRange
	WithComparison bool
}

// comparisonBaseDelta shifts the synthetic previous-period series below the
// current one; comparisonDamping flattens its bucket variation slightly.
const (
	comparisonBaseDelta = 3.0
	comparisonDamping   = 0.8
	maxCustomPoints     = 365
)

// GenerateSeries produces the time-bucketed series for the snapshot's base
// rate. Bucket granularity follows the range preset; values are the base rate
// perturbed by a smooth deterministic offset so that identical inputs always
// produce identical output. An invalid custom range degrades to the current
// month's daily bucketing rather than returning an empty series.
func GenerateSeries(snapshot models.AnalyticsSnapshot, opts SeriesOptions, now time.Time) []models.SeriesPoint {
	metric := opts.Metric
	if !metric.Valid() {
		metric = models.MetricAttendanceRate
	}

	buckets := bucketsFor(opts.Range, now)
	points := make([]models.SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		point := models.SeriesPoint{
			BucketKind:  b.kind,
			BucketValue: b.value,
			Label:       b.label,
			Metric:      metric,
			Value:       metricValue(snapshot, metric, b.offset, 0),
		}
		if opts.WithComparison {
			previous := metricValue(snapshot, metric, b.offset*comparisonDamping, -comparisonBaseDelta)
			point.Previous = &previous
		}
		points = append(points, point)
	}
	return points
}

// metricValue derives one bucket's value from the snapshot base rate, the
// bucket offset, and a base shift, clamped to the metric's legal range.
// Lateness moves against attendance: buckets with depressed attendance show
// elevated late rates.
func metricValue(snapshot models.AnalyticsSnapshot, metric models.SeriesMetric, offset, baseShift float64) float64 {
	if metric == models.MetricLateRate {
		return clampRate(snapshot.LateRate-offset/3-baseShift/3, maxLateRate)
	}
	return clampRate(snapshot.AttendanceRate+offset+baseShift, 100)
}

type bucket struct {
	kind   models.BucketKind
	value  string
	label  string
	offset float64
}

func bucketsFor(tr models.TimeRange, now time.Time) []bucket {
	switch tr.Preset {
	case models.PresetToday:
		return hourlyBuckets()
	case models.PresetWeek:
		return weekdayBuckets()
	case models.PresetQuarter:
		return quarterBuckets()
	case models.PresetYear:
		return yearBuckets()
	case models.PresetCustom:
		if !tr.CustomValid() {
			return dailyBuckets(now)
		}
		return customBuckets(tr.Start, tr.End)
	default:
		return dailyBuckets(now)
	}
}

// hourlyBuckets covers campus hours 6:00 through 23:00, with attendance
// ramping up through the morning and tapering off at night.
func hourlyBuckets() []bucket {
	buckets := make([]bucket, 0, 18)
	for hour := 6; hour <= 23; hour++ {
		offset := 4*math.Sin(math.Pi*float64(hour-6)/17) - 1.5
		buckets = append(buckets, bucket{
			kind:   models.BucketHour,
			value:  strconv.Itoa(hour),
			label:  fmt.Sprintf("%d:00", hour),
			offset: offset,
		})
	}
	return buckets
}

// weekdayOffsets dips on weekends and peaks midweek.
var weekdayOffsets = [7]float64{-7, 1.5, 2.5, 3, 2, 0.5, -6}

func weekdayBuckets() []bucket {
	buckets := make([]bucket, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		buckets = append(buckets, bucket{
			kind:   models.BucketWeekday,
			value:  strconv.Itoa(int(day)),
			label:  day.String(),
			offset: weekdayOffsets[day],
		})
	}
	return buckets
}

func dailyBuckets(now time.Time) []bucket {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	days := first.AddDate(0, 1, -1).Day()
	buckets := make([]bucket, 0, days)
	for day := 1; day <= days; day++ {
		date := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
		buckets = append(buckets, bucket{
			kind:   models.BucketDate,
			value:  date.Format("2006-01-02"),
			label:  fmt.Sprintf("%d/%d", int(date.Month()), day),
			offset: dayOffset(date, day),
		})
	}
	return buckets
}

func quarterBuckets() []bucket {
	buckets := make([]bucket, 0, 13)
	for week := 1; week <= 13; week++ {
		buckets = append(buckets, bucket{
			kind:   models.BucketWeek,
			value:  strconv.Itoa(week),
			label:  fmt.Sprintf("Week %d", week),
			offset: 2.5 * math.Sin(math.Pi*float64(week)/13),
		})
	}
	return buckets
}

// monthOffsets reflect the academic year: engagement sags over the summer
// break and recovers each semester start.
var monthOffsets = [12]float64{1.5, 2, 2.5, 2, 1, -2.5, -5, -4.5, 2.5, 3, 2, -1}

func yearBuckets() []bucket {
	buckets := make([]bucket, 0, 12)
	for month := 1; month <= 12; month++ {
		buckets = append(buckets, bucket{
			kind:   models.BucketMonth,
			value:  strconv.Itoa(month),
			label:  time.Month(month).String()[:3],
			offset: monthOffsets[month-1],
		})
	}
	return buckets
}

func customBuckets(start, end time.Time) []bucket {
	start = models.DayStart(start)
	end = models.DayStart(end)
	buckets := make([]bucket, 0, 32)
	for date, i := start, 0; !date.After(end) && i < maxCustomPoints; date, i = date.AddDate(0, 0, 1), i+1 {
		buckets = append(buckets, bucket{
			kind:   models.BucketDate,
			value:  date.Format("2006-01-02"),
			label:  fmt.Sprintf("%d/%d", int(date.Month()), date.Day()),
			offset: dayOffset(date, i),
		})
	}
	return buckets
}

// dayOffset combines a weekend dip with a gentle fortnightly wave.
func dayOffset(date time.Time, index int) float64 {
	offset := 1.2 * math.Sin(2*math.Pi*float64(index)/14)
	if weekday := date.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		offset -= 6
	}
	return offset
}
