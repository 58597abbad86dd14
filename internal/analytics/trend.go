package analytics

import (
	"math"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

// Tracked trend metrics.
const (
	trendTotalCount     = "totalCount"
	trendAttendanceRate = "attendanceRate"
	trendDepartments    = "departments"
	trendHighRisk       = "highRisk"
)

// CalculateTrends attaches a period-over-period trend per tracked metric to
// the snapshot aggregates. The previous-period values are synthesized from
// the current ones (see previousPeriodValue); swapping in real historical
// data only requires replacing that function.
func CalculateTrends(snapshot models.AnalyticsSnapshot) models.TrendSet {
	highRisk := 0
	for _, bucket := range snapshot.RiskLevels {
		if bucket.Level == models.RiskHigh {
			highRisk = bucket.Count
		}
	}

	return models.TrendSet{
		TotalCount:     trendFor(trendTotalCount, float64(snapshot.TotalCount)),
		AttendanceRate: trendFor(trendAttendanceRate, snapshot.AttendanceRate),
		Departments:    trendFor(trendDepartments, float64(len(snapshot.Departments))),
		HighRisk:       trendFor(trendHighRisk, float64(highRisk)),
	}
}

func trendFor(metric string, current float64) models.Trend {
	previous := previousPeriodValue(metric, current)
	return models.Trend{
		Change:    percentageChange(current, previous),
		Direction: direction(current, previous),
	}
}

// previousPeriodValue fabricates a deterministic previous-period value from
// the current one. This mirrors the source dashboard, which never had real
// historical aggregates to compare against; the offsets are fixed so repeated
// evaluations agree. A real-history backend replaces only this function.
func previousPeriodValue(metric string, current float64) float64 {
	switch metric {
	case trendTotalCount:
		return math.Round(current * 0.92)
	case trendAttendanceRate:
		if current == 0 {
			return 0
		}
		previous := current - 2.5
		if previous < 0 {
			return 0
		}
		return previous
	case trendHighRisk:
		return current + 1
	default:
		return current
	}
}

// percentageChange returns |current-previous| as a percentage of previous.
// A zero previous short-circuits to 100 when current is positive and 0
// otherwise, so the division can never produce NaN or Inf.
func percentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return math.Abs((current-previous)/previous) * 100
}

func direction(current, previous float64) models.TrendDirection {
	switch {
	case current > previous:
		return models.TrendUp
	case current < previous:
		return models.TrendDown
	default:
		return models.TrendNeutral
	}
}
