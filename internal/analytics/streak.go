package analytics

import "github.com/noah-isme/attendance-insights-api/internal/models"

// DefaultStreakThreshold is the attendance rate at or above which a bucket
// counts as a good day.
const DefaultStreakThreshold = 85.0

// Streak classifications.
const (
	StreakGood = "good"
	StreakPoor = "poor"
)

// StreakPoint is a series point annotated with its running streak. Streak is
// signed: +n for the n-th consecutive good bucket, -n for the n-th
// consecutive poor one.
type StreakPoint struct {
	models.SeriesPoint
	Streak        int    `json:"currentStreak"`
	StreakType    string `json:"streakType"`
	IsStreakBreak bool   `json:"isStreakBreak"`
}

// StreakStats summarises the runs found across the whole series.
type StreakStats struct {
	MaxGoodStreak     int    `json:"maxGoodStreak"`
	MaxPoorStreak     int    `json:"maxPoorStreak"`
	CurrentStreak     int    `json:"currentStreak"`
	CurrentStreakType string `json:"currentStreakType"`
	TotalGoodDays     int    `json:"totalGoodDays"`
	TotalPoorDays     int    `json:"totalPoorDays"`
}

// StreakResult bundles the annotated sequence with its terminal stats.
type StreakResult struct {
	Points []StreakPoint `json:"points"`
	Stats  StreakStats   `json:"stats"`
}

// AnalyzeStreaks walks the series left to right classifying each point as
// good (value >= threshold) or poor, tracking consecutive runs. A point is a
// streak break when its classification differs from its predecessor's; the
// first point is never a break. Terminal stats reflect the final running
// streak. A threshold <= 0 selects DefaultStreakThreshold.
func AnalyzeStreaks(series []models.SeriesPoint, threshold float64) StreakResult {
	if threshold <= 0 {
		threshold = DefaultStreakThreshold
	}

	result := StreakResult{Points: make([]StreakPoint, 0, len(series))}
	goodRun, poorRun := 0, 0

	for i, point := range series {
		good := point.Value >= threshold

		isBreak := false
		if i > 0 {
			prevGood := series[i-1].Value >= threshold
			isBreak = good != prevGood
		}

		annotated := StreakPoint{SeriesPoint: point, IsStreakBreak: isBreak}
		if good {
			goodRun++
			poorRun = 0
			result.Stats.TotalGoodDays++
			annotated.Streak = goodRun
			annotated.StreakType = StreakGood
			if goodRun > result.Stats.MaxGoodStreak {
				result.Stats.MaxGoodStreak = goodRun
			}
		} else {
			poorRun++
			goodRun = 0
			result.Stats.TotalPoorDays++
			annotated.Streak = -poorRun
			annotated.StreakType = StreakPoor
			if poorRun > result.Stats.MaxPoorStreak {
				result.Stats.MaxPoorStreak = poorRun
			}
		}
		result.Points = append(result.Points, annotated)
	}

	if n := len(result.Points); n > 0 {
		last := result.Points[n-1]
		result.Stats.CurrentStreak = last.Streak
		result.Stats.CurrentStreakType = last.StreakType
	}
	return result
}
