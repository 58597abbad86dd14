package analytics

import "github.com/noah-isme/attendance-insights-api/internal/models"

// PatternPoint is a series point annotated with moving-average and
// peak/valley flags.
type PatternPoint struct {
	models.SeriesPoint
	MovingAverage float64 `json:"movingAverage"`
	IsPeak        bool    `json:"isPeak"`
	IsValley      bool    `json:"isValley"`
}

// patternWindow is the centered moving-average window width.
const patternWindow = 3

// AnalyzePatterns annotates each point with a centered window-3 moving
// average and peak/valley flags. The input is never mutated; a new annotated
// sequence of identical length is returned.
//
// The window shrinks at the boundaries instead of wrapping or padding, and a
// missing neighbour defaults to the point's own value, so edge points can
// trivially qualify as peak or valley. On a flat run a point may be both a
// peak and a valley at once; that is the documented contract, not a bug.
func AnalyzePatterns(series []models.SeriesPoint) []PatternPoint {
	n := len(series)
	annotated := make([]PatternPoint, 0, n)
	for i, point := range series {
		lo := i - 1
		if lo < 0 {
			lo = 0
		}
		hi := i - 1 + patternWindow
		if hi > n {
			hi = n
		}
		sum := 0.0
		for j := lo; j < hi; j++ {
			sum += series[j].Value
		}
		average := sum / float64(hi-lo)

		left, right := point.Value, point.Value
		if i > 0 {
			left = series[i-1].Value
		}
		if i < n-1 {
			right = series[i+1].Value
		}

		annotated = append(annotated, PatternPoint{
			SeriesPoint:   point,
			MovingAverage: average,
			IsPeak:        point.Value >= left && point.Value >= right,
			IsValley:      point.Value <= left && point.Value <= right,
		})
	}
	return annotated
}
