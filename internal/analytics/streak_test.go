package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

func TestAnalyzeStreaksScenario(t *testing.T) {
	result := AnalyzeStreaks(seriesOf(90, 90, 80, 70, 95), 85)

	require.Len(t, result.Points, 5)
	wantStreaks := []int{1, 2, -1, -2, 1}
	wantBreaks := []bool{false, false, true, false, true}
	for i, point := range result.Points {
		assert.Equal(t, wantStreaks[i], point.Streak, "index %d streak", i)
		assert.Equal(t, wantBreaks[i], point.IsStreakBreak, "index %d break", i)
	}
	assert.Equal(t, StreakGood, result.Points[0].StreakType)
	assert.Equal(t, StreakPoor, result.Points[2].StreakType)

	assert.Equal(t, 2, result.Stats.MaxGoodStreak)
	assert.Equal(t, 2, result.Stats.MaxPoorStreak)
	assert.Equal(t, 1, result.Stats.CurrentStreak)
	assert.Equal(t, StreakGood, result.Stats.CurrentStreakType)
	assert.Equal(t, 3, result.Stats.TotalGoodDays)
	assert.Equal(t, 2, result.Stats.TotalPoorDays)
}

func TestAnalyzeStreaksMaxMatchesLongestRun(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantGood int
		wantPoor int
	}{
		{"all good", []float64{90, 91, 92}, 3, 0},
		{"all poor", []float64{50, 60, 70, 80}, 0, 4},
		{"alternating", []float64{90, 80, 90, 80}, 1, 1},
		{"threshold is inclusive", []float64{85, 85, 84.9}, 2, 1},
		{"longest run in middle", []float64{80, 90, 90, 90, 80, 90}, 3, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := AnalyzeStreaks(seriesOf(tc.values...), DefaultStreakThreshold)
			assert.Equal(t, tc.wantGood, result.Stats.MaxGoodStreak)
			assert.Equal(t, tc.wantPoor, result.Stats.MaxPoorStreak)
		})
	}
}

func TestAnalyzeStreaksTerminalStats(t *testing.T) {
	result := AnalyzeStreaks(seriesOf(90, 80, 70, 60), 85)

	assert.Equal(t, -3, result.Stats.CurrentStreak)
	assert.Equal(t, StreakPoor, result.Stats.CurrentStreakType)
}

func TestAnalyzeStreaksDefaultThreshold(t *testing.T) {
	explicit := AnalyzeStreaks(seriesOf(90, 80), DefaultStreakThreshold)
	defaulted := AnalyzeStreaks(seriesOf(90, 80), 0)

	assert.Equal(t, explicit.Stats, defaulted.Stats)
}

func TestAnalyzeStreaksEmptySeries(t *testing.T) {
	result := AnalyzeStreaks(nil, 85)

	assert.Empty(t, result.Points)
	assert.Zero(t, result.Stats.CurrentStreak)
	assert.Empty(t, result.Stats.CurrentStreakType)
}

func TestAnalyzeStreaksPreservesInput(t *testing.T) {
	series := seriesOf(90, 80)
	AnalyzeStreaks(series, 85)
	assert.Equal(t, seriesOf(90, 80), series)
}

func TestAnalyzeStreaksAnnotationsCarrySeriesFields(t *testing.T) {
	series := []models.SeriesPoint{{
		BucketKind: models.BucketDate, BucketValue: "2024-11-01", Label: "11/1",
		Metric: models.MetricAttendanceRate, Value: 92,
	}}
	result := AnalyzeStreaks(series, 85)

	require.Len(t, result.Points, 1)
	assert.Equal(t, "2024-11-01", result.Points[0].BucketValue)
	assert.Equal(t, models.BucketDate, result.Points[0].BucketKind)
}
