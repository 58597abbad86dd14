package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

func baseSnapshot() models.AnalyticsSnapshot {
	return models.AnalyticsSnapshot{
		TotalCount:     40,
		AttendanceRate: 86.5,
		LateRate:       4.2,
	}
}

func TestGenerateSeriesBucketing(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	snapshot := baseSnapshot()

	tests := []struct {
		name       string
		tr         models.TimeRange
		wantLen    int
		wantKind   models.BucketKind
		firstLabel string
		lastLabel  string
	}{
		{
			name: "today buckets campus hours", tr: models.TimeRange{Preset: models.PresetToday},
			wantLen: 18, wantKind: models.BucketHour, firstLabel: "6:00", lastLabel: "23:00",
		},
		{
			name: "week buckets weekdays", tr: models.TimeRange{Preset: models.PresetWeek},
			wantLen: 7, wantKind: models.BucketWeekday, firstLabel: "Sunday", lastLabel: "Saturday",
		},
		{
			name: "month buckets calendar days", tr: models.TimeRange{Preset: models.PresetMonth},
			wantLen: 30, wantKind: models.BucketDate, firstLabel: "11/1", lastLabel: "11/30",
		},
		{
			name: "quarter buckets thirteen weeks", tr: models.TimeRange{Preset: models.PresetQuarter},
			wantLen: 13, wantKind: models.BucketWeek, firstLabel: "Week 1", lastLabel: "Week 13",
		},
		{
			name: "year buckets twelve months", tr: models.TimeRange{Preset: models.PresetYear},
			wantLen: 12, wantKind: models.BucketMonth, firstLabel: "Jan", lastLabel: "Dec",
		},
		{
			name: "custom buckets day span",
			tr: models.TimeRange{
				Preset: models.PresetCustom,
				Start:  time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
				End:    time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC),
			},
			wantLen: 10, wantKind: models.BucketDate, firstLabel: "11/1", lastLabel: "11/10",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			series := GenerateSeries(snapshot, SeriesOptions{Metric: models.MetricAttendanceRate, Range: tc.tr}, now)
			require.Len(t, series, tc.wantLen)
			assert.Equal(t, tc.wantKind, series[0].BucketKind)
			assert.Equal(t, tc.firstLabel, series[0].Label)
			assert.Equal(t, tc.lastLabel, series[len(series)-1].Label)
			for _, point := range series {
				assert.Equal(t, tc.wantKind, point.BucketKind)
				assert.NotEmpty(t, point.BucketValue)
			}
		})
	}
}

func TestGenerateSeriesInvalidCustomFallsBack(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	inverted := models.TimeRange{Preset: models.PresetCustom, Start: now, End: now.AddDate(0, 0, -5)}

	series := GenerateSeries(baseSnapshot(), SeriesOptions{Metric: models.MetricAttendanceRate, Range: inverted}, now)

	// November has 30 days; the invalid range degrades to the month default.
	require.Len(t, series, 30)
	assert.Equal(t, models.BucketDate, series[0].BucketKind)
}

func TestGenerateSeriesCustomCapped(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	tr := models.TimeRange{
		Preset: models.PresetCustom,
		Start:  now.AddDate(-3, 0, 0),
		End:    now,
	}

	series := GenerateSeries(baseSnapshot(), SeriesOptions{Metric: models.MetricAttendanceRate, Range: tr}, now)
	assert.Len(t, series, 365)
}

func TestGenerateSeriesBounds(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	snapshots := []models.AnalyticsSnapshot{
		baseSnapshot(),
		{AttendanceRate: 0.5, LateRate: 0.1},
		{AttendanceRate: 99.9, LateRate: 24.9},
	}
	presets := []models.TimePreset{
		models.PresetToday, models.PresetWeek, models.PresetMonth,
		models.PresetQuarter, models.PresetYear,
	}

	for _, snapshot := range snapshots {
		for _, preset := range presets {
			for _, metric := range []models.SeriesMetric{models.MetricAttendanceRate, models.MetricLateRate} {
				series := GenerateSeries(snapshot, SeriesOptions{
					Metric: metric, Range: models.TimeRange{Preset: preset}, WithComparison: true,
				}, now)
				max := 100.0
				if metric == models.MetricLateRate {
					max = 25.0
				}
				for _, point := range series {
					assert.GreaterOrEqual(t, point.Value, 0.0)
					assert.LessOrEqual(t, point.Value, max)
					require.NotNil(t, point.Previous)
					assert.GreaterOrEqual(t, *point.Previous, 0.0)
					assert.LessOrEqual(t, *point.Previous, max)
				}
			}
		}
	}
}

func TestGenerateSeriesDeterministic(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	opts := SeriesOptions{
		Metric:         models.MetricLateRate,
		Range:          models.TimeRange{Preset: models.PresetQuarter},
		WithComparison: true,
	}

	first := GenerateSeries(baseSnapshot(), opts, now)
	second := GenerateSeries(baseSnapshot(), opts, now)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].BucketValue, second[i].BucketValue)
		assert.Equal(t, first[i].Value, second[i].Value)
		assert.Equal(t, *first[i].Previous, *second[i].Previous)
	}
}

func TestGenerateSeriesComparisonOmitted(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	series := GenerateSeries(baseSnapshot(), SeriesOptions{
		Metric: models.MetricAttendanceRate,
		Range:  models.TimeRange{Preset: models.PresetWeek},
	}, now)

	for _, point := range series {
		assert.Nil(t, point.Previous)
	}
}

func TestGenerateSeriesWeekendDip(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	series := GenerateSeries(baseSnapshot(), SeriesOptions{
		Metric: models.MetricAttendanceRate,
		Range:  models.TimeRange{Preset: models.PresetWeek},
	}, now)

	require.Len(t, series, 7)
	sunday, wednesday := series[0].Value, series[3].Value
	assert.Less(t, sunday, wednesday)
}
