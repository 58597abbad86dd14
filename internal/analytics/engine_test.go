package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

func TestComputeSnapshotEndToEnd(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	records := []models.AttendanceRecord{
		{
			ID: "rec-1", Department: "Mathematics", DepartmentCode: "MATH",
			TotalClasses: 20, Attended: 18, Absent: 1, Late: 1, AttendanceRate: 90,
			RiskLevel: models.RiskLow, LastAttendance: tsPtr(now.AddDate(0, 0, -1)),
		},
		{
			ID: "rec-2", Department: "Physics", DepartmentCode: "PHYS",
			TotalClasses: 20, Attended: 15, Absent: 3, Late: 2, AttendanceRate: 75,
			RiskLevel: models.RiskMedium, LastAttendance: tsPtr(now.AddDate(0, 0, -2)),
		},
	}

	snapshot := ComputeSnapshot(records, models.RecordTypeStudent, FilterOptions{
		Department: "all", RiskLevel: "all",
		Range: models.TimeRange{Preset: models.PresetMonth},
	}, now)

	require.NotNil(t, snapshot)
	assert.Equal(t, 2, snapshot.TotalCount)
	assert.InDelta(t, 82.5, snapshot.AttendanceRate, 1e-9)
	require.Len(t, snapshot.Departments, 2)
	assert.InDelta(t, 90, snapshot.Departments["Mathematics"].AttendanceRate, 1e-9)
	assert.InDelta(t, 75, snapshot.Departments["Physics"].AttendanceRate, 1e-9)
	require.Len(t, snapshot.RiskLevels, 2)
	assert.Equal(t, models.RiskLow, snapshot.RiskLevels[0].Level)
	assert.Equal(t, 1, snapshot.RiskLevels[0].Count)
	assert.Equal(t, models.RiskMedium, snapshot.RiskLevels[1].Level)
	assert.Equal(t, 1, snapshot.RiskLevels[1].Count)
	assert.NotEqual(t, models.TrendDirection(""), snapshot.Trends.TotalCount.Direction)
}

func TestComputeSnapshotNilForEmptyInput(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	snapshot := ComputeSnapshot(nil, models.RecordTypeStudent, FilterOptions{
		Department: "all", RiskLevel: "all",
		Range: models.TimeRange{Preset: models.PresetMonth},
	}, now)
	assert.Nil(t, snapshot)
}

func TestComputeSnapshotFilteredEmptyIsEmptyState(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	records := sampleRecords(now)

	snapshot := ComputeSnapshot(records, models.RecordTypeStudent, FilterOptions{
		Department: "all", RiskLevel: "high",
		Range: models.TimeRange{Preset: models.PresetMonth},
	}, now)

	// Emptied by filtering under a preset range: a distinguishable empty
	// state, not nil and not an error.
	require.NotNil(t, snapshot)
	assert.True(t, snapshot.Empty())
	assert.Zero(t, snapshot.TotalCount)
	assert.Zero(t, snapshot.AttendanceRate)
}

func TestComputeSnapshotInvertedCustomRange(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	records := sampleRecords(now)

	snapshot := ComputeSnapshot(records, models.RecordTypeStudent, FilterOptions{
		Department: "all", RiskLevel: "all",
		Range: models.TimeRange{Preset: models.PresetCustom, Start: now, End: now.AddDate(0, 0, -10)},
	}, now)

	require.NotNil(t, snapshot)
	assert.Equal(t, len(records), snapshot.TotalCount)
}

func TestComputeSnapshotThenSeriesPipeline(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	records := sampleRecords(now)
	tr := models.TimeRange{Preset: models.PresetWeek}

	snapshot := ComputeSnapshot(records, models.RecordTypeStudent, FilterOptions{
		Department: "all", RiskLevel: "all", Range: tr,
	}, now)
	require.NotNil(t, snapshot)

	series := GenerateSeries(*snapshot, SeriesOptions{Metric: models.MetricAttendanceRate, Range: tr}, now)
	patterns := AnalyzePatterns(series)
	streaks := AnalyzeStreaks(series, DefaultStreakThreshold)

	assert.Len(t, patterns, len(series))
	assert.Len(t, streaks.Points, len(series))
	assert.Equal(t, streaks.Stats.TotalGoodDays+streaks.Stats.TotalPoorDays, len(series))
}
