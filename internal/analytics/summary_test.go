package analytics

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

func TestSummarizeAggregates(t *testing.T) {
	now := time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC)
	records := []models.AttendanceRecord{
		{
			ID: "rec-1", Department: "Mathematics", DepartmentCode: "MATH",
			TotalClasses: 20, Attended: 18, Absent: 1, Late: 1, AttendanceRate: 90,
			RiskLevel: models.RiskLow, LastAttendance: tsPtr(now),
		},
		{
			ID: "rec-2", Department: "Physics", DepartmentCode: "PHYS",
			TotalClasses: 20, Attended: 15, Absent: 3, Late: 2, AttendanceRate: 75,
			RiskLevel: models.RiskMedium, LastAttendance: tsPtr(now),
		},
	}

	snapshot := Summarize(records, models.RecordTypeStudent)

	assert.Equal(t, 2, snapshot.TotalCount)
	assert.Equal(t, 33, snapshot.AttendedTotal)
	assert.Equal(t, 4, snapshot.AbsentTotal)
	assert.Equal(t, 3, snapshot.LateTotal)
	assert.InDelta(t, 82.5, snapshot.AttendanceRate, 1e-9)

	require.Len(t, snapshot.Departments, 2)
	math := snapshot.Departments["Mathematics"]
	assert.Equal(t, "MATH", math.Code)
	assert.Equal(t, 1, math.Count)
	assert.InDelta(t, 90, math.AttendanceRate, 1e-9)
	phys := snapshot.Departments["Physics"]
	assert.Equal(t, 1, phys.Count)
	assert.InDelta(t, 75, phys.AttendanceRate, 1e-9)

	require.Len(t, snapshot.RiskLevels, 2)
	assert.Equal(t, models.RiskLow, snapshot.RiskLevels[0].Level)
	assert.Equal(t, 1, snapshot.RiskLevels[0].Count)
	assert.NotEmpty(t, snapshot.RiskLevels[0].Color)
	assert.Equal(t, models.RiskMedium, snapshot.RiskLevels[1].Level)
	assert.Equal(t, 1, snapshot.RiskLevels[1].Count)
}

func TestSummarizeZeroClassesDivisionSafety(t *testing.T) {
	records := []models.AttendanceRecord{
		{ID: "rec-1", Department: "Arts", RiskLevel: models.RiskNone},
		{ID: "rec-2", Department: "Arts", RiskLevel: models.RiskNone},
	}

	snapshot := Summarize(records, models.RecordTypeStudent)

	assert.Equal(t, 2, snapshot.TotalCount)
	assert.Zero(t, snapshot.AttendanceRate)
	assert.Zero(t, snapshot.LateRate)
	assert.False(t, snapshot.AttendanceRate != snapshot.AttendanceRate, "rate must not be NaN")
}

func TestSummarizeEmptyCollection(t *testing.T) {
	snapshot := Summarize(nil, models.RecordTypeInstructor)
	assert.Zero(t, snapshot.TotalCount)
	assert.True(t, snapshot.Empty())
	assert.Empty(t, snapshot.Departments)
	assert.Empty(t, snapshot.RiskLevels)
}

func TestSummarizeClampsRates(t *testing.T) {
	records := []models.AttendanceRecord{
		{ID: "rec-1", Department: "Arts", TotalClasses: 10, Attended: 10, Late: 10, AttendanceRate: 150, RiskLevel: models.RiskNone},
	}

	snapshot := Summarize(records, models.RecordTypeStudent)

	assert.LessOrEqual(t, snapshot.AttendanceRate, 100.0)
	assert.LessOrEqual(t, snapshot.LateRate, 25.0)
	assert.LessOrEqual(t, snapshot.Departments["Arts"].AttendanceRate, 100.0)
}

func TestSummarizeDepartmentCodeFallback(t *testing.T) {
	records := []models.AttendanceRecord{
		{ID: "rec-1", Department: "Computer Science", TotalClasses: 10, Attended: 9, AttendanceRate: 90, RiskLevel: models.RiskNone},
	}

	snapshot := Summarize(records, models.RecordTypeStudent)
	assert.Equal(t, "CS", snapshot.Departments["Computer Science"].Code)
}

func TestSummarizeDepartmentCodeFallbackMultibyte(t *testing.T) {
	records := []models.AttendanceRecord{
		{ID: "rec-1", Department: "économie appliquée", TotalClasses: 10, Attended: 9, AttendanceRate: 90, RiskLevel: models.RiskNone},
	}

	snapshot := Summarize(records, models.RecordTypeStudent)
	code := snapshot.Departments["économie appliquée"].Code
	assert.Equal(t, "ÉA", code)
	assert.True(t, utf8.ValidString(code))
}
