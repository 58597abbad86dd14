package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-insights-api/internal/models"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
)

type fakeRecordSource struct {
	records     []models.AttendanceRecord
	departments []string
	err         error
	listCalls   int
}

func (f *fakeRecordSource) ListByType(context.Context, models.RecordType) ([]models.AttendanceRecord, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeRecordSource) Departments(context.Context, models.RecordType) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.departments, nil
}

func serviceRecords() []models.AttendanceRecord {
	seenA := time.Date(2024, 11, 14, 9, 0, 0, 0, time.UTC)
	seenB := time.Date(2024, 11, 12, 9, 0, 0, 0, time.UTC)
	return []models.AttendanceRecord{
		{ID: "1", Name: "Alice", Department: "Engineering", DepartmentCode: "ENG", TotalClasses: 40, Attended: 36, Absent: 3, Late: 1, AttendanceRate: 90, RiskLevel: models.RiskNone, LastAttendance: &seenA, Active: true},
		{ID: "2", Name: "Bob", Department: "Science", DepartmentCode: "SCI", TotalClasses: 40, Attended: 30, Absent: 8, Late: 2, AttendanceRate: 75, RiskLevel: models.RiskHigh, LastAttendance: &seenB, Active: true},
	}
}

func newAnalyticsSvc(source *fakeRecordSource, cache *CacheService) *AnalyticsService {
	svc := NewAnalyticsService(AnalyticsServiceParams{
		Records: source,
		Cache:   cache,
		Logger:  zap.NewNop(),
	})
	svc.now = func() time.Time { return time.Date(2024, 11, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestAnalyticsServiceSnapshot(t *testing.T) {
	source := &fakeRecordSource{records: serviceRecords()}
	svc := newAnalyticsSvc(source, nil)

	snapshot, cacheHit, err := svc.Snapshot(context.Background(), SnapshotRequest{Type: "student", Preset: "month"})
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.False(t, cacheHit)
	assert.Equal(t, 2, snapshot.TotalCount)
	assert.InDelta(t, 82.5, snapshot.AttendanceRate, 0.01)
}

func TestAnalyticsServiceSnapshotValidation(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{}, nil)

	tests := []struct {
		name string
		req  SnapshotRequest
	}{
		{"missing type", SnapshotRequest{}},
		{"bad type", SnapshotRequest{Type: "robot"}},
		{"bad preset", SnapshotRequest{Type: "student", Preset: "fortnight"}},
		{"bad risk", SnapshotRequest{Type: "student", RiskLevel: "extreme"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Snapshot(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestAnalyticsServiceSnapshotNilForEmptySource(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{}, nil)

	snapshot, _, err := svc.Snapshot(context.Background(), SnapshotRequest{Type: "student"})
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestAnalyticsServiceSnapshotUsesCache(t *testing.T) {
	source := &fakeRecordSource{records: serviceRecords()}
	cache := NewCacheService(newStubCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	svc := newAnalyticsSvc(source, cache)

	req := SnapshotRequest{Type: "student", Preset: "month"}
	first, hit, err := svc.Snapshot(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := svc.Snapshot(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, source.listCalls)
	assert.Equal(t, first.TotalCount, second.TotalCount)
	assert.InDelta(t, first.AttendanceRate, second.AttendanceRate, 0.001)
}

func TestAnalyticsServiceInvalidateCacheForcesRecompute(t *testing.T) {
	source := &fakeRecordSource{records: serviceRecords()}
	repo := newStubCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	svc := newAnalyticsSvc(source, cache)

	req := SnapshotRequest{Type: "student", Preset: "month"}
	_, _, err := svc.Snapshot(context.Background(), req)
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateCache(context.Background()))
	assert.Equal(t, []string{"analytics:*"}, repo.deleted)

	_, hit, err := svc.Snapshot(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, source.listCalls)
}

func TestAnalyticsServiceSnapshotSourceFailure(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{err: errors.New("db down")}, nil)

	_, _, err := svc.Snapshot(context.Background(), SnapshotRequest{Type: "student"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestAnalyticsServiceSeries(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{records: serviceRecords()}, nil)

	series, _, err := svc.Series(context.Background(), SeriesRequest{
		SnapshotRequest: SnapshotRequest{Type: "student", Preset: "week"},
		Metric:          "attendanceRate",
	})
	require.NoError(t, err)
	require.Len(t, series, 7)
	for _, point := range series {
		assert.GreaterOrEqual(t, point.Value, 0.0)
		assert.LessOrEqual(t, point.Value, 100.0)
	}
}

func TestAnalyticsServiceSeriesEmptyWhenFilteredOut(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{records: serviceRecords()}, nil)

	series, _, err := svc.Series(context.Background(), SeriesRequest{
		SnapshotRequest: SnapshotRequest{Type: "student", Department: "History", Preset: "week"},
	})
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestAnalyticsServicePatterns(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{records: serviceRecords()}, nil)

	patterns, _, err := svc.Patterns(context.Background(), SeriesRequest{
		SnapshotRequest: SnapshotRequest{Type: "student", Preset: "week"},
	})
	require.NoError(t, err)
	require.Len(t, patterns, 7)
	for _, point := range patterns {
		assert.Greater(t, point.MovingAverage, 0.0)
	}
}

func TestAnalyticsServiceStreaks(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{records: serviceRecords()}, nil)

	result, _, err := svc.Streaks(context.Background(), StreakRequest{
		SeriesRequest: SeriesRequest{SnapshotRequest: SnapshotRequest{Type: "student", Preset: "week"}},
	})
	require.NoError(t, err)
	require.Len(t, result.Points, 7)
	assert.Equal(t, result.Stats.TotalGoodDays+result.Stats.TotalPoorDays, len(result.Points))
}

func TestAnalyticsServiceStreaksRejectsBadThreshold(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{records: serviceRecords()}, nil)

	_, _, err := svc.Streaks(context.Background(), StreakRequest{
		SeriesRequest: SeriesRequest{SnapshotRequest: SnapshotRequest{Type: "student"}},
		Threshold:     150,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAnalyticsServiceDepartments(t *testing.T) {
	svc := newAnalyticsSvc(&fakeRecordSource{departments: []string{"Engineering", "Science"}}, nil)

	departments, err := svc.Departments(context.Background(), "student")
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "Science"}, departments)

	_, err = svc.Departments(context.Background(), "robot")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
