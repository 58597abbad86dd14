package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-insights-api/internal/models"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
	"github.com/noah-isme/attendance-insights-api/pkg/export"
)

type fakeAnalyticsProvider struct {
	snapshot *models.AnalyticsSnapshot
	series   []models.SeriesPoint
	err      error
}

func (f *fakeAnalyticsProvider) Snapshot(context.Context, SnapshotRequest) (*models.AnalyticsSnapshot, bool, error) {
	return f.snapshot, false, f.err
}

func (f *fakeAnalyticsProvider) Series(context.Context, SeriesRequest) ([]models.SeriesPoint, bool, error) {
	return f.series, false, f.err
}

func exportSnapshot() *models.AnalyticsSnapshot {
	return &models.AnalyticsSnapshot{
		Type:           models.RecordTypeStudent,
		TotalCount:     2,
		AttendanceRate: 82.5,
		LateRate:       3.75,
		Departments: map[string]models.DepartmentStat{
			"Engineering": {Name: "Engineering", Code: "ENG", Count: 1, AttendanceRate: 90},
			"Science":     {Name: "Science", Code: "SCI", Count: 1, AttendanceRate: 75},
		},
	}
}

func newExportSvc(provider *fakeAnalyticsProvider, cfg ExportConfig) *ExportService {
	svc := NewExportService(provider, cfg, zap.NewNop(), nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 11, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceSnapshotCSV(t *testing.T) {
	svc := newExportSvc(&fakeAnalyticsProvider{snapshot: exportSnapshot()}, ExportConfig{Enabled: true})

	result, err := svc.SnapshotExport(context.Background(), SnapshotRequest{Type: "student"}, export.FormatCSV)
	require.NoError(t, err)

	body := string(result.Payload)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "student_summary_20241115_100000.csv", result.Filename)
	assert.True(t, strings.HasPrefix(body, "Department,Code,Records,Attendance (%),Late (%)\n"))
	assert.Contains(t, body, "All Departments,,2,82.5,3.8")
	assert.Contains(t, body, "Engineering,ENG,1,90.0,")
	assert.Contains(t, body, "Science,SCI,1,75.0,")
}

func TestExportServiceSnapshotPDF(t *testing.T) {
	svc := newExportSvc(&fakeAnalyticsProvider{snapshot: exportSnapshot()}, ExportConfig{Enabled: true})

	result, err := svc.SnapshotExport(context.Background(), SnapshotRequest{Type: "student"}, export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestExportServiceEmptySnapshot(t *testing.T) {
	svc := newExportSvc(&fakeAnalyticsProvider{snapshot: nil}, ExportConfig{Enabled: true})

	_, err := svc.SnapshotExport(context.Background(), SnapshotRequest{Type: "student"}, export.FormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyDataset.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportSvc(&fakeAnalyticsProvider{snapshot: exportSnapshot()}, ExportConfig{Enabled: true})

	_, err := svc.SnapshotExport(context.Background(), SnapshotRequest{Type: "student"}, export.Format("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceDisabled(t *testing.T) {
	svc := newExportSvc(&fakeAnalyticsProvider{snapshot: exportSnapshot()}, ExportConfig{Enabled: false})

	_, err := svc.SnapshotExport(context.Background(), SnapshotRequest{Type: "student"}, export.FormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceSeriesCSV(t *testing.T) {
	previous := 80.0
	provider := &fakeAnalyticsProvider{series: []models.SeriesPoint{
		{BucketKind: models.BucketWeekday, BucketValue: "0", Label: "Sunday", Metric: models.MetricAttendanceRate, Value: 75.5},
		{BucketKind: models.BucketWeekday, BucketValue: "1", Label: "Monday", Metric: models.MetricAttendanceRate, Value: 84, Previous: &previous},
	}}
	svc := newExportSvc(provider, ExportConfig{Enabled: true})

	result, err := svc.SeriesExport(context.Background(), SeriesRequest{SnapshotRequest: SnapshotRequest{Type: "student"}}, export.FormatCSV)
	require.NoError(t, err)

	body := string(result.Payload)
	assert.Contains(t, body, "weekday,Sunday,attendanceRate,75.5,")
	assert.Contains(t, body, "weekday,Monday,attendanceRate,84.0,80.0")
}

func TestExportServiceSeriesTruncatesToMaxRows(t *testing.T) {
	points := make([]models.SeriesPoint, 10)
	for i := range points {
		points[i] = models.SeriesPoint{BucketKind: models.BucketDate, Label: "day", Metric: models.MetricAttendanceRate, Value: 80}
	}
	svc := newExportSvc(&fakeAnalyticsProvider{series: points}, ExportConfig{Enabled: true, MaxRows: 4})

	result, err := svc.SeriesExport(context.Background(), SeriesRequest{SnapshotRequest: SnapshotRequest{Type: "student"}}, export.FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	assert.Len(t, lines, 5)
}

func TestExportServiceEmptySeries(t *testing.T) {
	svc := newExportSvc(&fakeAnalyticsProvider{}, ExportConfig{Enabled: true})

	_, err := svc.SeriesExport(context.Background(), SeriesRequest{SnapshotRequest: SnapshotRequest{Type: "student"}}, export.FormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyDataset.Code, appErrors.FromError(err).Code)
}
