package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-insights-api/internal/models"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
	"github.com/noah-isme/attendance-insights-api/pkg/export"
)

type analyticsProvider interface {
	Snapshot(ctx context.Context, req SnapshotRequest) (*models.AnalyticsSnapshot, bool, error)
	Series(ctx context.Context, req SeriesRequest) ([]models.SeriesPoint, bool, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled bool
	MaxRows int
}

// ExportResult carries one rendered export payload.
type ExportResult struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService renders analytics snapshots and series as downloadable
// documents. Exports are generated synchronously and streamed in-response;
// nothing is persisted.
type ExportService struct {
	analytics analyticsProvider
	csv       datasetRenderer
	pdf       datasetRenderer
	logger    *zap.Logger
	now       func() time.Time
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(analytics analyticsProvider, cfg ExportConfig, logger *zap.Logger, csv, pdf datasetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		analytics: analytics,
		csv:       csv,
		pdf:       pdf,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// SnapshotExport renders the department breakdown of one snapshot.
func (s *ExportService) SnapshotExport(ctx context.Context, req SnapshotRequest, format export.Format) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exports are disabled")
	}
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	snapshot, _, err := s.analytics.Snapshot(ctx, req)
	if err != nil {
		return nil, err
	}
	if snapshot.Empty() {
		return nil, appErrors.Clone(appErrors.ErrEmptyDataset, "no records matched the export request")
	}

	dataset := s.buildSnapshotDataset(snapshot)
	return s.render(dataset, format, fmt.Sprintf("%s_summary", req.Type))
}

// SeriesExport renders one generated time series.
func (s *ExportService) SeriesExport(ctx context.Context, req SeriesRequest, format export.Format) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exports are disabled")
	}
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	series, _, err := s.analytics.Series(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyDataset, "no records matched the export request")
	}
	if len(series) > s.cfg.MaxRows {
		series = series[:s.cfg.MaxRows]
	}

	dataset := s.buildSeriesDataset(series)
	return s.render(dataset, format, fmt.Sprintf("%s_series", req.Type))
}

func (s *ExportService) render(dataset export.Dataset, format export.Format, stem string) (*ExportResult, error) {
	var payload []byte
	var err error
	switch format {
	case export.FormatCSV:
		payload, err = s.csv.Render(dataset)
	case export.FormatPDF:
		payload, err = s.pdf.Render(dataset)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("%s_%s.%s", stem, s.now().UTC().Format("20060102_150405"), format)
	return &ExportResult{
		Payload:     payload,
		ContentType: format.ContentType(),
		Filename:    filename,
	}, nil
}

func (s *ExportService) buildSnapshotDataset(snapshot *models.AnalyticsSnapshot) export.Dataset {
	rows := [][]string{
		{"All Departments", "", fmt.Sprintf("%d", snapshot.TotalCount), fmt.Sprintf("%.1f", snapshot.AttendanceRate), fmt.Sprintf("%.1f", snapshot.LateRate)},
	}

	names := make([]string, 0, len(snapshot.Departments))
	for name := range snapshot.Departments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		dept := snapshot.Departments[name]
		rows = append(rows, []string{dept.Name, dept.Code, fmt.Sprintf("%d", dept.Count), fmt.Sprintf("%.1f", dept.AttendanceRate), ""})
	}

	return export.Dataset{
		Title:   fmt.Sprintf("%s Attendance Summary", titleCase(string(snapshot.Type))),
		Headers: []string{"Department", "Code", "Records", "Attendance (%)", "Late (%)"},
		Rows:    rows,
	}
}

func (s *ExportService) buildSeriesDataset(series []models.SeriesPoint) export.Dataset {
	rows := make([][]string, 0, len(series))
	for _, point := range series {
		previous := ""
		if point.Previous != nil {
			previous = fmt.Sprintf("%.1f", *point.Previous)
		}
		rows = append(rows, []string{string(point.BucketKind), point.Label, string(point.Metric), fmt.Sprintf("%.1f", point.Value), previous})
	}
	return export.Dataset{
		Title:   "Attendance Series",
		Headers: []string{"Bucket", "Label", "Metric", "Value", "Previous"},
		Rows:    rows,
	}
}

func titleCase(raw string) string {
	if raw == "" {
		return raw
	}
	return strings.ToUpper(raw[:1]) + raw[1:]
}
