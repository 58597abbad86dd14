package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-insights-api/internal/analytics"
	"github.com/noah-isme/attendance-insights-api/internal/models"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
)

type recordSource interface {
	ListByType(ctx context.Context, recordType models.RecordType) ([]models.AttendanceRecord, error)
	Departments(ctx context.Context, recordType models.RecordType) ([]string, error)
}

// AnalyticsServiceConfig tunes analytics behaviour.
type AnalyticsServiceConfig struct {
	CacheTTL        time.Duration
	StreakThreshold float64
}

// AnalyticsService wraps the pure analytics pipeline with record loading,
// request validation and caching.
type AnalyticsService struct {
	records   recordSource
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cfg       AnalyticsServiceConfig
}

// AnalyticsServiceParams groups constructor dependencies.
type AnalyticsServiceParams struct {
	Records   recordSource
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    AnalyticsServiceConfig
}

// NewAnalyticsService constructs an AnalyticsService with sane defaults.
func NewAnalyticsService(params AnalyticsServiceParams) *AnalyticsService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.StreakThreshold <= 0 {
		cfg.StreakThreshold = analytics.DefaultStreakThreshold
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AnalyticsService{
		records:   params.Records,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
	registerAnalyticsValidations(svc.validator)
	return svc
}

func registerAnalyticsValidations(validate *validator.Validate) {
	validate.RegisterValidation("record_type", func(fl validator.FieldLevel) bool {
		return models.RecordType(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("time_preset", func(fl validator.FieldLevel) bool {
		return models.TimePreset(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("risk_filter", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == analytics.FilterAll || models.RiskLevel(value).Valid()
	})
	validate.RegisterValidation("series_metric", func(fl validator.FieldLevel) bool {
		return models.SeriesMetric(fl.Field().String()).Valid()
	})
}

// SnapshotRequest describes one snapshot computation.
type SnapshotRequest struct {
	Type       string `json:"type" validate:"required,record_type"`
	Department string `json:"department"`
	RiskLevel  string `json:"risk_level" validate:"omitempty,risk_filter"`
	Preset     string `json:"preset" validate:"omitempty,time_preset"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// SeriesRequest describes one series generation.
type SeriesRequest struct {
	SnapshotRequest
	Metric         string `json:"metric" validate:"omitempty,series_metric"`
	WithComparison bool   `json:"with_comparison"`
}

// StreakRequest describes one streak analysis. Threshold 0 selects the
// configured default.
type StreakRequest struct {
	SeriesRequest
	Threshold float64 `json:"threshold" validate:"gte=0,lte=100"`
}

// Snapshot computes the aggregate snapshot for the requested slice of records.
// Returns nil when the record source holds no rows of the requested type. The
// boolean indicates cache utilisation.
func (s *AnalyticsService) Snapshot(ctx context.Context, req SnapshotRequest) (*models.AnalyticsSnapshot, bool, error) {
	opts, recordType, err := s.parseSnapshotRequest(req)
	if err != nil {
		return nil, false, err
	}

	cacheKey := s.snapshotCacheKey(recordType, opts)
	if s.cache.Enabled() {
		var cached models.AnalyticsSnapshot
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	snapshot, err := s.compute(ctx, recordType, opts)
	if err != nil {
		return nil, false, err
	}
	if snapshot != nil && s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, snapshot, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return snapshot, false, nil
}

// Series generates the time-bucketed series for the requested slice.
func (s *AnalyticsService) Series(ctx context.Context, req SeriesRequest) ([]models.SeriesPoint, bool, error) {
	snapshot, seriesOpts, cacheHit, err := s.seriesFor(ctx, req)
	if err != nil {
		return nil, false, err
	}
	if snapshot.Empty() {
		return []models.SeriesPoint{}, cacheHit, nil
	}

	start := time.Now()
	series := analytics.GenerateSeries(*snapshot, seriesOpts, s.now())
	s.metrics.ObserveCompute("series", time.Since(start))
	return series, cacheHit, nil
}

// Patterns generates the series and annotates it with moving averages, peaks
// and valleys.
func (s *AnalyticsService) Patterns(ctx context.Context, req SeriesRequest) ([]analytics.PatternPoint, bool, error) {
	series, cacheHit, err := s.Series(ctx, req)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	patterns := analytics.AnalyzePatterns(series)
	s.metrics.ObserveCompute("patterns", time.Since(start))
	return patterns, cacheHit, nil
}

// Streaks generates the series and annotates it with streak runs and stats.
func (s *AnalyticsService) Streaks(ctx context.Context, req StreakRequest) (*analytics.StreakResult, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid streak request")
	}
	series, cacheHit, err := s.Series(ctx, req.SeriesRequest)
	if err != nil {
		return nil, false, err
	}

	threshold := req.Threshold
	if threshold <= 0 {
		threshold = s.cfg.StreakThreshold
	}
	start := time.Now()
	result := analytics.AnalyzeStreaks(series, threshold)
	s.metrics.ObserveCompute("streaks", time.Since(start))
	return &result, cacheHit, nil
}

// InvalidateCache drops every memoized snapshot so the next request
// recomputes from the record source. No-op when caching is disabled.
func (s *AnalyticsService) InvalidateCache(ctx context.Context) error {
	if !s.cache.Enabled() {
		return nil
	}
	if err := s.cache.Invalidate(ctx, "analytics:*"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to invalidate analytics cache")
	}
	s.logger.Info("analytics cache invalidated")
	return nil
}

// Departments lists distinct department names for a record type.
func (s *AnalyticsService) Departments(ctx context.Context, recordType string) ([]string, error) {
	parsed := models.RecordType(recordType)
	if !parsed.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported record type %q", recordType))
	}
	departments, err := s.records.Departments(ctx, parsed)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	return departments, nil
}

func (s *AnalyticsService) seriesFor(ctx context.Context, req SeriesRequest) (*models.AnalyticsSnapshot, analytics.SeriesOptions, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, analytics.SeriesOptions{}, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid series request")
	}
	snapshot, cacheHit, err := s.Snapshot(ctx, req.SnapshotRequest)
	if err != nil {
		return nil, analytics.SeriesOptions{}, false, err
	}

	metric := models.SeriesMetric(req.Metric)
	if !metric.Valid() {
		metric = models.MetricAttendanceRate
	}
	opts := analytics.SeriesOptions{
		Metric:         metric,
		Range:          s.parseRange(req.Preset, req.StartDate, req.EndDate),
		WithComparison: req.WithComparison,
	}
	return snapshot, opts, cacheHit, nil
}

func (s *AnalyticsService) compute(ctx context.Context, recordType models.RecordType, opts analytics.FilterOptions) (*models.AnalyticsSnapshot, error) {
	records, err := s.records.ListByType(ctx, recordType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance records")
	}

	start := time.Now()
	snapshot := analytics.ComputeSnapshot(records, recordType, opts, s.now())
	s.metrics.ObserveCompute("snapshot", time.Since(start))
	return snapshot, nil
}

func (s *AnalyticsService) parseSnapshotRequest(req SnapshotRequest) (analytics.FilterOptions, models.RecordType, error) {
	if err := s.validator.Struct(req); err != nil {
		return analytics.FilterOptions{}, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid snapshot request")
	}
	opts := analytics.FilterOptions{
		Department: req.Department,
		RiskLevel:  req.RiskLevel,
		Range:      s.parseRange(req.Preset, req.StartDate, req.EndDate),
	}
	return opts, models.RecordType(req.Type), nil
}

// parseRange builds a TimeRange from request fields. Unparsable custom dates
// are left zero; the engine treats such a range as invalid and degrades to
// include-all filtering rather than rejecting the request.
func (s *AnalyticsService) parseRange(preset, startDate, endDate string) models.TimeRange {
	parsed := models.TimePreset(preset)
	if !parsed.Valid() {
		parsed = models.PresetMonth
	}
	tr := models.TimeRange{Preset: parsed}
	if parsed != models.PresetCustom {
		return tr
	}
	if start, err := time.Parse("2006-01-02", startDate); err == nil {
		tr.Start = start
	}
	if end, err := time.Parse("2006-01-02", endDate); err == nil {
		tr.End = end
	}
	return tr
}

func (s *AnalyticsService) snapshotCacheKey(recordType models.RecordType, opts analytics.FilterOptions) string {
	dept := opts.Department
	if dept == "" {
		dept = analytics.FilterAll
	}
	risk := opts.RiskLevel
	if risk == "" {
		risk = analytics.FilterAll
	}
	rangeKey := string(opts.Range.Preset)
	if opts.Range.Preset == models.PresetCustom {
		rangeKey = fmt.Sprintf("custom:%s:%s", opts.Range.Start.Format("2006-01-02"), opts.Range.End.Format("2006-01-02"))
	}
	return fmt.Sprintf("analytics:snapshot:%s:%s:%s:%s", recordType, dept, risk, rangeKey)
}
