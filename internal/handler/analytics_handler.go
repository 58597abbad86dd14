package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-insights-api/internal/analytics"
	"github.com/noah-isme/attendance-insights-api/internal/middleware"
	"github.com/noah-isme/attendance-insights-api/internal/models"
	"github.com/noah-isme/attendance-insights-api/internal/service"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
	"github.com/noah-isme/attendance-insights-api/pkg/response"
)

type analyticsQueryService interface {
	Snapshot(ctx context.Context, req service.SnapshotRequest) (*models.AnalyticsSnapshot, bool, error)
	Series(ctx context.Context, req service.SeriesRequest) ([]models.SeriesPoint, bool, error)
	Patterns(ctx context.Context, req service.SeriesRequest) ([]analytics.PatternPoint, bool, error)
	Streaks(ctx context.Context, req service.StreakRequest) (*analytics.StreakResult, bool, error)
	Departments(ctx context.Context, recordType string) ([]string, error)
	InvalidateCache(ctx context.Context) error
}

// AnalyticsHandler wires the analytics service to HTTP endpoints.
type AnalyticsHandler struct {
	service analyticsQueryService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service analyticsQueryService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Snapshot godoc
// @Summary Aggregate attendance snapshot
// @Tags Analytics
// @Produce json
// @Param type query string true "Record type (student or instructor)"
// @Param department query string false "Department filter, 'all' disables"
// @Param riskLevel query string false "Risk level filter, 'all' disables"
// @Param preset query string false "Time preset (today, week, month, quarter, year, custom)"
// @Param startDate query string false "Custom range start (YYYY-MM-DD)"
// @Param endDate query string false "Custom range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /analytics/snapshot [get]
func (h *AnalyticsHandler) Snapshot(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	snapshot, cacheHit, err := h.service.Snapshot(c.Request.Context(), snapshotRequestFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	meta["empty"] = snapshot.Empty()
	response.JSON(c, http.StatusOK, snapshot, meta)
}

// Series godoc
// @Summary Time-bucketed attendance series
// @Tags Analytics
// @Produce json
// @Param type query string true "Record type (student or instructor)"
// @Param metric query string false "Series metric (attendanceRate or lateRate)"
// @Param preset query string false "Time preset"
// @Param comparison query boolean false "Include previous-period values"
// @Success 200 {object} response.Envelope
// @Router /analytics/series [get]
func (h *AnalyticsHandler) Series(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	series, cacheHit, err := h.service.Series(c.Request.Context(), seriesRequestFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	meta["points"] = len(series)
	response.JSON(c, http.StatusOK, series, meta)
}

// Patterns godoc
// @Summary Series annotated with moving averages, peaks and valleys
// @Tags Analytics
// @Produce json
// @Param type query string true "Record type (student or instructor)"
// @Success 200 {object} response.Envelope
// @Router /analytics/patterns [get]
func (h *AnalyticsHandler) Patterns(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	patterns, cacheHit, err := h.service.Patterns(c.Request.Context(), seriesRequestFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, patterns, meta)
}

// Streaks godoc
// @Summary Series annotated with streak runs and stats
// @Tags Analytics
// @Produce json
// @Param type query string true "Record type (student or instructor)"
// @Param threshold query number false "Good-day threshold (0 selects the configured default)"
// @Success 200 {object} response.Envelope
// @Router /analytics/streaks [get]
func (h *AnalyticsHandler) Streaks(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	req := service.StreakRequest{
		SeriesRequest: seriesRequestFromQuery(c),
		Threshold:     parseFloatQuery(c, "threshold"),
	}
	start := time.Now()
	result, cacheHit, err := h.service.Streaks(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, result, meta)
}

// Departments godoc
// @Summary Distinct department names for a record type
// @Tags Analytics
// @Produce json
// @Param type query string true "Record type (student or instructor)"
// @Success 200 {object} response.Envelope
// @Router /analytics/departments [get]
func (h *AnalyticsHandler) Departments(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	departments, err := h.service.Departments(c.Request.Context(), strings.TrimSpace(c.Query("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, departments)
}

// FlushCache godoc
// @Summary Drop all memoized analytics snapshots
// @Tags Analytics
// @Produce json
// @Success 204
// @Router /analytics/cache [delete]
func (h *AnalyticsHandler) FlushCache(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := h.service.InvalidateCache(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func snapshotRequestFromQuery(c *gin.Context) service.SnapshotRequest {
	return service.SnapshotRequest{
		Type:       strings.TrimSpace(c.Query("type")),
		Department: strings.TrimSpace(c.Query("department")),
		RiskLevel:  strings.TrimSpace(c.Query("riskLevel")),
		Preset:     strings.TrimSpace(c.Query("preset")),
		StartDate:  strings.TrimSpace(c.Query("startDate")),
		EndDate:    strings.TrimSpace(c.Query("endDate")),
	}
}

func seriesRequestFromQuery(c *gin.Context) service.SeriesRequest {
	return service.SeriesRequest{
		SnapshotRequest: snapshotRequestFromQuery(c),
		Metric:          strings.TrimSpace(c.Query("metric")),
		WithComparison:  parseBoolQuery(c, "comparison"),
	}
}
