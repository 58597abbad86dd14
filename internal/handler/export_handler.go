package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-insights-api/internal/service"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
	"github.com/noah-isme/attendance-insights-api/pkg/export"
	"github.com/noah-isme/attendance-insights-api/pkg/response"
)

type exportRenderer interface {
	SnapshotExport(ctx context.Context, req service.SnapshotRequest, format export.Format) (*service.ExportResult, error)
	SeriesExport(ctx context.Context, req service.SeriesRequest, format export.Format) (*service.ExportResult, error)
}

// ExportHandler streams rendered exports in-response.
type ExportHandler struct {
	service exportRenderer
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportRenderer) *ExportHandler {
	return &ExportHandler{service: service}
}

// Snapshot godoc
// @Summary Download the snapshot department breakdown
// @Tags Exports
// @Produce octet-stream
// @Param type query string true "Record type (student or instructor)"
// @Param format query string true "Export format (csv or pdf)"
// @Success 200 {file} binary
// @Router /exports/snapshot [get]
func (h *ExportHandler) Snapshot(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format := export.Format(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	result, err := h.service.SnapshotExport(c.Request.Context(), snapshotRequestFromQuery(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.stream(c, result)
}

// Series godoc
// @Summary Download the generated time series
// @Tags Exports
// @Produce octet-stream
// @Param type query string true "Record type (student or instructor)"
// @Param format query string true "Export format (csv or pdf)"
// @Success 200 {file} binary
// @Router /exports/series [get]
func (h *ExportHandler) Series(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format := export.Format(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	result, err := h.service.SeriesExport(c.Request.Context(), seriesRequestFromQuery(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.stream(c, result)
}

func (h *ExportHandler) stream(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Payload)
}
