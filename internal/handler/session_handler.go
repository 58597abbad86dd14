package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-insights-api/internal/middleware"
	"github.com/noah-isme/attendance-insights-api/internal/models"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
	"github.com/noah-isme/attendance-insights-api/pkg/response"
)

type sessionStateService interface {
	Create() (string, models.SessionState)
	Get(id string) (models.SessionState, error)
	ApplyFilters(id string, filters map[string]string) (models.SessionState, error)
	ChangeFilter(id, key, value, source string) (models.SessionState, error)
	ClearFilter(id, key string) (models.SessionState, error)
	Reset(id string) (models.SessionState, error)
	DrillInto(id string, level models.DrillLevel, data map[string]string) (models.SessionState, error)
	Navigate(id string, index int) (models.SessionState, error)
}

// SessionHandler wires the session service to HTTP endpoints.
type SessionHandler struct {
	service sessionStateService
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(service sessionStateService) *SessionHandler {
	return &SessionHandler{service: service}
}

type createSessionResponse struct {
	SessionID string              `json:"session_id"`
	State     models.SessionState `json:"state"`
}

type applyFiltersRequest struct {
	Filters map[string]string `json:"filters" binding:"required"`
}

type changeFilterRequest struct {
	Key    string `json:"key" binding:"required"`
	Value  string `json:"value"`
	Source string `json:"source" binding:"required"`
}

type drillDownRequest struct {
	Level string            `json:"level" binding:"required"`
	Data  map[string]string `json:"data"`
}

type navigateRequest struct {
	Index *int `json:"index" binding:"required"`
}

// Create godoc
// @Summary Open a new analytics session
// @Tags Sessions
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, state := h.service.Create()
	middleware.SetSessionID(c, id)
	response.Created(c, createSessionResponse{SessionID: id, State: state})
}

// Get godoc
// @Summary Current session state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	h.respondState(c, func(id string) (models.SessionState, error) {
		return h.service.Get(id)
	})
}

// ApplyFilters godoc
// @Summary Merge chart-driven cross filters into the session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body applyFiltersRequest true "Filters to merge"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/filters [post]
func (h *SessionHandler) ApplyFilters(c *gin.Context) {
	var req applyFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid filter payload"))
		return
	}
	h.respondState(c, func(id string) (models.SessionState, error) {
		return h.service.ApplyFilters(id, req.Filters)
	})
}

// ChangeFilter godoc
// @Summary Record a named selector action
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body changeFilterRequest true "Selector change"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/filter-changes [post]
func (h *SessionHandler) ChangeFilter(c *gin.Context) {
	var req changeFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid filter change payload"))
		return
	}
	h.respondState(c, func(id string) (models.SessionState, error) {
		return h.service.ChangeFilter(id, req.Key, req.Value, req.Source)
	})
}

// ClearFilter godoc
// @Summary Remove one active filter
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param key path string true "Filter key"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/filters/{key} [delete]
func (h *SessionHandler) ClearFilter(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filter key is required"))
		return
	}
	h.respondState(c, func(id string) (models.SessionState, error) {
		return h.service.ClearFilter(id, key)
	})
}

// Reset godoc
// @Summary Reset the session to its initial state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	h.respondState(c, func(id string) (models.SessionState, error) {
		return h.service.Reset(id)
	})
}

// DrillDown godoc
// @Summary Descend one drill-down level
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body drillDownRequest true "Target level and entity data"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/drilldown [post]
func (h *SessionHandler) DrillDown(c *gin.Context) {
	var req drillDownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid drill-down payload"))
		return
	}
	h.respondState(c, func(id string) (models.SessionState, error) {
		return h.service.DrillInto(id, models.DrillLevel(req.Level), req.Data)
	})
}

// Navigate godoc
// @Summary Move through the breadcrumb trail
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body navigateRequest true "Breadcrumb index (-1 pops one level)"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/navigate [post]
func (h *SessionHandler) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid navigate payload"))
		return
	}
	h.respondState(c, func(id string) (models.SessionState, error) {
		return h.service.Navigate(id, *req.Index)
	})
}

func (h *SessionHandler) respondState(c *gin.Context, op func(id string) (models.SessionState, error)) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "session id is required"))
		return
	}
	state, err := op(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionID(c, id)
	response.JSON(c, http.StatusOK, state)
}
