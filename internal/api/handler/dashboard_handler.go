package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lmt-transport/LMT-Driver-App/internal/service"
	"github.com/lmt-transport/LMT-Driver-App/pkg/response"
)

// DashboardHandler serves the dashboard read endpoints. Every endpoint accepts an
// optional ?date=2006-01-02 query, defaulting to today in Bangkok.
type DashboardHandler struct {
	dashSvc service.DashboardService
}

// NewDashboardHandler creates the DashboardHandler.
func NewDashboardHandler(dashSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc}
}

// Dashboard returns the full board for one date.
// GET /api/v1/dashboard?date=2006-01-02
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	data, err := h.dashSvc.Dashboard(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, data)
}

// Shifts returns the per-shift completion snapshot pair.
// GET /api/v1/summary/shifts?date=2006-01-02
func (h *DashboardHandler) Shifts(c *gin.Context) {
	data, err := h.dashSvc.Shifts(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, data)
}

// Late returns the late-to-enter roster.
// GET /api/v1/summary/late?date=2006-01-02
func (h *DashboardHandler) Late(c *gin.Context) {
	data, err := h.dashSvc.Late(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, data)
}

// Idle returns the idle-driver workload buckets.
// GET /api/v1/summary/idle?date=2006-01-02
func (h *DashboardHandler) Idle(c *gin.Context) {
	data, err := h.dashSvc.Idle(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, data)
}
