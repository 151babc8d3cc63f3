package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lmt-transport/LMT-Driver-App/internal/dto"
	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/internal/service"
	"github.com/lmt-transport/LMT-Driver-App/pkg/response"
)

// JobHandler serves the trip write endpoints.
type JobHandler struct {
	jobSvc service.JobService
}

// NewJobHandler creates the JobHandler.
func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// CreateTrip adds a trip, one row per branch.
// POST /api/v1/jobs
func (h *JobHandler) CreateTrip(c *gin.Context) {
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.jobSvc.CreateTrip(c.Request.Context(), &req); err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, nil)
}

// CancelTrip removes every row of a trip.
// DELETE /api/v1/jobs
func (h *JobHandler) CancelTrip(c *gin.Context) {
	var req dto.TripKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	key := model.TripKey{PODate: req.PODate, CarNo: req.CarNo, Round: req.Round}
	if err := h.jobSvc.CancelTrip(c.Request.Context(), key); err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, nil)
}

// ReassignDriver swaps driver and plate on a trip.
// PUT /api/v1/jobs/driver
func (h *JobHandler) ReassignDriver(c *gin.Context) {
	var req dto.ReassignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.jobSvc.ReassignDriver(c.Request.Context(), &req); err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, nil)
}

// AdvanceStatus records one timestamp or status change and returns the
// refreshed trip.
// POST /api/v1/jobs/status
func (h *JobHandler) AdvanceStatus(c *gin.Context) {
	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	trip, err := h.jobSvc.AdvanceStatus(c.Request.Context(), &req)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, trip)
}

func (h *JobHandler) handleJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		response.NotFound(c, 12001, "ไม่พบรอบรถที่ระบุ")
	case errors.Is(err, service.ErrInvalidField):
		response.BadRequest(c, 12002, "ไม่รู้จักฟิลด์สถานะที่ระบุ")
	case errors.Is(err, service.ErrBranchRequired):
		response.BadRequest(c, 12003, "ต้องระบุ branch_name สำหรับฟิลด์ระดับสาขา")
	default:
		response.InternalError(c)
	}
}
