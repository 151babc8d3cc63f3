package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/lmt-transport/LMT-Driver-App/internal/service"
	"github.com/lmt-transport/LMT-Driver-App/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler serves the file download endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportJobs downloads the job table as an xlsx workbook.
// GET /api/v1/export/jobs?date=2006-01-02
func (h *ExportHandler) ExportJobs(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportJobs(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	setDownloadHeaders(c, filename, contentTypeXLSX)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportCalendar downloads the planned rounds as an iCalendar feed.
// GET /api/v1/export/calendar?date=2006-01-02
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	data, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	setDownloadHeaders(c, filename, contentTypeICS)
	c.Data(http.StatusOK, contentTypeICS, data)
}

func setDownloadHeaders(c *gin.Context, filename, contentType string) {
	encoded := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encoded)
	c.Header("Content-Type", contentType)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrExportNoJobs) {
		response.NotFound(c, 13001, "ไม่มีข้อมูลงานสำหรับวันที่ระบุ")
		return
	}
	response.InternalError(c)
}
