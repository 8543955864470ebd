package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-dev/escola-api/internal/middleware"
	"github.com/escola-dev/escola-api/internal/service"
	"github.com/escola-dev/escola-api/pkg/response"
)

// ReportHandler exposes the aggregate report endpoints.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// StudentPerformance godoc
// @Summary Per-area grade averages plus attendance for one student
// @Tags Reports
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /reports/students/{id} [get]
func (h *ReportHandler) StudentPerformance(c *gin.Context) {
	report, err := h.reports.StudentPerformance(c.Request.Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// AbsenceSummary godoc
// @Summary Absence totals grouped by student and subject area
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/absences [get]
func (h *ReportHandler) AbsenceSummary(c *gin.Context) {
	rows, err := h.reports.AbsenceSummary(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Management godoc
// @Summary Dropout and pass rates per class group
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/management [get]
func (h *ReportHandler) Management(c *gin.Context) {
	rows, err := h.reports.Management(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}
