package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-dev/escola-api/internal/middleware"
	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/internal/service"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
	"github.com/escola-dev/escola-api/pkg/response"
)

// AttendanceHandler exposes absence endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List godoc
// @Summary List absences visible to the caller
// @Tags Absences
// @Produce json
// @Param subject_id query string false "Filter by subject"
// @Param student_id query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /absences [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter := models.AbsenceFilter{SubjectID: c.Query("subject_id"), StudentID: c.Query("student_id")}
	absences, err := h.attendance.ListAbsences(c.Request.Context(), middleware.Identity(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, absences)
}

// Create godoc
// @Summary Record an absence
// @Tags Absences
// @Accept json
// @Produce json
// @Param payload body service.AbsenceRequest true "Absence payload"
// @Success 201 {object} response.Envelope
// @Router /absences [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req service.AbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	absence, err := h.attendance.CreateAbsence(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, absence)
}

// Update godoc
// @Summary Update an absence
// @Tags Absences
// @Accept json
// @Produce json
// @Param id path string true "Absence ID"
// @Param payload body service.AbsenceRequest true "Absence payload"
// @Success 200 {object} response.Envelope
// @Router /absences/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req service.AbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	absence, err := h.attendance.UpdateAbsence(c.Request.Context(), middleware.Identity(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, absence)
}

// Delete godoc
// @Summary Delete an absence
// @Tags Absences
// @Param id path string true "Absence ID"
// @Success 204
// @Router /absences/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.attendance.DeleteAbsence(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
