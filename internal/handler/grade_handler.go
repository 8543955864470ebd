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

// GradeHandler exposes grade endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs handler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// List godoc
// @Summary List grades visible to the caller
// @Tags Grades
// @Produce json
// @Param subject_id query string false "Filter by subject"
// @Param student_id query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	filter := models.GradeFilter{SubjectID: c.Query("subject_id"), StudentID: c.Query("student_id")}
	grades, err := h.grades.List(c.Request.Context(), middleware.Identity(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades)
}

// Create godoc
// @Summary Record a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.CreateGradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req service.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grade, err := h.grades.Create(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grade)
}

// Update godoc
// @Summary Update a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Grade ID"
// @Param payload body service.UpdateGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [put]
func (h *GradeHandler) Update(c *gin.Context) {
	var req service.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grade, err := h.grades.Update(c.Request.Context(), middleware.Identity(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}

// Delete godoc
// @Summary Delete a grade
// @Tags Grades
// @Param id path string true "Grade ID"
// @Success 204
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	if err := h.grades.Delete(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Bulk godoc
// @Summary Bulk grade entry with per-item isolation
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body []service.BulkGradeItem true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Success 207 {object} response.Envelope
// @Router /grades/bulk [post]
func (h *GradeHandler) Bulk(c *gin.Context) {
	var items []service.BulkGradeItem
	if err := c.ShouldBindJSON(&items); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.grades.BulkUpsert(c.Request.Context(), middleware.Identity(c), items)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Partial() {
		response.MultiStatus(c, result.Applied, result.Errors)
		return
	}
	response.JSON(c, http.StatusOK, result.Applied)
}
