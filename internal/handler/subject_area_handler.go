package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-dev/escola-api/internal/service"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
	"github.com/escola-dev/escola-api/pkg/response"
)

// SubjectAreaHandler exposes subject-area catalog endpoints.
type SubjectAreaHandler struct {
	areas *service.SubjectAreaService
}

// NewSubjectAreaHandler constructs handler.
func NewSubjectAreaHandler(areas *service.SubjectAreaService) *SubjectAreaHandler {
	return &SubjectAreaHandler{areas: areas}
}

// List godoc
// @Summary List subject areas
// @Tags SubjectAreas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subject-areas [get]
func (h *SubjectAreaHandler) List(c *gin.Context) {
	areas, err := h.areas.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, areas)
}

// Get godoc
// @Summary Fetch one subject area
// @Tags SubjectAreas
// @Produce json
// @Param id path string true "Subject area ID"
// @Success 200 {object} response.Envelope
// @Router /subject-areas/{id} [get]
func (h *SubjectAreaHandler) Get(c *gin.Context) {
	area, err := h.areas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, area)
}

// Create godoc
// @Summary Create a subject area
// @Tags SubjectAreas
// @Accept json
// @Produce json
// @Param payload body service.SubjectAreaRequest true "Subject area payload"
// @Success 201 {object} response.Envelope
// @Router /subject-areas [post]
func (h *SubjectAreaHandler) Create(c *gin.Context) {
	var req service.SubjectAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	area, err := h.areas.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, area)
}

// Update godoc
// @Summary Rename a subject area
// @Tags SubjectAreas
// @Accept json
// @Produce json
// @Param id path string true "Subject area ID"
// @Param payload body service.SubjectAreaRequest true "Subject area payload"
// @Success 200 {object} response.Envelope
// @Router /subject-areas/{id} [put]
func (h *SubjectAreaHandler) Update(c *gin.Context) {
	var req service.SubjectAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	area, err := h.areas.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, area)
}

// Delete godoc
// @Summary Delete a subject area
// @Tags SubjectAreas
// @Param id path string true "Subject area ID"
// @Success 204
// @Router /subject-areas/{id} [delete]
func (h *SubjectAreaHandler) Delete(c *gin.Context) {
	if err := h.areas.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
