package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-dev/escola-api/internal/service"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
	"github.com/escola-dev/escola-api/pkg/response"
)

// ClassGroupHandler exposes class-group endpoints.
type ClassGroupHandler struct {
	groups *service.ClassGroupService
}

// NewClassGroupHandler constructs handler.
func NewClassGroupHandler(groups *service.ClassGroupService) *ClassGroupHandler {
	return &ClassGroupHandler{groups: groups}
}

// List godoc
// @Summary List class groups
// @Tags ClassGroups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /class-groups [get]
func (h *ClassGroupHandler) List(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Get godoc
// @Summary Fetch one class group
// @Tags ClassGroups
// @Produce json
// @Param id path string true "Class group ID"
// @Success 200 {object} response.Envelope
// @Router /class-groups/{id} [get]
func (h *ClassGroupHandler) Get(c *gin.Context) {
	group, err := h.groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group)
}

// Students godoc
// @Summary Fetch a class group with its active students
// @Tags ClassGroups
// @Produce json
// @Param id path string true "Class group ID"
// @Success 200 {object} response.Envelope
// @Router /class-groups/{id}/students [get]
func (h *ClassGroupHandler) Students(c *gin.Context) {
	detail, err := h.groups.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Create godoc
// @Summary Create a class group
// @Tags ClassGroups
// @Accept json
// @Produce json
// @Param payload body service.ClassGroupRequest true "Class group payload"
// @Success 201 {object} response.Envelope
// @Router /class-groups [post]
func (h *ClassGroupHandler) Create(c *gin.Context) {
	var req service.ClassGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.groups.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// Update godoc
// @Summary Rename a class group
// @Tags ClassGroups
// @Accept json
// @Produce json
// @Param id path string true "Class group ID"
// @Param payload body service.ClassGroupRequest true "Class group payload"
// @Success 200 {object} response.Envelope
// @Router /class-groups/{id} [put]
func (h *ClassGroupHandler) Update(c *gin.Context) {
	var req service.ClassGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.groups.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group)
}

// Delete godoc
// @Summary Delete a class group
// @Tags ClassGroups
// @Param id path string true "Class group ID"
// @Success 204
// @Router /class-groups/{id} [delete]
func (h *ClassGroupHandler) Delete(c *gin.Context) {
	if err := h.groups.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
