package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-dev/escola-api/internal/middleware"
	"github.com/escola-dev/escola-api/internal/service"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
	"github.com/escola-dev/escola-api/pkg/response"
)

// LessonPlanHandler exposes lesson-plan endpoints.
type LessonPlanHandler struct {
	plans *service.LessonPlanService
}

// NewLessonPlanHandler constructs handler.
func NewLessonPlanHandler(plans *service.LessonPlanService) *LessonPlanHandler {
	return &LessonPlanHandler{plans: plans}
}

// Mine godoc
// @Summary List the caller's lesson plans with their subjects
// @Tags LessonPlans
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/mine [get]
func (h *LessonPlanHandler) Mine(c *gin.Context) {
	result, err := h.plans.Mine(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Create godoc
// @Summary Record a lesson plan
// @Tags LessonPlans
// @Accept json
// @Produce json
// @Param payload body service.LessonPlanRequest true "Lesson plan payload"
// @Success 201 {object} response.Envelope
// @Router /lesson-plans [post]
func (h *LessonPlanHandler) Create(c *gin.Context) {
	var req service.LessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.plans.Create(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}
