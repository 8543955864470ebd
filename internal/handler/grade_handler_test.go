package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escola-dev/escola-api/internal/middleware"
	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/internal/service"
	"github.com/escola-dev/escola-api/pkg/response"
)

type gradeRepoStub struct {
	grades map[string]*models.Grade
}

func (s *gradeRepoStub) List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	return nil, nil
}

func (s *gradeRepoStub) FindForTeacher(ctx context.Context, id, teacherUserID string) (*models.Grade, error) {
	g, ok := s.grades[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *g
	return &copied, nil
}

func (s *gradeRepoStub) Create(ctx context.Context, grade *models.Grade) error {
	grade.ID = "new-grade"
	return nil
}

func (s *gradeRepoStub) Update(ctx context.Context, grade *models.Grade) error { return nil }
func (s *gradeRepoStub) Delete(ctx context.Context, id string) error           { return nil }

type teacherCheckerStub struct {
	taught map[string]bool
}

func (s *teacherCheckerStub) TeachesSubject(ctx context.Context, userID, subjectID string) (bool, error) {
	return s.taught[subjectID], nil
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func newGradeHandler(taught map[string]bool) *GradeHandler {
	svc := service.NewGradeService(&gradeRepoStub{grades: map[string]*models.Grade{}}, &teacherCheckerStub{taught: taught}, nil, nil)
	return NewGradeHandler(svc)
}

func TestGradeHandlerBulkAllApplied(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newGradeHandler(map[string]bool{"math": true})

	payload := []byte(`[{"subject_id": "math", "student_id": "st1", "period": 1, "value": 8}]`)
	c, w := newGinContext(http.MethodPost, "/grades/bulk", payload)
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "teacher-1", Role: models.RoleTeacher})

	handler.Bulk(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Errors)
}

func TestGradeHandlerBulkPartialIsMultiStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newGradeHandler(map[string]bool{"math": true})

	payload := []byte(`[
        {"subject_id": "math", "student_id": "st1", "period": 1, "value": 8},
        {"subject_id": "geography", "student_id": "st2", "period": 1, "value": 6}
    ]`)
	c, w := newGinContext(http.MethodPost, "/grades/bulk", payload)
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "teacher-1", Role: models.RoleTeacher})

	handler.Bulk(c)
	require.Equal(t, http.StatusMultiStatus, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Errors, 1)
	assert.Contains(t, envelope.Errors[0], "permission")
}

func TestGradeHandlerBulkStructuralErrorIs400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newGradeHandler(nil)

	c, w := newGinContext(http.MethodPost, "/grades/bulk", []byte(`{"not": "a list"}`))
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "teacher-1", Role: models.RoleTeacher})

	handler.Bulk(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradeHandlerBulkForbiddenForStudents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newGradeHandler(nil)

	c, w := newGinContext(http.MethodPost, "/grades/bulk", []byte(`[]`))
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "u1", Role: models.RoleStudent})

	handler.Bulk(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}
