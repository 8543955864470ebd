package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escola-dev/escola-api/internal/middleware"
	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/internal/service"
	"github.com/escola-dev/escola-api/pkg/response"
)

type reportRepoStub struct{}

func (reportRepoStub) AreaAverages(ctx context.Context, studentID string) ([]models.SubjectAreaAverage, error) {
	return []models.SubjectAreaAverage{{AreaName: "Mathematics", Average: 6.5}}, nil
}

func (reportRepoStub) AbsenceSummary(ctx context.Context) ([]models.AbsenceSummaryRow, error) {
	return []models.AbsenceSummaryRow{{StudentName: "Ana", AreaName: "History", Total: 2}}, nil
}

func (reportRepoStub) StatusCounts(ctx context.Context) ([]models.ClassGroupStatusCounts, error) {
	return []models.ClassGroupStatusCounts{{ClassGroupID: "cg1", Active: 10}}, nil
}

func (reportRepoStub) CountPassing(ctx context.Context, classGroupID string, threshold float64) (int, error) {
	return 5, nil
}

type attendanceCounterStub struct{}

func (attendanceCounterStub) CountAbsences(ctx context.Context, studentID string) (int, error) {
	return 3, nil
}

func (attendanceCounterStub) CountPresences(ctx context.Context, studentID string) (int, error) {
	return 40, nil
}

type studentFinderStub struct{}

func (studentFinderStub) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	if id != "st1" {
		return nil, sql.ErrNoRows
	}
	return &models.StudentDetail{Student: models.Student{ID: "st1", Status: models.StatusActive}, FullName: "Ana"}, nil
}

type groupListerStub struct{}

func (groupListerStub) List(ctx context.Context) ([]models.ClassGroup, error) {
	return []models.ClassGroup{{ID: "cg1", Name: "9A"}}, nil
}

func newReportHandler() *ReportHandler {
	svc := service.NewReportService(reportRepoStub{}, attendanceCounterStub{}, studentFinderStub{}, groupListerStub{}, nil, nil)
	return NewReportHandler(svc)
}

func TestReportHandlerStudentPerformanceSelf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler()

	c, w := newGinContext(http.MethodGet, "/reports/students/st1", nil)
	c.Params = gin.Params{{Key: "id", Value: "st1"}}
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "u1", Role: models.RoleStudent, StudentProfileID: "st1"})

	handler.StudentPerformance(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestReportHandlerStudentPerformanceOtherStudentForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler()

	c, w := newGinContext(http.MethodGet, "/reports/students/st1", nil)
	c.Params = gin.Params{{Key: "id", Value: "st1"}}
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "u2", Role: models.RoleStudent, StudentProfileID: "st2"})

	handler.StudentPerformance(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestReportHandlerAbsenceSummaryGated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler()

	c, w := newGinContext(http.MethodGet, "/reports/absences", nil)
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "t1", Role: models.RoleTeacher})
	handler.AbsenceSummary(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	c, w = newGinContext(http.MethodGet, "/reports/absences", nil)
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "d1", Role: models.RoleDirector})
	handler.AbsenceSummary(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReportHandlerManagement(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler()

	c, w := newGinContext(http.MethodGet, "/reports/management", nil)
	c.Set(middleware.ContextUserKey, models.Identity{UserID: "it1", Role: models.RoleITStaff})

	handler.Management(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.ManagementReportRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "0.00%", envelope.Data[0].DropoutRate)
	assert.Equal(t, "50.00%", envelope.Data[0].PassRate)
}
