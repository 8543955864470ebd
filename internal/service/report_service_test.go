package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escola-dev/escola-api/internal/models"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type fakeReportRepo struct {
	averages []models.SubjectAreaAverage
	summary  []models.AbsenceSummaryRow
	counts   []models.ClassGroupStatusCounts
	passing  map[string]int
}

func (f *fakeReportRepo) AreaAverages(ctx context.Context, studentID string) ([]models.SubjectAreaAverage, error) {
	return f.averages, nil
}

func (f *fakeReportRepo) AbsenceSummary(ctx context.Context) ([]models.AbsenceSummaryRow, error) {
	return f.summary, nil
}

func (f *fakeReportRepo) StatusCounts(ctx context.Context) ([]models.ClassGroupStatusCounts, error) {
	return f.counts, nil
}

func (f *fakeReportRepo) CountPassing(ctx context.Context, classGroupID string, threshold float64) (int, error) {
	return f.passing[classGroupID], nil
}

type fakeAttendanceCounter struct {
	absences  int
	presences int
}

func (f *fakeAttendanceCounter) CountAbsences(ctx context.Context, studentID string) (int, error) {
	return f.absences, nil
}

func (f *fakeAttendanceCounter) CountPresences(ctx context.Context, studentID string) (int, error) {
	return f.presences, nil
}

type fakeStudentFinder struct {
	details map[string]*models.StudentDetail
}

func (f *fakeStudentFinder) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

type fakeGroupLister struct {
	groups []models.ClassGroup
}

func (f *fakeGroupLister) List(ctx context.Context) ([]models.ClassGroup, error) {
	return f.groups, nil
}

func newReportService(repo *fakeReportRepo, students *fakeStudentFinder, groups *fakeGroupLister) *ReportService {
	if repo == nil {
		repo = &fakeReportRepo{}
	}
	if students == nil {
		students = &fakeStudentFinder{}
	}
	if groups == nil {
		groups = &fakeGroupLister{}
	}
	return NewReportService(repo, &fakeAttendanceCounter{absences: 4, presences: 36}, students, groups, nil, nil)
}

func coordinatorIdentity() models.Identity {
	return models.Identity{UserID: "coord-1", Role: models.RoleCoordinator}
}

func TestStudentPerformanceAuthorizationMatrix(t *testing.T) {
	students := &fakeStudentFinder{details: map[string]*models.StudentDetail{
		"st1": {Student: models.Student{ID: "st1", Status: models.StatusActive}, FullName: "Ana"},
	}}
	svc := newReportService(&fakeReportRepo{
		averages: []models.SubjectAreaAverage{{AreaName: "Mathematics", Average: 7.1}},
	}, students, nil)

	cases := []struct {
		name    string
		ident   models.Identity
		allowed bool
	}{
		{"student self", models.Identity{Role: models.RoleStudent, StudentProfileID: "st1"}, true},
		{"student other", models.Identity{Role: models.RoleStudent, StudentProfileID: "st2"}, false},
		{"teacher", models.Identity{Role: models.RoleTeacher}, true},
		{"coordinator", coordinatorIdentity(), true},
		{"superuser", models.Identity{IsSuperuser: true}, true},
		{"no role", models.Identity{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := svc.StudentPerformance(context.Background(), tc.ident, "st1")
			if !tc.allowed {
				require.Error(t, err)
				assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", report.FullName)
			assert.Equal(t, 4, report.AbsenceCount)
			assert.Equal(t, 36, report.PresenceCount)
			require.Len(t, report.AreaAverages, 1)
		})
	}
}

func TestAbsenceSummaryRestrictedToCoordination(t *testing.T) {
	svc := newReportService(&fakeReportRepo{
		summary: []models.AbsenceSummaryRow{{StudentName: "Ana", AreaName: "History", Total: 2}},
	}, nil, nil)

	_, err := svc.AbsenceSummary(context.Background(), models.Identity{Role: models.RoleTeacher})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	rows, err := svc.AbsenceSummary(context.Background(), coordinatorIdentity())
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestManagementReportFormatsRates(t *testing.T) {
	repo := &fakeReportRepo{
		counts: []models.ClassGroupStatusCounts{
			{ClassGroupID: "cg1", Active: 8, DroppedOut: 2},
		},
		passing: map[string]int{"cg1": 6},
	}
	groups := &fakeGroupLister{groups: []models.ClassGroup{{ID: "cg1", Name: "9A"}}}
	svc := newReportService(repo, nil, groups)

	rows, err := svc.Management(context.Background(), coordinatorIdentity())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "20.00%", rows[0].DropoutRate)
	assert.Equal(t, "75.00%", rows[0].PassRate)
}

func TestManagementReportZeroDenominators(t *testing.T) {
	groups := &fakeGroupLister{groups: []models.ClassGroup{{ID: "cg-empty", Name: "New"}}}
	svc := newReportService(&fakeReportRepo{}, nil, groups)

	rows, err := svc.Management(context.Background(), coordinatorIdentity())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.00%", rows[0].DropoutRate)
	assert.Equal(t, "0.00%", rows[0].PassRate)
}

func TestManagementReportDeniedForStudents(t *testing.T) {
	svc := newReportService(nil, nil, nil)

	_, err := svc.Management(context.Background(), models.Identity{Role: models.RoleStudent, StudentProfileID: "st1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
