package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escola-dev/escola-api/internal/models"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type fakeGradeRepo struct {
	grades    map[string]*models.Grade
	createErr error
	updateErr error
	created   []models.Grade
	updated   []models.Grade
}

func (f *fakeGradeRepo) List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	var out []models.Grade
	for _, g := range f.grades {
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeGradeRepo) FindForTeacher(ctx context.Context, id, teacherUserID string) (*models.Grade, error) {
	g, ok := f.grades[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	if f.createErr != nil {
		return f.createErr
	}
	grade.ID = "created-" + grade.StudentID
	f.created = append(f.created, *grade)
	return nil
}

func (f *fakeGradeRepo) Update(ctx context.Context, grade *models.Grade) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *grade)
	return nil
}

func (f *fakeGradeRepo) Delete(ctx context.Context, id string) error {
	delete(f.grades, id)
	return nil
}

type fakeTeacherChecker struct {
	taught map[string]bool
	err    error
}

func (f *fakeTeacherChecker) TeachesSubject(ctx context.Context, userID, subjectID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.taught[subjectID], nil
}

func teacherIdentity() models.Identity {
	return models.Identity{UserID: "teacher-1", Role: models.RoleTeacher}
}

func bulkItems(t *testing.T, payload string) []BulkGradeItem {
	t.Helper()
	var items []BulkGradeItem
	require.NoError(t, json.Unmarshal([]byte(payload), &items))
	return items
}

func TestBulkUpsertRequiresTeacherRole(t *testing.T) {
	svc := NewGradeService(&fakeGradeRepo{}, &fakeTeacherChecker{}, nil, nil)

	_, err := svc.BulkUpsert(context.Background(), models.Identity{Role: models.RoleStudent}, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestBulkUpsertPreservesInputOrderAcrossFailures(t *testing.T) {
	repo := &fakeGradeRepo{grades: map[string]*models.Grade{
		"g1": {ID: "g1", StudentID: "st1", SubjectID: "math", Value: 5, Period: 1},
	}}
	checker := &fakeTeacherChecker{taught: map[string]bool{"math": true, "history": true}}
	svc := NewGradeService(repo, checker, nil, nil)

	items := bulkItems(t, `[
        {"id": "g1", "subject_id": "math", "value": 8.5},
        {"subject_id": "geography", "student_id": "st2", "period": 1, "value": 6},
        {"subject_id": "history", "student_id": "st3", "period": 2, "value": "7.0"}
    ]`)

	result, err := svc.BulkUpsert(context.Background(), teacherIdentity(), items)
	require.NoError(t, err)
	assert.True(t, result.Partial())
	require.Len(t, result.Applied, 2)
	assert.Equal(t, "g1", result.Applied[0].ID)
	assert.InDelta(t, 8.5, result.Applied[0].Value, 0.001)
	assert.Equal(t, "st3", result.Applied[1].StudentID)
	assert.InDelta(t, 7.0, result.Applied[1].Value, 0.001)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "permission")
}

func TestBulkUpsertSkipsBlankValues(t *testing.T) {
	repo := &fakeGradeRepo{}
	// The checker would reject every subject, proving blank rows skip the
	// permission check entirely.
	svc := NewGradeService(repo, &fakeTeacherChecker{}, nil, nil)

	items := bulkItems(t, `[
        {"subject_id": "math", "student_id": "st1", "period": 1, "value": ""},
        {"subject_id": "math", "student_id": "st2", "period": 1, "value": null}
    ]`)

	result, err := svc.BulkUpsert(context.Background(), teacherIdentity(), items)
	require.NoError(t, err)
	assert.False(t, result.Partial())
	assert.Empty(t, result.Applied)
	assert.Empty(t, result.Errors)
}

func TestBulkUpsertRejectsUnparseableValuePerItem(t *testing.T) {
	checker := &fakeTeacherChecker{taught: map[string]bool{"math": true}}
	svc := NewGradeService(&fakeGradeRepo{}, checker, nil, nil)

	items := bulkItems(t, `[
        {"subject_id": "math", "student_id": "st1", "period": 1, "value": "abc"},
        {"subject_id": "math", "student_id": "st2", "period": 1, "value": 9}
    ]`)

	result, err := svc.BulkUpsert(context.Background(), teacherIdentity(), items)
	require.NoError(t, err)
	assert.True(t, result.Partial())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "abc")
	require.Len(t, result.Applied, 1)
	assert.Equal(t, "st2", result.Applied[0].StudentID)
}

func TestBulkUpsertTranslatesUniqueViolation(t *testing.T) {
	repo := &fakeGradeRepo{createErr: &pq.Error{Code: "23505"}}
	checker := &fakeTeacherChecker{taught: map[string]bool{"math": true}}
	svc := NewGradeService(repo, checker, nil, nil)

	items := bulkItems(t, `[{"subject_id": "math", "student_id": "st1", "period": 1, "value": 7}]`)

	result, err := svc.BulkUpsert(context.Background(), teacherIdentity(), items)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "subject math")
	assert.Contains(t, result.Errors[0], "already been recorded")
}

func TestBulkUpsertMissingGradeReportedAsNotYours(t *testing.T) {
	checker := &fakeTeacherChecker{taught: map[string]bool{"math": true}}
	svc := NewGradeService(&fakeGradeRepo{grades: map[string]*models.Grade{}}, checker, nil, nil)

	items := bulkItems(t, `[{"id": "ghost", "subject_id": "math", "value": 5}]`)

	result, err := svc.BulkUpsert(context.Background(), teacherIdentity(), items)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "grade ghost not found or not yours")
}

func TestBulkUpsertUpdateValidatesValueRange(t *testing.T) {
	repo := &fakeGradeRepo{grades: map[string]*models.Grade{
		"g1": {ID: "g1", StudentID: "st1", SubjectID: "math", Value: 5, Period: 1},
	}}
	checker := &fakeTeacherChecker{taught: map[string]bool{"math": true}}
	svc := NewGradeService(repo, checker, nil, nil)

	items := bulkItems(t, `[
        {"id": "g1", "subject_id": "math", "value": 55},
        {"id": "g1", "subject_id": "math", "value": 8}
    ]`)

	result, err := svc.BulkUpsert(context.Background(), teacherIdentity(), items)
	require.NoError(t, err)
	assert.True(t, result.Partial())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "invalid grade data")
	require.Len(t, result.Applied, 1)
	assert.InDelta(t, 8.0, result.Applied[0].Value, 0.001)
	// The out-of-range row never reached persistence.
	require.Len(t, repo.updated, 1)
	assert.InDelta(t, 8.0, repo.updated[0].Value, 0.001)
}

func TestBulkUpsertUpdateRejectsBadPeriod(t *testing.T) {
	repo := &fakeGradeRepo{grades: map[string]*models.Grade{
		"g1": {ID: "g1", StudentID: "st1", SubjectID: "math", Value: 5, Period: 1},
	}}
	checker := &fakeTeacherChecker{taught: map[string]bool{"math": true}}
	svc := NewGradeService(repo, checker, nil, nil)

	items := bulkItems(t, `[{"id": "g1", "subject_id": "math", "period": 9, "value": 7}]`)

	result, err := svc.BulkUpsert(context.Background(), teacherIdentity(), items)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "invalid grade data")
	assert.Empty(t, repo.updated)
}

func TestBulkUpsertCreateValidatesPayload(t *testing.T) {
	checker := &fakeTeacherChecker{taught: map[string]bool{"math": true}}
	svc := NewGradeService(&fakeGradeRepo{}, checker, nil, nil)

	// Missing period on a creation row.
	items := bulkItems(t, `[{"subject_id": "math", "student_id": "st1", "value": 7}]`)

	result, err := svc.BulkUpsert(context.Background(), teacherIdentity(), items)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "invalid grade data")
}

func TestListReturnsEmptyForUnscopedCaller(t *testing.T) {
	repo := &fakeGradeRepo{grades: map[string]*models.Grade{"g1": {ID: "g1"}}}
	svc := NewGradeService(repo, &fakeTeacherChecker{}, nil, nil)

	grades, err := svc.List(context.Background(), models.Identity{}, models.GradeFilter{})
	require.NoError(t, err)
	assert.Empty(t, grades)
}

func TestCreateRequiresSubjectAssignment(t *testing.T) {
	svc := NewGradeService(&fakeGradeRepo{}, &fakeTeacherChecker{taught: map[string]bool{}}, nil, nil)

	_, err := svc.Create(context.Background(), teacherIdentity(), CreateGradeRequest{
		StudentID: "st1", SubjectID: "math", Value: 7, Period: 1,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}
