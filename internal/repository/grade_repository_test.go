package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/pkg/database"
)

func newGradeMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func gradeRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "student_id", "subject_id", "value", "period", "created_at", "updated_at"}).
		AddRow("g1", "st1", "sub1", 7.5, 1, now, now)
}

func TestGradeRepositoryListNarrowsToTaughtSubjects(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery(`(?s)SELECT g\.id, .+ FROM grades g WHERE 1=1 AND EXISTS \(SELECT 1 FROM subject_teachers st WHERE st\.subject_id = g\.subject_id AND st\.user_id = \$1\) ORDER BY g\.created_at`).
		WithArgs("teacher-1").
		WillReturnRows(gradeRows())

	grades, err := repo.List(context.Background(), models.GradeFilter{TaughtByUserID: "teacher-1"})
	require.NoError(t, err)
	assert.Len(t, grades, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryListCombinesFilters(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery(`AND g\.subject_id = \$1 AND g\.student_id = \$2 ORDER BY g\.created_at`).
		WithArgs("sub1", "st1").
		WillReturnRows(gradeRows())

	grades, err := repo.List(context.Background(), models.GradeFilter{SubjectID: "sub1", StudentID: "st1"})
	require.NoError(t, err)
	assert.Len(t, grades, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryFindForTeacherMiss(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery(`FROM grades g\s+WHERE g\.id = \$1`).
		WithArgs("g1", "other-teacher").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindForTeacher(context.Background(), "g1", "other-teacher")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryCreateSurfacesUniqueViolation(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("INSERT INTO grades").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Grade{StudentID: "st1", SubjectID: "sub1", Value: 8, Period: 2})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("INSERT INTO grades").
		WillReturnResult(sqlmock.NewResult(1, 1))

	grade := &models.Grade{StudentID: "st1", SubjectID: "sub1", Value: 8, Period: 2}
	require.NoError(t, repo.Create(context.Background(), grade))
	assert.NotEmpty(t, grade.ID)
	assert.False(t, grade.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
