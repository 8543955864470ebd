package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// GradeRepository handles grade persistence.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns grades matching the filter, input filters first, scope
// narrowing second. Ordered by creation time for determinism.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	query := `SELECT g.id, g.student_id, g.subject_id, g.value, g.period, g.created_at, g.updated_at
        FROM grades g WHERE 1=1`
	var args []interface{}
	if filter.SubjectID != "" {
		query += fmt.Sprintf(" AND g.subject_id = $%d", len(args)+1)
		args = append(args, filter.SubjectID)
	}
	if filter.StudentID != "" {
		query += fmt.Sprintf(" AND g.student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	if filter.OwnStudentID != "" {
		query += fmt.Sprintf(" AND g.student_id = $%d", len(args)+1)
		args = append(args, filter.OwnStudentID)
	}
	if filter.TaughtByUserID != "" {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM subject_teachers st WHERE st.subject_id = g.subject_id AND st.user_id = $%d)", len(args)+1)
		args = append(args, filter.TaughtByUserID)
	}
	query += " ORDER BY g.created_at"
	var grades []models.Grade
	if err := r.db.SelectContext(ctx, &grades, query, args...); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// FindByID fetches one grade.
func (r *GradeRepository) FindByID(ctx context.Context, id string) (*models.Grade, error) {
	const query = `SELECT id, student_id, subject_id, value, period, created_at, updated_at
        FROM grades WHERE id = $1`
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, query, id); err != nil {
		return nil, err
	}
	return &grade, nil
}

// FindForTeacher fetches a grade only when its subject is taught by the
// given user. A grade outside the teacher's scope is indistinguishable from
// a nonexistent one: both surface sql.ErrNoRows.
func (r *GradeRepository) FindForTeacher(ctx context.Context, id, teacherUserID string) (*models.Grade, error) {
	const query = `SELECT g.id, g.student_id, g.subject_id, g.value, g.period, g.created_at, g.updated_at
        FROM grades g
        WHERE g.id = $1
          AND EXISTS (SELECT 1 FROM subject_teachers st WHERE st.subject_id = g.subject_id AND st.user_id = $2)`
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, query, id, teacherUserID); err != nil {
		return nil, err
	}
	return &grade, nil
}

// Create inserts a new grade. The (student, subject, period) uniqueness
// constraint surfaces as a driver error the caller translates.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	grade.CreatedAt = now
	grade.UpdatedAt = now
	const query = `INSERT INTO grades (id, student_id, subject_id, value, period, created_at, updated_at)
        VALUES (:id, :student_id, :subject_id, :value, :period, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return err
	}
	return nil
}

// Update rewrites the mutable columns of an existing grade.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	grade.UpdatedAt = time.Now().UTC()
	const query = `UPDATE grades SET value = :value, period = :period, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return err
	}
	return nil
}

// Delete removes a grade.
func (r *GradeRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM grades WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return nil
}
