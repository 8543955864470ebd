package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// StudentRepository manages persistence for student profiles.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns student details matching the filter, ordered by name.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, error) {
	query := `SELECT s.id, s.user_id, s.class_group_id, s.status, s.created_at, s.updated_at,
        u.full_name, u.email, cg.name AS class_group_name
        FROM students s
        JOIN users u ON u.id = s.user_id
        LEFT JOIN class_groups cg ON cg.id = s.class_group_id
        WHERE 1=1`
	var args []interface{}
	if filter.ClassGroupID != "" {
		query += fmt.Sprintf(" AND s.class_group_id = $%d", len(args)+1)
		args = append(args, filter.ClassGroupID)
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND s.status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	query += " ORDER BY u.full_name"
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches one student detail.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	const query = `SELECT s.id, s.user_id, s.class_group_id, s.status, s.created_at, s.updated_at,
        u.full_name, u.email, cg.name AS class_group_name
        FROM students s
        JOIN users u ON u.id = s.user_id
        LEFT JOIN class_groups cg ON cg.id = s.class_group_id
        WHERE s.id = $1`
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new student profile.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, user_id, class_group_id, status, created_at, updated_at)
        VALUES (:id, :user_id, :class_group_id, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update rewrites a student's class group and status.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET class_group_id = :class_group_id, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student profile.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM students WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
