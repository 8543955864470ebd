package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// ClassGroupRepository manages persistence for class groups.
type ClassGroupRepository struct {
	db *sqlx.DB
}

// NewClassGroupRepository constructs a ClassGroupRepository.
func NewClassGroupRepository(db *sqlx.DB) *ClassGroupRepository {
	return &ClassGroupRepository{db: db}
}

// List returns all class groups ordered by name.
func (r *ClassGroupRepository) List(ctx context.Context) ([]models.ClassGroup, error) {
	const query = `SELECT id, name FROM class_groups ORDER BY name`
	var groups []models.ClassGroup
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list class groups: %w", err)
	}
	return groups, nil
}

// FindByID fetches one class group.
func (r *ClassGroupRepository) FindByID(ctx context.Context, id string) (*models.ClassGroup, error) {
	const query = `SELECT id, name FROM class_groups WHERE id = $1`
	var group models.ClassGroup
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// Create inserts a class group.
func (r *ClassGroupRepository) Create(ctx context.Context, group *models.ClassGroup) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	const query = `INSERT INTO class_groups (id, name) VALUES (:id, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create class group: %w", err)
	}
	return nil
}

// Update renames a class group.
func (r *ClassGroupRepository) Update(ctx context.Context, group *models.ClassGroup) error {
	const query = `UPDATE class_groups SET name = :name WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("update class group: %w", err)
	}
	return nil
}

// Delete removes a class group.
func (r *ClassGroupRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM class_groups WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete class group: %w", err)
	}
	return nil
}

// ActiveStudents returns the group's ACTIVE students ordered by name.
func (r *ClassGroupRepository) ActiveStudents(ctx context.Context, classGroupID string) ([]models.StudentDetail, error) {
	const query = `SELECT s.id, s.user_id, s.class_group_id, s.status, s.created_at, s.updated_at,
        u.full_name, u.email, cg.name AS class_group_name
        FROM students s
        JOIN users u ON u.id = s.user_id
        LEFT JOIN class_groups cg ON cg.id = s.class_group_id
        WHERE s.class_group_id = $1 AND s.status = $2
        ORDER BY u.full_name`
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, classGroupID, models.StatusActive); err != nil {
		return nil, fmt.Errorf("list class group students: %w", err)
	}
	return students, nil
}
