package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// SubjectAreaRepository manages the subject-area catalog.
type SubjectAreaRepository struct {
	db *sqlx.DB
}

// NewSubjectAreaRepository constructs a SubjectAreaRepository.
func NewSubjectAreaRepository(db *sqlx.DB) *SubjectAreaRepository {
	return &SubjectAreaRepository{db: db}
}

// List returns all subject areas ordered by name.
func (r *SubjectAreaRepository) List(ctx context.Context) ([]models.SubjectArea, error) {
	const query = `SELECT id, name FROM subject_areas ORDER BY name`
	var areas []models.SubjectArea
	if err := r.db.SelectContext(ctx, &areas, query); err != nil {
		return nil, fmt.Errorf("list subject areas: %w", err)
	}
	return areas, nil
}

// FindByID fetches one subject area.
func (r *SubjectAreaRepository) FindByID(ctx context.Context, id string) (*models.SubjectArea, error) {
	const query = `SELECT id, name FROM subject_areas WHERE id = $1`
	var area models.SubjectArea
	if err := r.db.GetContext(ctx, &area, query, id); err != nil {
		return nil, err
	}
	return &area, nil
}

// Create inserts a subject area.
func (r *SubjectAreaRepository) Create(ctx context.Context, area *models.SubjectArea) error {
	if area.ID == "" {
		area.ID = uuid.NewString()
	}
	const query = `INSERT INTO subject_areas (id, name) VALUES (:id, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, area); err != nil {
		return fmt.Errorf("create subject area: %w", err)
	}
	return nil
}

// Update renames a subject area.
func (r *SubjectAreaRepository) Update(ctx context.Context, area *models.SubjectArea) error {
	const query = `UPDATE subject_areas SET name = :name WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, area); err != nil {
		return fmt.Errorf("update subject area: %w", err)
	}
	return nil
}

// Delete removes a subject area.
func (r *SubjectAreaRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM subject_areas WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete subject area: %w", err)
	}
	return nil
}
