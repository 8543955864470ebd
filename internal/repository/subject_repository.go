package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// SubjectRepository manages subjects and their teacher assignments.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects matching the filter, ordered by subject-area name.
// The class-group equality filter applies before any scope narrowing.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	query := `SELECT s.id, s.name, s.subject_area_id, s.class_group_id, sa.name AS area_name
        FROM subjects s
        JOIN subject_areas sa ON sa.id = s.subject_area_id
        WHERE 1=1`
	var args []interface{}
	if filter.ClassGroupID != "" {
		query += fmt.Sprintf(" AND s.class_group_id = $%d", len(args)+1)
		args = append(args, filter.ClassGroupID)
	}
	if filter.OwnClassGroupID != "" {
		query += fmt.Sprintf(" AND s.class_group_id = $%d", len(args)+1)
		args = append(args, filter.OwnClassGroupID)
	}
	if filter.TaughtByUserID != "" {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM subject_teachers st WHERE st.subject_id = s.id AND st.user_id = $%d)", len(args)+1)
		args = append(args, filter.TaughtByUserID)
	}
	query += " ORDER BY sa.name"
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches a subject with its area name.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT s.id, s.name, s.subject_area_id, s.class_group_id, sa.name AS area_name
        FROM subjects s
        JOIN subject_areas sa ON sa.id = s.subject_area_id
        WHERE s.id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create inserts a subject and its teacher assignments.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `INSERT INTO subjects (id, name, subject_area_id, class_group_id)
        VALUES (:id, :name, :subject_area_id, :class_group_id)`
	if _, err := tx.NamedExecContext(ctx, query, subject); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create subject: %w", err)
	}
	if err := assignTeachers(ctx, tx, subject.ID, subject.TeacherIDs); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	return tx.Commit()
}

// Update rewrites a subject and replaces its teacher assignments.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `UPDATE subjects SET name = :name, subject_area_id = :subject_area_id, class_group_id = :class_group_id WHERE id = :id`
	if _, err := tx.NamedExecContext(ctx, query, subject); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("update subject: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM subject_teachers WHERE subject_id = $1`, subject.ID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("clear subject teachers: %w", err)
	}
	if err := assignTeachers(ctx, tx, subject.ID, subject.TeacherIDs); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	return tx.Commit()
}

// Delete removes a subject.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM subjects WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}

// TeacherIDs returns the user IDs assigned to a subject.
func (r *SubjectRepository) TeacherIDs(ctx context.Context, subjectID string) ([]string, error) {
	const query = `SELECT user_id FROM subject_teachers WHERE subject_id = $1 ORDER BY user_id`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, subjectID); err != nil {
		return nil, fmt.Errorf("list subject teachers: %w", err)
	}
	return ids, nil
}

func assignTeachers(ctx context.Context, tx *sqlx.Tx, subjectID string, teacherIDs []string) error {
	const query = `INSERT INTO subject_teachers (subject_id, user_id) VALUES ($1, $2)`
	for _, userID := range teacherIDs {
		if _, err := tx.ExecContext(ctx, query, subjectID, userID); err != nil {
			return fmt.Errorf("assign teacher: %w", err)
		}
	}
	return nil
}
