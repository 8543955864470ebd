package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// AttendanceRepository persists absences and presences.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListAbsences returns absences matching the filter plus scope narrowing.
func (r *AttendanceRepository) ListAbsences(ctx context.Context, filter models.AbsenceFilter) ([]models.Absence, error) {
	query := `SELECT a.id, a.student_id, a.subject_id, a.date, a.created_at FROM absences a WHERE 1=1`
	var args []interface{}
	if filter.SubjectID != "" {
		query += fmt.Sprintf(" AND a.subject_id = $%d", len(args)+1)
		args = append(args, filter.SubjectID)
	}
	if filter.StudentID != "" {
		query += fmt.Sprintf(" AND a.student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	if filter.OwnStudentID != "" {
		query += fmt.Sprintf(" AND a.student_id = $%d", len(args)+1)
		args = append(args, filter.OwnStudentID)
	}
	if filter.TaughtByUserID != "" {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM subject_teachers st WHERE st.subject_id = a.subject_id AND st.user_id = $%d)", len(args)+1)
		args = append(args, filter.TaughtByUserID)
	}
	query += " ORDER BY a.date"
	var absences []models.Absence
	if err := r.db.SelectContext(ctx, &absences, query, args...); err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return absences, nil
}

// FindAbsenceByID fetches one absence.
func (r *AttendanceRepository) FindAbsenceByID(ctx context.Context, id string) (*models.Absence, error) {
	const query = `SELECT id, student_id, subject_id, date, created_at FROM absences WHERE id = $1`
	var absence models.Absence
	if err := r.db.GetContext(ctx, &absence, query, id); err != nil {
		return nil, err
	}
	return &absence, nil
}

// CreateAbsence inserts an absence record.
func (r *AttendanceRepository) CreateAbsence(ctx context.Context, absence *models.Absence) error {
	if absence.ID == "" {
		absence.ID = uuid.NewString()
	}
	absence.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO absences (id, student_id, subject_id, date, created_at)
        VALUES (:id, :student_id, :subject_id, :date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, absence); err != nil {
		return fmt.Errorf("create absence: %w", err)
	}
	return nil
}

// UpdateAbsence rewrites an absence record.
func (r *AttendanceRepository) UpdateAbsence(ctx context.Context, absence *models.Absence) error {
	const query = `UPDATE absences SET student_id = :student_id, subject_id = :subject_id, date = :date WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, absence); err != nil {
		return fmt.Errorf("update absence: %w", err)
	}
	return nil
}

// DeleteAbsence removes an absence record.
func (r *AttendanceRepository) DeleteAbsence(ctx context.Context, id string) error {
	const query = `DELETE FROM absences WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete absence: %w", err)
	}
	return nil
}

// CountAbsences counts absence rows for one student.
func (r *AttendanceRepository) CountAbsences(ctx context.Context, studentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM absences WHERE student_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID); err != nil {
		return 0, fmt.Errorf("count absences: %w", err)
	}
	return count, nil
}

// CountPresences counts presence rows for one student.
func (r *AttendanceRepository) CountPresences(ctx context.Context, studentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM presences WHERE student_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID); err != nil {
		return 0, fmt.Errorf("count presences: %w", err)
	}
	return count, nil
}
