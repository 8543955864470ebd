package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// UserRepository manages persistence for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail fetches a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, is_superuser, active, created_at, updated_at
        FROM users WHERE email = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID fetches a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, is_superuser, active, created_at, updated_at
        FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// StudentProfileByUserID returns the student profile linked to a user, or
// sql.ErrNoRows when the account has no profile.
func (r *UserRepository) StudentProfileByUserID(ctx context.Context, userID string) (*models.Student, error) {
	const query = `SELECT id, user_id, class_group_id, status, created_at, updated_at
        FROM students WHERE user_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, userID); err != nil {
		return nil, err
	}
	return &student, nil
}

// TeachesSubject reports whether the user is among the subject's assigned
// teachers.
func (r *UserRepository) TeachesSubject(ctx context.Context, userID, subjectID string) (bool, error) {
	const query = `SELECT 1 FROM subject_teachers WHERE subject_id = $1 AND user_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, subjectID, userID); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("check subject teacher: %w", err)
	}
	return true, nil
}
