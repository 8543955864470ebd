package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// LessonPlanRepository persists lesson plans.
type LessonPlanRepository struct {
	db *sqlx.DB
}

// NewLessonPlanRepository constructs a LessonPlanRepository.
func NewLessonPlanRepository(db *sqlx.DB) *LessonPlanRepository {
	return &LessonPlanRepository{db: db}
}

// ListByTeacher returns plans for every subject taught by the user, ordered
// by lesson date.
func (r *LessonPlanRepository) ListByTeacher(ctx context.Context, teacherUserID string) ([]models.LessonPlan, error) {
	const query = `SELECT lp.id, lp.subject_id, lp.date, lp.content
        FROM lesson_plans lp
        WHERE EXISTS (SELECT 1 FROM subject_teachers st WHERE st.subject_id = lp.subject_id AND st.user_id = $1)
        ORDER BY lp.date`
	var plans []models.LessonPlan
	if err := r.db.SelectContext(ctx, &plans, query, teacherUserID); err != nil {
		return nil, fmt.Errorf("list lesson plans: %w", err)
	}
	return plans, nil
}

// Create inserts a lesson plan.
func (r *LessonPlanRepository) Create(ctx context.Context, plan *models.LessonPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	const query = `INSERT INTO lesson_plans (id, subject_id, date, content)
        VALUES (:id, :subject_id, :date, :content)`
	if _, err := r.db.NamedExecContext(ctx, query, plan); err != nil {
		return fmt.Errorf("create lesson plan: %w", err)
	}
	return nil
}
