package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// EventRepository manages academic calendar entries.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns all events ordered by start time.
func (r *EventRepository) List(ctx context.Context) ([]models.AcademicEvent, error) {
	const query = `SELECT id, title, event_type, starts_at, ends_at, description
        FROM academic_events ORDER BY starts_at`
	var events []models.AcademicEvent
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindByID fetches one event.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.AcademicEvent, error) {
	const query = `SELECT id, title, event_type, starts_at, ends_at, description
        FROM academic_events WHERE id = $1`
	var event models.AcademicEvent
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.AcademicEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	const query = `INSERT INTO academic_events (id, title, event_type, starts_at, ends_at, description)
        VALUES (:id, :title, :event_type, :starts_at, :ends_at, :description)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update rewrites an event.
func (r *EventRepository) Update(ctx context.Context, event *models.AcademicEvent) error {
	const query = `UPDATE academic_events SET title = :title, event_type = :event_type, starts_at = :starts_at, ends_at = :ends_at, description = :description WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM academic_events WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
