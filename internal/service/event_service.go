package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type eventRepo interface {
	List(ctx context.Context) ([]models.AcademicEvent, error)
	FindByID(ctx context.Context, id string) (*models.AcademicEvent, error)
	Create(ctx context.Context, event *models.AcademicEvent) error
	Update(ctx context.Context, event *models.AcademicEvent) error
	Delete(ctx context.Context, id string) error
}

// EventRequest is the academic-event create/update payload.
type EventRequest struct {
	Title       string           `json:"title" validate:"required"`
	Type        models.EventType `json:"type" validate:"required"`
	StartsAt    time.Time        `json:"starts_at" validate:"required"`
	EndsAt      *time.Time       `json:"ends_at"`
	Description string           `json:"description"`
}

// EventService manages the academic calendar.
type EventService struct {
	events    eventRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs EventService.
func NewEventService(events eventRepo, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{events: events, validator: validate, logger: logger}
}

// Calendar returns every event in the render-ready shape calendar widgets
// consume: the type is folded into the title and timestamps are RFC3339.
func (s *EventService) Calendar(ctx context.Context) ([]models.CalendarEntry, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	entries := make([]models.CalendarEntry, 0, len(events))
	for _, event := range events {
		entry := models.CalendarEntry{
			ID:          event.ID,
			Title:       fmt.Sprintf("(%s) %s", event.Type, event.Title),
			Start:       event.StartsAt.Format(time.RFC3339),
			Description: event.Description,
		}
		if event.EndsAt != nil {
			end := event.EndsAt.Format(time.RFC3339)
			entry.End = &end
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Get fetches one event.
func (s *EventService) Get(ctx context.Context, id string) (*models.AcademicEvent, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}

// Create registers an academic event.
func (s *EventService) Create(ctx context.Context, req EventRequest) (*models.AcademicEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event := &models.AcademicEvent{
		Title:       req.Title,
		Type:        req.Type,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Description: req.Description,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	return event, nil
}

// Update rewrites an academic event.
func (s *EventService) Update(ctx context.Context, id string, req EventRequest) (*models.AcademicEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Title = req.Title
	event.Type = req.Type
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.Description = req.Description
	if err := s.events.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	return event, nil
}

// Delete removes an academic event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	return nil
}
