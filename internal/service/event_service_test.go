package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escola-dev/escola-api/internal/models"
)

type fakeEventRepo struct {
	events []models.AcademicEvent
}

func (f *fakeEventRepo) List(ctx context.Context) ([]models.AcademicEvent, error) {
	return f.events, nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id string) (*models.AcademicEvent, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.AcademicEvent) error { return nil }
func (f *fakeEventRepo) Update(ctx context.Context, event *models.AcademicEvent) error { return nil }
func (f *fakeEventRepo) Delete(ctx context.Context, id string) error                   { return nil }

func TestCalendarFoldsTypeIntoTitle(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	repo := &fakeEventRepo{events: []models.AcademicEvent{
		{ID: "e1", Title: "Final exam", Type: models.EventExam, StartsAt: start, EndsAt: &end},
		{ID: "e2", Title: "Carnival", Type: models.EventHoliday, StartsAt: start},
	}}
	svc := NewEventService(repo, nil, nil)

	entries, err := svc.Calendar(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "(EXAM) Final exam", entries[0].Title)
	assert.Equal(t, "2026-03-10T08:00:00Z", entries[0].Start)
	require.NotNil(t, entries[0].End)
	assert.Equal(t, "2026-03-10T10:00:00Z", *entries[0].End)

	assert.Equal(t, "(HOLIDAY) Carnival", entries[1].Title)
	assert.Nil(t, entries[1].End)
}
