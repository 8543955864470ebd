package models

import "time"

// EventType classifies academic calendar entries.
type EventType string

const (
	EventExam    EventType = "EXAM"
	EventHoliday EventType = "HOLIDAY"
	EventMeeting EventType = "MEETING"
	EventOther   EventType = "OTHER"
)

// AcademicEvent is an entry in the school calendar.
type AcademicEvent struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Type        EventType  `db:"event_type" json:"type"`
	StartsAt    time.Time  `db:"starts_at" json:"starts_at"`
	EndsAt      *time.Time `db:"ends_at" json:"ends_at,omitempty"`
	Description string     `db:"description" json:"description"`
}

// CalendarEntry is the render-ready shape consumed by calendar widgets.
type CalendarEntry struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Start       string  `json:"start"`
	End         *string `json:"end"`
	Description string  `json:"description"`
}
