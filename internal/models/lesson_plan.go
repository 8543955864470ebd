package models

import "time"

// LessonPlan describes the planned content of one lesson in a subject.
type LessonPlan struct {
	ID        string    `db:"id" json:"id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Date      time.Time `db:"date" json:"date"`
	Content   string    `db:"content" json:"content"`
}
