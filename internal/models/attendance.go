package models

import "time"

// Absence records one missed lesson for a student in a subject.
type Absence struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Presence records one attended lesson for a student in a subject.
type Presence struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AbsenceFilter captures caller-supplied equality filters for absence
// listings plus the scope narrowings derived by the service layer.
type AbsenceFilter struct {
	SubjectID string
	StudentID string

	OwnStudentID   string
	TaughtByUserID string
}
