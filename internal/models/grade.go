package models

import "time"

// Grade is one grade record for a (student, subject, period) triple. The
// triple is unique at the storage layer; a second write for the same triple
// is a domain conflict, never a crash.
type Grade struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Value     float64   `db:"value" json:"value"`
	Period    int       `db:"period" json:"period"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GradeFilter captures caller-supplied equality filters for grade listings.
// OwnStudentID and TaughtByUserID are the visibility narrowings the service
// layer derives from the caller's scope; they stack on top of the equality
// filters.
type GradeFilter struct {
	SubjectID string
	StudentID string

	OwnStudentID   string
	TaughtByUserID string
}
