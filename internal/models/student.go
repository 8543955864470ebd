package models

import "time"

// EnrollmentStatus tracks a student's standing in the institution.
type EnrollmentStatus string

const (
	StatusActive      EnrollmentStatus = "ACTIVE"
	StatusDroppedOut  EnrollmentStatus = "DROPPED_OUT"
	StatusTransferred EnrollmentStatus = "TRANSFERRED"
	StatusCompleted   EnrollmentStatus = "COMPLETED"
)

// Valid reports whether the status is one of the known values.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDroppedOut, StatusTransferred, StatusCompleted:
		return true
	}
	return false
}

// Student represents a learner profile linked to a user account.
type Student struct {
	ID           string           `db:"id" json:"id"`
	UserID       string           `db:"user_id" json:"user_id"`
	ClassGroupID *string          `db:"class_group_id" json:"class_group_id,omitempty"`
	Status       EnrollmentStatus `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// StudentDetail joins the owning user's name onto the profile for listings.
type StudentDetail struct {
	Student
	FullName       string  `db:"full_name" json:"full_name"`
	Email          string  `db:"email" json:"email"`
	ClassGroupName *string `db:"class_group_name" json:"class_group_name,omitempty"`
}

// StudentFilter encapsulates list criteria for student queries.
type StudentFilter struct {
	ClassGroupID string
	Status       EnrollmentStatus
}
