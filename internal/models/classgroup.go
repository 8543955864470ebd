package models

// ClassGroup is a cohort of students taught together.
type ClassGroup struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ClassGroupDetail pairs a class group with its active roster.
type ClassGroupDetail struct {
	ClassGroup ClassGroup      `json:"class_group"`
	Students   []StudentDetail `json:"students"`
}
