package models

// SubjectArea is a catalog entry (e.g. Mathematics) independent of any
// class group or teacher assignment.
type SubjectArea struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Subject is one subject-area instance taught to one class group by one or
// more assigned teachers.
type Subject struct {
	ID            string   `db:"id" json:"id"`
	Name          string   `db:"name" json:"name"`
	SubjectAreaID string   `db:"subject_area_id" json:"subject_area_id"`
	ClassGroupID  string   `db:"class_group_id" json:"class_group_id"`
	AreaName      *string  `db:"area_name" json:"area_name,omitempty"`
	TeacherIDs    []string `json:"teacher_ids,omitempty"`
}

// SubjectFilter captures the caller-supplied class-group filter plus the
// scope narrowings derived by the service layer. The class-group filter is
// applied before role narrowing so grade-entry UIs can scope to one class.
type SubjectFilter struct {
	ClassGroupID string

	OwnClassGroupID string
	TaughtByUserID  string
}
