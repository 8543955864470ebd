package models

// SubjectAreaAverage is one row of a student's per-area grade averages.
type SubjectAreaAverage struct {
	AreaName string  `db:"area_name" json:"area_name"`
	Average  float64 `db:"average" json:"average"`
}

// StudentPerformanceReport aggregates one student's grades and attendance.
type StudentPerformanceReport struct {
	StudentID      string               `json:"student_id"`
	FullName       string               `json:"full_name"`
	ClassGroupID   *string              `json:"class_group_id,omitempty"`
	ClassGroupName *string              `json:"class_group_name,omitempty"`
	Status         EnrollmentStatus     `json:"status"`
	AreaAverages   []SubjectAreaAverage `json:"area_averages"`
	AbsenceCount   int                  `json:"absence_count"`
	PresenceCount  int                  `json:"presence_count"`
}

// AbsenceSummaryRow counts absences for one (student, subject area) pair.
type AbsenceSummaryRow struct {
	StudentName string `db:"student_name" json:"student_name"`
	AreaName    string `db:"area_name" json:"area_name"`
	Total       int    `db:"total" json:"total"`
}

// ClassGroupStatusCounts carries the per-status roster counts of one class
// group, as needed by the management report denominators.
type ClassGroupStatusCounts struct {
	ClassGroupID string `db:"class_group_id"`
	Active       int    `db:"active"`
	DroppedOut   int    `db:"dropped_out"`
	Transferred  int    `db:"transferred"`
	Completed    int    `db:"completed"`
}

// Countable sums every status that participates in the dropout denominator.
func (c ClassGroupStatusCounts) Countable() int {
	return c.Active + c.DroppedOut + c.Transferred + c.Completed
}

// ManagementReportRow summarises one class group for the dashboard. Rates
// are pre-formatted percentage strings with two decimal places.
type ManagementReportRow struct {
	ClassGroup  ClassGroup `json:"class_group"`
	DropoutRate string     `json:"dropout_rate"`
	PassRate    string     `json:"pass_rate"`
}

// TeacherLessonPlans bundles a teacher's plans with the subjects they teach.
type TeacherLessonPlans struct {
	LessonPlans []LessonPlan `json:"lesson_plans"`
	Subjects    []Subject    `json:"subjects"`
}
