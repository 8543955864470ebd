// Package scope implements row-level visibility as a pure function from
// (identity, entity kind) to an access mode. Repositories translate the
// mode into SQL narrowing; AccessNone short-circuits to an empty result
// before any query runs.
package scope

import "github.com/escola-dev/escola-api/internal/models"

// EntityKind names the row-scoped entity families.
type EntityKind int

const (
	KindSubject EntityKind = iota
	KindStudent
	KindGrade
	KindAbsence
	KindPresence
	KindLessonPlan
)

// Access is the narrowing a repository must apply on top of any
// caller-supplied equality filters.
type Access int

const (
	// AccessNone yields the empty result set. Absence of role means
	// absence of access, not an error.
	AccessNone Access = iota
	// AccessOwnStudent restricts rows to the caller's linked student profile.
	AccessOwnStudent
	// AccessOwnClassGroup restricts subjects to the caller's class group.
	AccessOwnClassGroup
	// AccessTaughtSubjects restricts rows to subjects the caller teaches.
	AccessTaughtSubjects
	// AccessAll applies no further narrowing.
	AccessAll
)

// For evaluates the visibility policy table. First match wins.
func For(id models.Identity, kind EntityKind) Access {
	if id.Role == "" && !id.IsSuperuser {
		return AccessNone
	}
	if id.Elevated() {
		return AccessAll
	}

	switch id.Role {
	case models.RoleStudent:
		return studentAccess(id, kind)
	case models.RoleTeacher:
		return teacherAccess(kind)
	default:
		return AccessNone
	}
}

func studentAccess(id models.Identity, kind EntityKind) Access {
	// A student-role account without a linked profile sees nothing.
	if id.StudentProfileID == "" {
		return AccessNone
	}
	switch kind {
	case KindSubject:
		if id.ClassGroupID == "" {
			return AccessNone
		}
		return AccessOwnClassGroup
	case KindGrade, KindAbsence, KindPresence:
		return AccessOwnStudent
	default:
		return AccessNone
	}
}

func teacherAccess(kind EntityKind) Access {
	switch kind {
	case KindSubject, KindGrade, KindAbsence, KindPresence, KindLessonPlan:
		return AccessTaughtSubjects
	default:
		return AccessNone
	}
}
