package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/escola-dev/escola-api/internal/models"
)

func TestForNoRoleAlwaysNone(t *testing.T) {
	id := models.Identity{UserID: "u1"}
	for _, kind := range []EntityKind{KindSubject, KindStudent, KindGrade, KindAbsence, KindPresence, KindLessonPlan} {
		assert.Equal(t, AccessNone, For(id, kind))
	}
}

func TestForStudent(t *testing.T) {
	id := models.Identity{UserID: "u1", Role: models.RoleStudent, StudentProfileID: "st1", ClassGroupID: "cg1"}

	assert.Equal(t, AccessOwnStudent, For(id, KindGrade))
	assert.Equal(t, AccessOwnStudent, For(id, KindAbsence))
	assert.Equal(t, AccessOwnStudent, For(id, KindPresence))
	assert.Equal(t, AccessOwnClassGroup, For(id, KindSubject))
	assert.Equal(t, AccessNone, For(id, KindStudent))
	assert.Equal(t, AccessNone, For(id, KindLessonPlan))
}

func TestForStudentWithoutProfile(t *testing.T) {
	id := models.Identity{UserID: "u1", Role: models.RoleStudent}
	assert.Equal(t, AccessNone, For(id, KindGrade))
	assert.Equal(t, AccessNone, For(id, KindSubject))
}

func TestForStudentWithoutClassGroup(t *testing.T) {
	id := models.Identity{UserID: "u1", Role: models.RoleStudent, StudentProfileID: "st1"}
	assert.Equal(t, AccessNone, For(id, KindSubject))
	assert.Equal(t, AccessOwnStudent, For(id, KindGrade))
}

func TestForTeacher(t *testing.T) {
	id := models.Identity{UserID: "u1", Role: models.RoleTeacher}

	assert.Equal(t, AccessTaughtSubjects, For(id, KindGrade))
	assert.Equal(t, AccessTaughtSubjects, For(id, KindAbsence))
	assert.Equal(t, AccessTaughtSubjects, For(id, KindSubject))
	assert.Equal(t, AccessTaughtSubjects, For(id, KindLessonPlan))
	assert.Equal(t, AccessNone, For(id, KindStudent))
}

func TestForCoordinatorTier(t *testing.T) {
	for _, role := range []models.Role{models.RoleCoordinator, models.RoleDirector, models.RoleITStaff} {
		id := models.Identity{UserID: "u1", Role: role}
		for _, kind := range []EntityKind{KindSubject, KindStudent, KindGrade, KindAbsence, KindLessonPlan} {
			assert.Equal(t, AccessAll, For(id, kind), "role %s kind %d", role, kind)
		}
	}
}

func TestForSuperuserOverridesRole(t *testing.T) {
	id := models.Identity{UserID: "u1", Role: models.RoleTeacher, IsSuperuser: true}
	assert.Equal(t, AccessAll, For(id, KindStudent))

	noRole := models.Identity{UserID: "u2", IsSuperuser: true}
	assert.Equal(t, AccessAll, For(noRole, KindGrade))
}

func TestForUnknownRole(t *testing.T) {
	id := models.Identity{UserID: "u1", Role: models.Role("JANITOR")}
	assert.Equal(t, AccessNone, For(id, KindGrade))
}
