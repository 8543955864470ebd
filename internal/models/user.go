package models

import "time"

// Role represents the available roles for the RBAC system. An empty Role
// means the account carries no role at all; scoped queries treat that as
// "sees nothing" rather than as an error.
type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleTeacher     Role = "TEACHER"
	RoleCoordinator Role = "COORDINATOR"
	RoleDirector    Role = "DIRECTOR"
	RoleITStaff     Role = "IT_STAFF"
)

// CoordinatorTier reports whether the role belongs to the administrative
// tier that holds global read access and catalog mutation rights.
func (r Role) CoordinatorTier() bool {
	switch r {
	case RoleCoordinator, RoleDirector, RoleITStaff:
		return true
	default:
		return false
	}
}

// User represents an application user stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         Role      `db:"role" json:"role"`
	IsSuperuser  bool      `db:"is_superuser" json:"is_superuser"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Identity is the resolved caller shape handed to every scoped operation.
// The linked student profile is resolved once, when the identity is built
// from validated claims, so downstream code never probes for it again.
type Identity struct {
	UserID           string
	Role             Role
	IsSuperuser      bool
	StudentProfileID string
	ClassGroupID     string
}

// Elevated reports whether the identity bypasses row-level narrowing.
func (i Identity) Elevated() bool {
	return i.IsSuperuser || i.Role.CoordinatorTier()
}
