package entity

import (
	"time"
)

// Role is the closed set of authorization roles. Keep comparisons on Level,
// not on the raw string, so an unknown value can never outrank a known one.
type Role string

const (
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Level returns the rank used for hierarchical permission checks.
// Unrecognized roles rank 0 and therefore satisfy no requirement.
func (r Role) Level() int {
	switch r {
	case RoleStudent:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r grants the privileges of required.
func (r Role) AtLeast(required Role) bool {
	return r.Level() >= required.Level()
}

func (r Role) Valid() bool { return r.Level() > 0 }

// ParseRole maps a wire string onto the closed Role set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

func ParseAccountStatus(s string) (AccountStatus, error) {
	st := AccountStatus(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash, never the plain credential.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Role      Role
	Status    AccountStatus
	AvatarURL string
	CreatedAt time.Time
	LastLogin *time.Time
}

// UserStats is the aggregate shown on the admin dashboard.
type UserStats struct {
	TotalUsers     int64 `json:"total_users"`
	ActiveUsers    int64 `json:"active_users"`
	InactiveUsers  int64 `json:"inactive_users"`
	SuspendedUsers int64 `json:"suspended_users"`
	Students       int64 `json:"students"`
	Admins         int64 `json:"admins"`
	SuperAdmins    int64 `json:"super_admins"`
}
