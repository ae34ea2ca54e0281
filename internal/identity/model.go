package identity

import "time"

// User is a registered account. Email is stored lowercased and is unique.
// RoleID is a weak reference into the role catalogue: the role may have been
// deleted since assignment, in which case the account effectively has no
// role. At most one account carries IsSuperAdmin; the check happens before
// insert rather than through a uniqueness constraint.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	RoleID       string
	IsSuperAdmin bool
	IsActive     bool
	CreatedAt    time.Time
}

// Registration request structure.
type Registration struct {
	Email    string
	Password string
	Name     string
}
