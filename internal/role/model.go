package role

import "time"

// Role names a set of permissions. Identities reference a role by id; the
// reference is weak, so a role may be deleted while identities still point
// at it.
type Role struct {
	ID          string
	Name        string
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasAll reports whether the role grants every permission in required.
func (r Role) HasAll(required []Permission) bool {
	granted := make(map[Permission]bool, len(r.Permissions))
	for _, p := range r.Permissions {
		granted[p] = true
	}
	for _, p := range required {
		if !granted[p] {
			return false
		}
	}
	return true
}
