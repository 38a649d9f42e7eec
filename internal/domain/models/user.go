package models

import "time"

// User is a durable identity. Email is immutable after creation; the name
// fields are not. Every user references exactly one role.
type User struct {
	UUID        string    `json:"uuid"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	RoleUUID    string    `json:"roleUuid"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Role is a named bundle of permission strings. The three fixed roles
// (admin, user, guest) are seeded at initialization and never mutated by
// request handling.
type Role struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasPermission reports whether the role's bundle contains the permission.
func (r *Role) HasPermission(permission string) bool {
	for _, p := range r.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
