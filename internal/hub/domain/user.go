package domain

import "time"

// Account roles, coarsest-grained authorization in the system.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// ValidRole reports whether s is one of the known account roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string // normalized lowercase, unique
	Name         string
	PasswordHash string // argon2id encoded
	Role         string
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the public shape of a user embedded in composed views.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

// Summary strips a user down to the fields safe to show other users.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
