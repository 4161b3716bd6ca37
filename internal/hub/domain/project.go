package domain

import "time"

// Project is the membership collaborator's record. Project CRUD itself lives
// outside this service; invitations only need to resolve a project and add
// accepted invitees to its roster.
type Project struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

// ProjectSummary is the public shape of a project embedded in composed views.
type ProjectSummary struct {
	ID   string
	Name string
}

// Summary strips a project down to its display fields.
func (p Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Name: p.Name}
}

type ProjectMember struct {
	ProjectID string
	UserID    string
	Role      string // roster role; invited users always join as "member"
	AddedAt   time.Time
}
