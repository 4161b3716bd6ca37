package hubsdk

import "time"

// ============================================================================
// Shared resource shapes
// ============================================================================

// UserProfile is the public shape of an account.
type UserProfile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserSummary is the minimal user shape embedded in composed views.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectSummary is the minimal project shape embedded in composed views.
type ProjectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InvitationRecord is the management view of an invitation. The capability
// token never appears here; it is returned exactly once, at creation and
// resend, in InvitationTokenResponse.
type InvitationRecord struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Department string     `json:"department,omitempty"`
	Message    string     `json:"message,omitempty"`
	InvitedBy  string     `json:"invited_by"`
	ProjectID  string     `json:"project_id,omitempty"`
	Status     string     `json:"status"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy string     `json:"accepted_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NotificationRecord is a single in-app notification.
type NotificationRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority"`
	RelatedID   string     `json:"related_id,omitempty"`
	RelatedType string     `json:"related_type,omitempty"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BootstrapRequest struct {
	SetupToken string `json:"setup_token"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// SessionResponse is returned by login, bootstrap and invitation acceptance:
// the signed session token plus the account it belongs to.
type SessionResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// ============================================================================
// Invitations
// ============================================================================

type CreateInvitationRequest struct {
	Email string `json:"email"`
	// Role defaults to member when omitted.
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Message    string `json:"message,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
}

// InvitationTokenResponse is returned by create and resend: the record plus
// the raw token and the shareable acceptance link. This is the only place the
// token ever appears.
type InvitationTokenResponse struct {
	Invitation InvitationRecord `json:"invitation"`
	Token      string           `json:"token"`
	AcceptURL  string           `json:"accept_url"`
}

// InvitationLookupResponse is the public token-resolution view shown on the
// acceptance page.
type InvitationLookupResponse struct {
	Invitation InvitationRecord `json:"invitation"`
	Inviter    UserSummary      `json:"inviter"`
	Project    *ProjectSummary  `json:"project,omitempty"`
}

type AcceptInvitationRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type InvitationListResponse struct {
	Invitations []InvitationRecord `json:"invitations"`
	Total       int                `json:"total"`
}

// ============================================================================
// Notifications
// ============================================================================

type NotificationListResponse struct {
	Notifications []NotificationRecord `json:"notifications"`
	Total         int                  `json:"total"`
	Unread        int                  `json:"unread"`
}

// ============================================================================
// System
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Uptime  string        `json:"uptime"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
