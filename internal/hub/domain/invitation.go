package domain

import "time"

// InvitationStatus is the stored lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	// InvitationExpired also represents cancellation; a cancelled invitation
	// is stored as expired.
	InvitationExpired InvitationStatus = "expired"
)

const (
	// DefaultInvitationTTL is how long a freshly minted or resent
	// invitation stays redeemable.
	DefaultInvitationTTL = 7 * 24 * time.Hour

	// MaxInvitationMessage bounds the personal note shown to the invitee.
	MaxInvitationMessage = 500
)

type Invitation struct {
	ID         string
	Email      string // normalized lowercase
	Role       string // role the new account will receive
	Department string
	Message    string // optional personal note
	InvitedBy  string
	ProjectID  string // optional; acceptance also joins this project
	Status     InvitationStatus
	TokenHash  string // SHA-256 fingerprint; raw token never stored
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	AcceptedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectiveStatus derives the status every read path must report: a pending
// invitation whose expiry has passed is expired even before the background
// sweep rewrites the stored row.
func (i Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Status == InvitationPending && i.ExpiresAt.Before(now) {
		return InvitationExpired
	}
	return i.Status
}

// Terminal reports whether the stored status permits no further transition.
// Resend is the single sanctioned exception, reactivating expired records.
func (s InvitationStatus) Terminal() bool {
	return s != InvitationPending
}

// InvitationView is the composed read model returned by token lookups:
// the invitation plus summaries of the inviter and, when set, the project.
// Joins are explicit; nothing is lazily loaded.
type InvitationView struct {
	Invitation Invitation
	Inviter    UserSummary
	Project    *ProjectSummary
}
