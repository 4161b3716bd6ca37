package store

import (
	"context"
	"errors"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	Invitations() Invitations
	Notifications() Notifications
	Projects() Projects

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (e.g. accept = create user + mark invitation + join roster).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByEmail returns a user by normalized email; used to refuse
	// invitations to addresses that already hold accounts.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, u domain.User) error

	// IsEmpty returns true if there are no users (bootstrap gate).
	IsEmpty(ctx context.Context) (bool, error)
}

// InvitationFilter narrows and pages invitation listings.
type InvitationFilter struct {
	// Status filters on the stored status; empty means all.
	Status domain.InvitationStatus
	Limit  int
	Offset int
}

type Invitations interface {
	// Create inserts a pending invitation. The partial unique index on
	// email makes two concurrent creates for the same address race on the
	// insert, not on a read-then-write; the loser gets ErrAlreadyExists.
	Create(ctx context.Context, inv domain.Invitation) error

	// GetByID returns an invitation regardless of status.
	GetByID(ctx context.Context, id string) (domain.Invitation, error)

	// FindActiveByEmail returns the pending, unexpired invitation for an
	// email, or ErrNotFound.
	FindActiveByEmail(ctx context.Context, email string, now time.Time) (domain.Invitation, error)

	// GetActiveByTokenHash resolves a token fingerprint only while the
	// invitation is pending and unexpired; expired or used tokens behave
	// as not found.
	GetActiveByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Invitation, error)

	// ExpireStalePending flips this email's time-expired pending rows to
	// expired. Run inside the create transaction so a stale row never
	// trips the active-per-email index.
	ExpireStalePending(ctx context.Context, email string, now time.Time) error

	// MarkAccepted, MarkDeclined and MarkExpired are terminal-guarded
	// whole-record transitions: they only match rows still pending and
	// report ErrNotFound otherwise.
	MarkAccepted(ctx context.Context, id, acceptedBy string, now time.Time) error
	MarkDeclined(ctx context.Context, id string, now time.Time) error
	MarkExpired(ctx context.Context, id string, now time.Time) error

	// Reissue gives the invitation a fresh token and expiry and forces the
	// status back to pending. Allowed from pending or expired only; this
	// is the sanctioned exception to the terminal-state rule.
	Reissue(ctx context.Context, id, tokenHash string, expiresAt, now time.Time) error

	// SweepExpired batch-updates all time-expired pending invitations to
	// expired. Maintenance only; every read path already derives expiry.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)

	// List returns a page of invitations (newest first) and the total
	// count for the filter.
	List(ctx context.Context, f InvitationFilter) ([]domain.Invitation, int, error)
}

// NotificationFilter narrows and pages notification listings.
type NotificationFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

type Notifications interface {
	// Create inserts a notification for its recipient.
	Create(ctx context.Context, n domain.Notification) error

	// ListByUser returns a page of the user's notifications (newest
	// first) and the total count for the filter.
	ListByUser(ctx context.Context, userID string, f NotificationFilter) ([]domain.Notification, int, error)

	// CountUnread returns the user's unread notification count.
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead flips is_read for a single notification, scoped to the
	// owning user; ErrNotFound covers both absence and foreign ownership.
	MarkRead(ctx context.Context, id, userID string, now time.Time) error

	// MarkAllRead flips is_read on all of the user's unread notifications.
	MarkAllRead(ctx context.Context, userID string, now time.Time) error

	// Delete removes a notification, scoped to the owning user.
	Delete(ctx context.Context, id, userID string) error

	// DeleteReadBefore removes read notifications older than the cutoff
	// (housekeeping).
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Projects interface {
	// Create inserts a project (used by seeding and tests; project CRUD
	// proper lives outside this service).
	Create(ctx context.Context, p domain.Project) error

	// GetByID resolves a project for invitation validation and composed
	// lookup views.
	GetByID(ctx context.Context, id string) (domain.Project, error)

	// AddMember inserts a roster row; ErrAlreadyExists when the user is
	// already on the roster.
	AddMember(ctx context.Context, m domain.ProjectMember) error

	// ListMembers returns the project's roster.
	ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
}
