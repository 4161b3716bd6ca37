package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/store"
	"github.com/projecthub/projecthub/pkg/cryptox"
	"github.com/projecthub/projecthub/pkg/idx"
	"github.com/projecthub/projecthub/pkg/jwtx"
	"github.com/projecthub/projecthub/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBootstrapClosed    = errors.New("bootstrap is not available")
)

// Actor identifies who is performing an operation. Handlers build it from the
// verified session token; services never read identity from context.
type Actor struct {
	ID   string
	Role string
}

// AccountService issues sessions and handles the two ways an account comes to
// exist outside invitation acceptance: first-run bootstrap and login.
type AccountService struct {
	Store    store.Store
	Sessions jwtx.Signer

	// Issuer is the "iss" claim stamped into session tokens.
	Issuer string

	// SessionTTL defaults to jwtx.DefaultSessionTTL when zero.
	SessionTTL time.Duration

	// BootstrapToken gates first-admin creation. Empty disables bootstrap.
	BootstrapToken string

	// Now is the clock; tests override it.
	Now func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AccountService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return jwtx.DefaultSessionTTL
}

// IssueSession mints a signed session token for a user.
func (s *AccountService) IssueSession(user domain.User) (string, error) {
	claims := jwtx.NewSessionClaims(
		user.ID, user.Email, user.Name, user.Role,
		s.Issuer, s.sessionTTL(), s.now(),
	)
	return s.Sessions.Sign(claims)
}

// Login verifies credentials and returns the user plus a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, "", ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a verification anyway so the timing doesn't leak
			// whether the account exists.
			_ = cryptox.VerifyPassword(password, dummyPasswordHash)
			return domain.User{}, "", ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", slog.Any("error", err))
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("failed login attempt", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.IssueSession(user)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}

// Bootstrap creates the first admin account. It only works while the users
// table is empty and the caller presents the configured bootstrap token; all
// later accounts arrive through invitations.
func (s *AccountService) Bootstrap(ctx context.Context, token, name, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	if s.BootstrapToken == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(s.BootstrapToken)) != 1 {
		log.Warn("bootstrap attempted with invalid token")
		return domain.User{}, "", ErrBootstrapClosed
	}

	email = NormalizeEmail(email)
	if name == "" || email == "" || len(password) < 8 {
		return domain.User{}, "", ErrInvalidInvitationRequest
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, "", ErrInvalidInvitationRequest
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		log.Error("failed to check bootstrap gate", slog.Any("error", err))
		return domain.User{}, "", err
	}
	if !empty {
		log.Warn("bootstrap attempted after first user exists")
		return domain.User{}, "", ErrBootstrapClosed
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	now := s.now()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Re-check inside the transaction so two racing bootstraps can't
		// both create an admin.
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapClosed
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		if !errors.Is(err, ErrBootstrapClosed) {
			log.Error("failed to create bootstrap admin", slog.Any("error", err))
		}
		return domain.User{}, "", err
	}

	session, err := s.IssueSession(user)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("bootstrap admin created", slog.String("user_id", user.ID))
	return user, session, nil
}

// NormalizeEmail lowercases and trims an address; all storage and lookups go
// through this so case never splits an identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// dummyPasswordHash is a valid Argon2id encoding of a random throwaway
// password, used to equalize login timing for unknown accounts.
const dummyPasswordHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$L9sY1bYcvVYZY0O4hcbX2GlsSpoBGxZY4D7q1rzNQXo"
