package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/store"
	"github.com/projecthub/projecthub/pkg/cryptox"
	"github.com/projecthub/projecthub/pkg/idx"
	"github.com/projecthub/projecthub/pkg/slogx"
)

var (
	ErrInvalidInvitationRequest    = errors.New("invalid invitation request")
	ErrDuplicateActiveInvitation   = errors.New("an active invitation already exists for this email")
	ErrUserAlreadyExists           = errors.New("a user with this email already exists")
	ErrInvitationNotFound          = errors.New("invitation not found or expired")
	ErrInvalidInvitationTransition = errors.New("invitation is no longer pending")
	ErrForbidden                   = errors.New("not allowed")
	ErrProjectNotFound             = errors.New("project not found")
)

// InviteService owns the invitation lifecycle: mint, lookup, accept, decline,
// cancel, resend, list. Transitions commit first; email and notification side
// effects run afterwards through the EffectRunner and never fail the
// operation.
type InviteService struct {
	Store    store.Store
	Accounts *AccountService
	Effects  EffectRunner

	// InvitationTTL defaults to domain.DefaultInvitationTTL when zero.
	InvitationTTL time.Duration

	// Now is the clock; tests override it to exercise expiry.
	Now func() time.Time
}

func (s *InviteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InviteService) ttl() time.Duration {
	if s.InvitationTTL > 0 {
		return s.InvitationTTL
	}
	return domain.DefaultInvitationTTL
}

func (s *InviteService) runEffects(ctx context.Context, effects []domain.Effect) {
	if s.Effects != nil && len(effects) > 0 {
		s.Effects.Run(ctx, effects)
	}
}

// InviteParams is the caller's input for minting an invitation.
type InviteParams struct {
	Email      string
	Role       string // empty means member
	Department string
	Message    string
	ProjectID  string
}

// InviteResult is the outcome of minting: the stored record plus the raw
// token, which exists only in this response and in the invitee's email.
type InviteResult struct {
	Invitation domain.Invitation
	Token      string
}

// Invite mints a pending invitation for an email address. At most one active
// invitation may exist per address; the partial unique index enforces that
// under concurrency, so two racing creates resolve to exactly one winner.
func (s *InviteService) Invite(ctx context.Context, actor Actor, params InviteParams) (InviteResult, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	// 1. Validate input.
	email := NormalizeEmail(params.Email)
	if email == "" {
		return InviteResult{}, fmt.Errorf("%w: email is required", ErrInvalidInvitationRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return InviteResult{}, fmt.Errorf("%w: malformed email", ErrInvalidInvitationRequest)
	}
	role := params.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !domain.ValidRole(role) {
		return InviteResult{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInvitationRequest, role)
	}
	if len(params.Message) > domain.MaxInvitationMessage {
		return InviteResult{}, fmt.Errorf("%w: message exceeds %d characters",
			ErrInvalidInvitationRequest, domain.MaxInvitationMessage)
	}

	// 2. Refuse addresses that already hold accounts.
	_, err := s.Store.Users().GetByEmail(ctx, email)
	if err == nil {
		log.Warn("invitation attempted for existing user", slog.String("email", email))
		return InviteResult{}, ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check user existence", slog.Any("error", err))
		return InviteResult{}, err
	}

	// 3. Fail fast on an existing active invitation. The partial unique
	// index remains the authoritative guard; this just avoids minting a
	// token for a request that is going to lose.
	if _, err := s.Store.Invitations().FindActiveByEmail(ctx, email, now); err == nil {
		return InviteResult{}, ErrDuplicateActiveInvitation
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check active invitations", slog.Any("error", err))
		return InviteResult{}, err
	}

	// 4. Resolve the target project when one is named.
	if params.ProjectID != "" {
		if _, err := s.Store.Projects().GetByID(ctx, params.ProjectID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return InviteResult{}, ErrProjectNotFound
			}
			log.Error("failed to fetch project", slog.Any("error", err))
			return InviteResult{}, err
		}
	}

	// 5. Mint the capability token; only its fingerprint is stored.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return InviteResult{}, err
	}

	inv := domain.Invitation{
		ID:         idx.New().String(),
		Email:      email,
		Role:       role,
		Department: params.Department,
		Message:    params.Message,
		InvitedBy:  actor.ID,
		ProjectID:  params.ProjectID,
		Status:     domain.InvitationPending,
		TokenHash:  cryptox.FingerprintToken(token),
		ExpiresAt:  now.Add(s.ttl()),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// 6. Insert atomically with the stale-row sweep so a time-expired
	// pending invitation for the same address never blocks the new one.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().ExpireStalePending(ctx, email, now); err != nil {
			return err
		}
		return tx.Invitations().Create(ctx, inv)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("duplicate active invitation refused", slog.String("email", email))
			return InviteResult{}, ErrDuplicateActiveInvitation
		}
		log.Error("failed to create invitation", slog.Any("error", err))
		return InviteResult{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("role", inv.Role),
		slog.String("invited_by", actor.ID),
	)

	// 7. Email the invitee, post-commit.
	s.runEffects(ctx, []domain.Effect{
		domain.EmailInvitation{
			Invitation:  inv,
			Token:       token,
			InviterName: s.inviterName(ctx, actor.ID),
		},
	})

	return InviteResult{Invitation: inv, Token: token}, nil
}

// Lookup resolves a raw invitation token to its composed public view. Any
// token that isn't pending and unexpired resolves to ErrInvitationNotFound;
// the caller cannot distinguish unknown, used and expired.
func (s *InviteService) Lookup(ctx context.Context, token string) (domain.InvitationView, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.resolveActiveToken(ctx, token)
	if err != nil {
		return domain.InvitationView{}, err
	}

	view := domain.InvitationView{Invitation: inv}

	inviter, err := s.Store.Users().GetByID(ctx, inv.InvitedBy)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to fetch inviter", slog.Any("error", err))
		return domain.InvitationView{}, err
	}
	if err == nil {
		view.Inviter = inviter.Summary()
	}

	if inv.ProjectID != "" {
		project, err := s.Store.Projects().GetByID(ctx, inv.ProjectID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to fetch project", slog.Any("error", err))
			return domain.InvitationView{}, err
		}
		if err == nil {
			summary := project.Summary()
			view.Project = &summary
		}
	}

	return view, nil
}

// AcceptParams is the invitee's registration input.
type AcceptParams struct {
	Name     string
	Password string
}

// AcceptResult is the outcome of acceptance: the new account plus a session
// token so the client is signed in immediately.
type AcceptResult struct {
	User         domain.User
	SessionToken string
}

// Accept redeems a token: it creates the account with the invitation's role,
// marks the invitation accepted, and joins the named project's roster, all in
// one transaction. The inviter is notified afterwards.
func (s *InviteService) Accept(ctx context.Context, token string, params AcceptParams) (AcceptResult, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	if params.Name == "" || len(params.Password) < 8 {
		return AcceptResult{}, fmt.Errorf("%w: name and a password of 8+ characters are required",
			ErrInvalidInvitationRequest)
	}

	inv, err := s.resolveActiveToken(ctx, token)
	if err != nil {
		return AcceptResult{}, err
	}

	passwordHash, err := cryptox.HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return AcceptResult{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        inv.Email,
		Name:         params.Name,
		PasswordHash: passwordHash,
		Role:         inv.Role,
		Department:   inv.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		// The pending-only guard on MarkAccepted makes a concurrent accept
		// or cancel lose cleanly instead of double-redeeming.
		if err := tx.Invitations().MarkAccepted(ctx, inv.ID, user.ID, now); err != nil {
			return err
		}
		if inv.ProjectID != "" {
			err := tx.Projects().AddMember(ctx, domain.ProjectMember{
				ProjectID: inv.ProjectID,
				UserID:    user.ID,
				Role:      domain.RoleMember,
				AddedAt:   now,
			})
			if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			log.Warn("acceptance raced an account creation", slog.String("invitation_id", inv.ID))
			return AcceptResult{}, ErrUserAlreadyExists
		case errors.Is(err, store.ErrNotFound):
			// Lost the race on the pending-only transition.
			return AcceptResult{}, ErrInvitationNotFound
		}
		log.Error("failed to accept invitation", slog.Any("error", err))
		return AcceptResult{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", user.ID),
	)

	s.runEffects(ctx, []domain.Effect{
		domain.Notify{Event: domain.NotificationEvent{
			UserID:      inv.InvitedBy,
			Title:       "Invitation accepted",
			Message:     fmt.Sprintf("%s joined the team", user.Name),
			Type:        domain.NotificationTeamAdded,
			Priority:    domain.PriorityMedium,
			RelatedID:   user.ID,
			RelatedType: domain.RelatedUser,
		}},
	})

	session, err := s.Accounts.IssueSession(user)
	if err != nil {
		// The account exists; failing the whole call now would strand it.
		log.Error("failed to sign session after acceptance", slog.Any("error", err))
		return AcceptResult{User: user}, nil
	}

	return AcceptResult{User: user, SessionToken: session}, nil
}

// Decline marks a pending invitation declined and notifies the inviter.
// Declined is terminal.
func (s *InviteService) Decline(ctx context.Context, token string) error {
	log := slogx.FromContext(ctx)
	now := s.now()

	inv, err := s.resolveActiveToken(ctx, token)
	if err != nil {
		return err
	}

	if err := s.Store.Invitations().MarkDeclined(ctx, inv.ID, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		log.Error("failed to decline invitation", slog.Any("error", err))
		return err
	}

	log.Info("invitation declined", slog.String("invitation_id", inv.ID))

	s.runEffects(ctx, []domain.Effect{
		domain.Notify{Event: domain.NotificationEvent{
			UserID:      inv.InvitedBy,
			Title:       "Invitation declined",
			Message:     fmt.Sprintf("%s declined your invitation", inv.Email),
			Type:        domain.NotificationInvitationDeclined,
			Priority:    domain.PriorityLow,
			RelatedID:   inv.ID,
			RelatedType: domain.RelatedInvitation,
		}},
	})

	return nil
}

// Cancel withdraws a pending invitation. Only an admin or the original
// inviter may cancel; the record is stored as expired.
func (s *InviteService) Cancel(ctx context.Context, actor Actor, id string) error {
	log := slogx.FromContext(ctx)
	now := s.now()

	inv, err := s.Store.Invitations().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return err
	}

	if actor.Role != domain.RoleAdmin && inv.InvitedBy != actor.ID {
		log.Warn("cancel refused",
			slog.String("invitation_id", id),
			slog.String("actor_id", actor.ID),
		)
		return ErrForbidden
	}

	if err := s.Store.Invitations().MarkExpired(ctx, id, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidInvitationTransition
		}
		log.Error("failed to cancel invitation", slog.Any("error", err))
		return err
	}

	log.Info("invitation cancelled",
		slog.String("invitation_id", id),
		slog.String("actor_id", actor.ID),
	)
	return nil
}

// Resend reactivates an invitation with a fresh token and expiry window and
// emails the invitee again. Allowed only while the invitation is effectively
// pending or expired; accepted and declined records stay terminal. The old
// token stops resolving the moment the new fingerprint is stored.
func (s *InviteService) Resend(ctx context.Context, actor Actor, id string) (InviteResult, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	inv, err := s.Store.Invitations().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InviteResult{}, ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return InviteResult{}, err
	}

	if actor.Role != domain.RoleAdmin && inv.InvitedBy != actor.ID {
		return InviteResult{}, ErrForbidden
	}

	switch inv.EffectiveStatus(now) {
	case domain.InvitationPending, domain.InvitationExpired:
	default:
		return InviteResult{}, ErrInvalidInvitationTransition
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return InviteResult{}, err
	}

	fingerprint := cryptox.FingerprintToken(token)
	expiresAt := now.Add(s.ttl())

	if err := s.Store.Invitations().Reissue(ctx, id, fingerprint, expiresAt, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InviteResult{}, ErrInvalidInvitationTransition
		}
		log.Error("failed to reissue invitation", slog.Any("error", err))
		return InviteResult{}, err
	}

	inv.Status = domain.InvitationPending
	inv.TokenHash = fingerprint
	inv.ExpiresAt = expiresAt
	inv.UpdatedAt = now

	log.Info("invitation resent",
		slog.String("invitation_id", id),
		slog.String("actor_id", actor.ID),
	)

	s.runEffects(ctx, []domain.Effect{
		domain.EmailInvitation{
			Invitation:  inv,
			Token:       token,
			InviterName: s.inviterName(ctx, inv.InvitedBy),
		},
	})

	return InviteResult{Invitation: inv, Token: token}, nil
}

// InvitationPage is a page of invitations with derived statuses applied.
type InvitationPage struct {
	Items []domain.Invitation
	Total int
}

// List returns invitations for the management view, newest first, with
// effective statuses: stored-pending rows past expiry read as expired even
// before the sweep rewrites them.
func (s *InviteService) List(ctx context.Context, f store.InvitationFilter) (InvitationPage, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	items, total, err := s.Store.Invitations().List(ctx, f)
	if err != nil {
		log.Error("failed to list invitations", slog.Any("error", err))
		return InvitationPage{}, err
	}

	for i := range items {
		items[i].Status = items[i].EffectiveStatus(now)
	}

	return InvitationPage{Items: items, Total: total}, nil
}

// resolveActiveToken fingerprints a raw token and resolves it to a pending,
// unexpired invitation; everything else is ErrInvitationNotFound.
func (s *InviteService) resolveActiveToken(ctx context.Context, token string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Invitation{}, ErrInvitationNotFound
	}

	fingerprint := cryptox.FingerprintToken(token)
	inv, err := s.Store.Invitations().GetActiveByTokenHash(ctx, fingerprint, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invalid or expired invitation token presented")
			return domain.Invitation{}, ErrInvitationNotFound
		}
		log.Error("failed to resolve invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	return inv, nil
}

// inviterName resolves a display name for the invitation email; falls back to
// a generic label if the inviter can't be loaded.
func (s *InviteService) inviterName(ctx context.Context, inviterID string) string {
	user, err := s.Store.Users().GetByID(ctx, inviterID)
	if err != nil {
		return "A teammate"
	}
	return user.Name
}
