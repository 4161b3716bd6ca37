package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/pkg/slogx"
)

// effectTimeout bounds each individual side effect so a stalled SMTP server
// can't pin goroutines forever.
const effectTimeout = 10 * time.Second

// Mailer delivers the invitation email. The SMTP implementation lives in
// internal/hub/mail; tests substitute a recorder.
type Mailer interface {
	SendInvitationEmail(ctx context.Context, inv domain.Invitation, token string, inviterName string) error
}

// Notifier persists and pushes an in-app notification. Implemented by
// NotifyService; declared here so the runner doesn't depend on it directly.
type Notifier interface {
	Notify(ctx context.Context, event domain.NotificationEvent) (domain.Notification, error)
}

// EffectRunner executes the side effects a lifecycle transition emits after
// its state change has committed.
type EffectRunner interface {
	Run(ctx context.Context, effects []domain.Effect)
}

// Effects is the production runner: email and notifications, each attempted
// independently, each failure logged and swallowed. Effects never fail the
// operation that emitted them.
type Effects struct {
	Mailer   Mailer
	Notifier Notifier
}

func (e *Effects) Run(ctx context.Context, effects []domain.Effect) {
	log := slogx.FromContext(ctx)

	// Detach from the request's cancellation; the primary operation has
	// already committed and its response may be written before we finish.
	base := context.WithoutCancel(ctx)

	for _, effect := range effects {
		switch eff := effect.(type) {
		case domain.EmailInvitation:
			e.runEmail(base, log, eff)
		case domain.Notify:
			e.runNotify(base, log, eff)
		default:
			log.Error("unknown effect type", slog.Any("effect", effect))
		}
	}
}

func (e *Effects) runEmail(ctx context.Context, log *slog.Logger, eff domain.EmailInvitation) {
	if e.Mailer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, effectTimeout)
	defer cancel()

	if err := e.Mailer.SendInvitationEmail(ctx, eff.Invitation, eff.Token, eff.InviterName); err != nil {
		log.Error("failed to send invitation email",
			slog.String("invitation_id", eff.Invitation.ID),
			slog.Any("error", err),
		)
		return
	}

	log.Debug("invitation email sent", slog.String("invitation_id", eff.Invitation.ID))
}

func (e *Effects) runNotify(ctx context.Context, log *slog.Logger, eff domain.Notify) {
	if e.Notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, effectTimeout)
	defer cancel()

	if _, err := e.Notifier.Notify(ctx, eff.Event); err != nil {
		log.Error("failed to create notification",
			slog.String("recipient", eff.Event.UserID),
			slog.String("type", string(eff.Event.Type)),
			slog.Any("error", err),
		)
		return
	}

	log.Debug("notification created",
		slog.String("recipient", eff.Event.UserID),
		slog.String("type", string(eff.Event.Type)),
	)
}
