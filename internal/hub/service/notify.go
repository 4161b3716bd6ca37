package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/live"
	"github.com/projecthub/projecthub/internal/hub/store"
	"github.com/projecthub/projecthub/pkg/idx"
	"github.com/projecthub/projecthub/pkg/slogx"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotifyService owns notification persistence and the live push channel.
// Notifications are always created server-side from domain events; clients
// can only read, mark and delete their own.
type NotifyService struct {
	Store store.Store
	Live  *live.Hub

	// Now is the clock; tests override it.
	Now func() time.Time
}

func (s *NotifyService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Notify persists a notification and then pushes it to the recipient's live
// stream. The push is best-effort: persistence is the source of truth.
func (s *NotifyService) Notify(ctx context.Context, event domain.NotificationEvent) (domain.Notification, error) {
	log := slogx.FromContext(ctx)

	if event.UserID == "" || event.Title == "" || event.Type == "" {
		return domain.Notification{}, errors.New("notify: missing recipient, title or type")
	}
	if event.Priority == "" {
		event.Priority = domain.PriorityMedium
	}

	n := domain.Notification{
		ID:          idx.New().String(),
		UserID:      event.UserID,
		Title:       event.Title,
		Message:     event.Message,
		Type:        event.Type,
		Priority:    event.Priority,
		RelatedID:   event.RelatedID,
		RelatedType: event.RelatedType,
		CreatedAt:   s.now(),
	}

	if err := s.Store.Notifications().Create(ctx, n); err != nil {
		log.Error("failed to persist notification",
			slog.String("recipient", n.UserID),
			slog.Any("error", err),
		)
		return domain.Notification{}, err
	}

	s.Live.Publish(n.UserID, live.Event{
		ID:          n.ID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		Priority:    string(n.Priority),
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	})

	return n, nil
}

// NotificationPage is a page of a user's notifications plus the counters the
// client renders badges from.
type NotificationPage struct {
	Items  []domain.Notification
	Total  int
	Unread int
}

// List returns the actor's notifications, newest first.
func (s *NotifyService) List(ctx context.Context, actor Actor, f store.NotificationFilter) (NotificationPage, error) {
	log := slogx.FromContext(ctx)

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	items, total, err := s.Store.Notifications().ListByUser(ctx, actor.ID, f)
	if err != nil {
		log.Error("failed to list notifications", slog.Any("error", err))
		return NotificationPage{}, err
	}

	unread, err := s.Store.Notifications().CountUnread(ctx, actor.ID)
	if err != nil {
		log.Error("failed to count unread notifications", slog.Any("error", err))
		return NotificationPage{}, err
	}

	return NotificationPage{Items: items, Total: total, Unread: unread}, nil
}

// MarkRead marks one of the actor's notifications as read. Marking an
// already-read notification is a no-op success.
func (s *NotifyService) MarkRead(ctx context.Context, actor Actor, id string) error {
	err := s.Store.Notifications().MarkRead(ctx, id, actor.ID, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

// MarkAllRead marks every unread notification of the actor as read.
func (s *NotifyService) MarkAllRead(ctx context.Context, actor Actor) error {
	return s.Store.Notifications().MarkAllRead(ctx, actor.ID, s.now())
}

// Delete removes one of the actor's notifications.
func (s *NotifyService) Delete(ctx context.Context, actor Actor, id string) error {
	err := s.Store.Notifications().Delete(ctx, id, actor.ID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
