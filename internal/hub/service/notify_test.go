package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/live"
	"github.com/projecthub/projecthub/internal/hub/store"
	"github.com/projecthub/projecthub/internal/hub/store/drivers/sqlite"
	"github.com/projecthub/projecthub/pkg/idx"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newNotifyFixture(t *testing.T) (*NotifyService, *fakeClock) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := newFakeClock()
	return &NotifyService{Store: st, Live: live.NewHub(), Now: clock.Now}, clock
}

func event(userID string, typ domain.NotificationType, title string) domain.NotificationEvent {
	return domain.NotificationEvent{
		UserID:   userID,
		Title:    title,
		Type:     typ,
		Priority: domain.PriorityMedium,
	}
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	t.Parallel()
	svc, _ := newNotifyFixture(t)
	ctx := context.Background()
	userID := idx.New().String()

	sub, backlog, err := svc.Live.Subscribe(userID)
	require.NoError(t, err)
	require.Empty(t, backlog)
	defer sub.Close()

	n, err := svc.Notify(ctx, event(userID, domain.NotificationTeamAdded, "Welcome"))
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)
	require.False(t, n.IsRead)

	// Persisted.
	page, err := svc.List(ctx, Actor{ID: userID}, store.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, 1, page.Unread)

	// Pushed live.
	pushed := <-sub.Events()
	require.Equal(t, n.ID, pushed.ID)
	require.Equal(t, string(domain.NotificationTeamAdded), pushed.Type)
}

func TestNotifyRejectsIncompleteEvents(t *testing.T) {
	t.Parallel()
	svc, _ := newNotifyFixture(t)
	ctx := context.Background()

	_, err := svc.Notify(ctx, domain.NotificationEvent{Title: "no recipient", Type: domain.NotificationTeamAdded})
	require.Error(t, err)

	_, err = svc.Notify(ctx, domain.NotificationEvent{UserID: "u1", Type: domain.NotificationTeamAdded})
	require.Error(t, err)
}

func TestMarkReadIsOwnerScopedAndIdempotent(t *testing.T) {
	t.Parallel()
	svc, _ := newNotifyFixture(t)
	ctx := context.Background()
	owner := Actor{ID: idx.New().String()}
	other := Actor{ID: idx.New().String()}

	n, err := svc.Notify(ctx, event(owner.ID, domain.NotificationTeamAdded, "Welcome"))
	require.NoError(t, err)

	// Another user can't touch it.
	require.ErrorIs(t, svc.MarkRead(ctx, other, n.ID), ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(ctx, owner, n.ID))

	page, err := svc.List(ctx, owner, store.NotificationFilter{})
	require.NoError(t, err)
	require.True(t, page.Items[0].IsRead)
	require.NotNil(t, page.Items[0].ReadAt)
	require.Equal(t, 0, page.Unread)

	// Marking an already-read notification is a no-op success.
	require.NoError(t, svc.MarkRead(ctx, owner, n.ID))
}

func TestMarkAllRead(t *testing.T) {
	t.Parallel()
	svc, _ := newNotifyFixture(t)
	ctx := context.Background()
	owner := Actor{ID: idx.New().String()}

	for i := 0; i < 3; i++ {
		_, err := svc.Notify(ctx, event(owner.ID, domain.NotificationTaskAssigned, "Task"))
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllRead(ctx, owner))

	page, err := svc.List(ctx, owner, store.NotificationFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Equal(t, 0, page.Unread)
}

func TestListUnreadOnlyFilter(t *testing.T) {
	t.Parallel()
	svc, _ := newNotifyFixture(t)
	ctx := context.Background()
	owner := Actor{ID: idx.New().String()}

	first, err := svc.Notify(ctx, event(owner.ID, domain.NotificationTaskAssigned, "First"))
	require.NoError(t, err)
	_, err = svc.Notify(ctx, event(owner.ID, domain.NotificationTaskCompleted, "Second"))
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, owner, first.ID))

	page, err := svc.List(ctx, owner, store.NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Second", page.Items[0].Title)
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	t.Parallel()
	svc, _ := newNotifyFixture(t)
	ctx := context.Background()
	owner := Actor{ID: idx.New().String()}
	other := Actor{ID: idx.New().String()}

	n, err := svc.Notify(ctx, event(owner.ID, domain.NotificationCommentAdded, "Comment"))
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, other, n.ID), ErrNotificationNotFound)
	require.NoError(t, svc.Delete(ctx, owner, n.ID))
	require.ErrorIs(t, svc.Delete(ctx, owner, n.ID), ErrNotificationNotFound)
}

func TestHousekeepingPrunesOldReadNotifications(t *testing.T) {
	t.Parallel()
	svc, clock := newNotifyFixture(t)
	ctx := context.Background()
	owner := Actor{ID: idx.New().String()}

	old, err := svc.Notify(ctx, event(owner.ID, domain.NotificationTaskCompleted, "Old"))
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(ctx, owner, old.ID))

	clock.Advance(DefaultNotificationRetention + 24*time.Hour)

	// Recent read and old unread notifications must both survive.
	recent, err := svc.Notify(ctx, event(owner.ID, domain.NotificationTaskAssigned, "Recent"))
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(ctx, owner, recent.ID))

	hk := NewHousekeepingService(svc.Store, discardLogger(), time.Hour)
	hk.Now = clock.Now
	hk.Sweep(ctx)

	page, err := svc.List(ctx, owner, store.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Recent", page.Items[0].Title)
}
