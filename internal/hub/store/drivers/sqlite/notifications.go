package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/store"
)

type notificationsRepo struct {
	q querier
}

const notificationColumns = `id, user_id, title, message, type, priority,
	related_id, related_type, is_read, read_at, created_at`

func (r *notificationsRepo) Create(ctx context.Context, n domain.Notification) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, priority,
			related_id, related_type, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.Priority,
		n.RelatedID, n.RelatedType, n.IsRead, n.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) ListByUser(
	ctx context.Context,
	userID string,
	f store.NotificationFilter,
) ([]domain.Notification, int, error) {
	where := `WHERE user_id = ?`
	args := []any{userID}
	if f.UnreadOnly {
		where += ` AND is_read = 0`
	}

	var total int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)

	rows, err := r.q.QueryContext(ctx, `
		SELECT `+notificationColumns+` FROM notifications `+where+`
		ORDER BY created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var (
			n      domain.Notification
			readAt sql.NullTime
		)
		err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Priority,
			&n.RelatedID, &n.RelatedType, &n.IsRead, &readAt, &n.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		n.ReadAt = mapNullTimePtr(readAt)
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (r *notificationsRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`,
		userID,
	).Scan(&count)
	return count, err
}

func (r *notificationsRepo) MarkRead(ctx context.Context, id, userID string, now time.Time) error {
	// user_id in the predicate scopes the mutation to the owner; a foreign
	// id is indistinguishable from a missing one.
	res, err := r.q.ExecContext(ctx, `
		UPDATE notifications SET is_read = 1, read_at = ?
		WHERE id = ? AND user_id = ? AND is_read = 0`,
		now, id, userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *notificationsRepo) MarkAllRead(ctx context.Context, userID string, now time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE notifications SET is_read = 1, read_at = ?
		WHERE user_id = ? AND is_read = 0`,
		now, userID,
	)
	return err
}

func (r *notificationsRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *notificationsRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notifications WHERE is_read = 1 AND created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
