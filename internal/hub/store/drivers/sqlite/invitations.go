package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/store"
)

type invitationsRepo struct {
	q querier
}

const invitationColumns = `id, email, role, department, message, invited_by, project_id,
	status, token_hash, expires_at, accepted_at, accepted_by, created_at, updated_at`

func (r *invitationsRepo) Create(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invitations (id, email, role, department, message, invited_by, project_id,
			status, token_hash, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, inv.Role, inv.Department, inv.Message, inv.InvitedBy,
		mapStringNull(inv.ProjectID), inv.Status, inv.TokenHash, inv.ExpiresAt,
		inv.CreatedAt, inv.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return scanInvitation(row)
}

func (r *invitationsRepo) FindActiveByEmail(
	ctx context.Context,
	email string,
	now time.Time,
) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE email = ? AND status = 'pending' AND expires_at >= ?`,
		email, now,
	)
	return scanInvitation(row)
}

func (r *invitationsRepo) GetActiveByTokenHash(
	ctx context.Context,
	hash string,
	now time.Time,
) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE token_hash = ? AND status = 'pending' AND expires_at >= ?`,
		hash, now,
	)
	return scanInvitation(row)
}

func (r *invitationsRepo) ExpireStalePending(ctx context.Context, email string, now time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE invitations SET status = 'expired', updated_at = ?
		WHERE email = ? AND status = 'pending' AND expires_at < ?`,
		now, email, now,
	)
	return err
}

func (r *invitationsRepo) MarkAccepted(ctx context.Context, id, acceptedBy string, now time.Time) error {
	return r.transition(ctx, `
		UPDATE invitations
		SET status = 'accepted', accepted_at = ?, accepted_by = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		now, acceptedBy, now, id,
	)
}

func (r *invitationsRepo) MarkDeclined(ctx context.Context, id string, now time.Time) error {
	return r.transition(ctx, `
		UPDATE invitations SET status = 'declined', updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		now, id,
	)
}

func (r *invitationsRepo) MarkExpired(ctx context.Context, id string, now time.Time) error {
	return r.transition(ctx, `
		UPDATE invitations SET status = 'expired', updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		now, id,
	)
}

func (r *invitationsRepo) Reissue(ctx context.Context, id, tokenHash string, expiresAt, now time.Time) error {
	// The one transition allowed to leave a non-pending state: expired
	// (including cancelled) invitations reactivate with a fresh token.
	return r.transition(ctx, `
		UPDATE invitations
		SET status = 'pending', token_hash = ?, expires_at = ?, updated_at = ?
		WHERE id = ? AND status IN ('pending', 'expired')`,
		tokenHash, expiresAt, now, id,
	)
}

// transition runs a terminal-guarded whole-record update; zero affected
// rows means the record was absent or already in a terminal state.
func (r *invitationsRepo) transition(ctx context.Context, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return mapConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invitations SET status = 'expired', updated_at = ?
		WHERE status = 'pending' AND expires_at < ?`,
		now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *invitationsRepo) List(
	ctx context.Context,
	f store.InvitationFilter,
) ([]domain.Invitation, int, error) {
	where := ``
	args := []any{}
	if f.Status != "" {
		where = `WHERE status = ?`
		args = append(args, f.Status)
	}

	var total int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invitations `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)

	rows, err := r.q.QueryContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations `+where+`
		ORDER BY created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitationRows(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, rows.Err()
}

func scanInvitation(row *sql.Row) (domain.Invitation, error) {
	var (
		inv        domain.Invitation
		projectID  sql.NullString
		acceptedAt sql.NullTime
		acceptedBy sql.NullString
	)
	err := row.Scan(
		&inv.ID, &inv.Email, &inv.Role, &inv.Department, &inv.Message,
		&inv.InvitedBy, &projectID, &inv.Status, &inv.TokenHash,
		&inv.ExpiresAt, &acceptedAt, &acceptedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.ProjectID = mapNullString(projectID)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.AcceptedBy = mapNullString(acceptedBy)
	return inv, nil
}

func scanInvitationRows(rows *sql.Rows) (domain.Invitation, error) {
	var (
		inv        domain.Invitation
		projectID  sql.NullString
		acceptedAt sql.NullTime
		acceptedBy sql.NullString
	)
	err := rows.Scan(
		&inv.ID, &inv.Email, &inv.Role, &inv.Department, &inv.Message,
		&inv.InvitedBy, &projectID, &inv.Status, &inv.TokenHash,
		&inv.ExpiresAt, &acceptedAt, &acceptedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.ProjectID = mapNullString(projectID)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.AcceptedBy = mapNullString(acceptedBy)
	return inv, nil
}
