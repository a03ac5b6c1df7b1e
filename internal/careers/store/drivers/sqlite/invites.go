package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
)

const inviteColumns = `id, email, tenant_id, role, token_hash, accepted, accepted_by, accepted_at,
	expires_at, invited_by, created_at, lapsed_at`

type invitesRepo struct {
	q dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	var acceptedAt sql.NullInt64
	if inv.AcceptedAt != nil {
		acceptedAt = sql.NullInt64{Int64: toMillis(*inv.AcceptedAt), Valid: true}
	}
	var lapsedAt sql.NullInt64
	if inv.LapsedAt != nil {
		lapsedAt = sql.NullInt64{Int64: toMillis(*inv.LapsedAt), Valid: true}
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invites (`+inviteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, inv.TenantID, string(inv.Role), inv.TokenHash,
		boolToInt(inv.Accepted), mapStringNull(inv.AcceptedBy), acceptedAt,
		toMillis(inv.ExpiresAt), inv.InvitedBy, toMillis(inv.CreatedAt), lapsedAt,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM invites WHERE token_hash = ?`, hash)
	return scanInvite(row)
}

// GetInviteByTokenHashForUpdate has no row lock in sqlite; the single
// connection already serialises writers.
func (r *invitesRepo) GetInviteByTokenHashForUpdate(ctx context.Context, hash string) (domain.Invite, error) {
	return r.GetInviteByTokenHash(ctx, hash)
}

func (r *invitesRepo) GetPendingInvite(
	ctx context.Context,
	tenantID, email string,
	now time.Time,
) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+inviteColumns+`
		FROM invites
		WHERE tenant_id = ? AND email = ?
		  AND accepted = 0 AND lapsed_at IS NULL AND expires_at > ?
		LIMIT 1`,
		tenantID, email, toMillis(now),
	)
	return scanInvite(row)
}

func (r *invitesRepo) ListPendingInvites(
	ctx context.Context,
	tenantID string,
	now time.Time,
) ([]domain.Invite, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+inviteColumns+`
		FROM invites
		WHERE tenant_id = ?
		  AND accepted = 0 AND lapsed_at IS NULL AND expires_at > ?
		ORDER BY created_at DESC, id DESC`,
		tenantID, toMillis(now),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitesRepo) MarkInviteAccepted(
	ctx context.Context,
	inviteID, userID string,
	at time.Time,
) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invites
		SET accepted = 1, accepted_by = ?, accepted_at = ?
		WHERE id = ? AND accepted = 0`,
		userID, toMillis(at), inviteID,
	)
	if err != nil {
		return err
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

func (r *invitesRepo) LapseExpiredInvites(
	ctx context.Context,
	tenantID, email string,
	now time.Time,
) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invites
		SET lapsed_at = ?1
		WHERE accepted = 0 AND lapsed_at IS NULL AND expires_at <= ?1
		  AND (?2 = '' OR tenant_id = ?2)
		  AND (?3 = '' OR email = ?3)`,
		toMillis(now), tenantID, email,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanInvite(row rowScanner) (domain.Invite, error) {
	var (
		inv                  domain.Invite
		role                 string
		accepted             int
		acceptedBy           sql.NullString
		acceptedAt, lapsedAt sql.NullInt64
		expires, created     int64
	)
	err := row.Scan(
		&inv.ID, &inv.Email, &inv.TenantID, &role, &inv.TokenHash,
		&accepted, &acceptedBy, &acceptedAt,
		&expires, &inv.InvitedBy, &created, &lapsedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}

	if inv.Role, err = mapRole(role); err != nil {
		return domain.Invite{}, err
	}
	inv.Accepted = accepted != 0
	inv.AcceptedBy = mapNullString(acceptedBy)
	inv.AcceptedAt = mapNullMillis(acceptedAt)
	inv.ExpiresAt = fromMillis(expires)
	inv.CreatedAt = fromMillis(created)
	inv.LapsedAt = mapNullMillis(lapsedAt)
	return inv, nil
}
