package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
)

const inviteColumns = `id, email, tenant_id, role::text, token_hash, accepted, COALESCE(accepted_by, ''),
	accepted_at, expires_at, invited_by, created_at, lapsed_at`

type invitesRepo struct {
	q querier
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	var acceptedBy *string
	if inv.AcceptedBy != "" {
		acceptedBy = &inv.AcceptedBy
	}

	_, err := r.q.Exec(ctx, `
		INSERT INTO invites (id, email, tenant_id, role, token_hash, accepted, accepted_by, accepted_at,
		                     expires_at, invited_by, created_at, lapsed_at)
		VALUES ($1, $2, $3, $4::member_role, $5, $6, $7, $8, $9, $10, $11, $12)`,
		inv.ID, inv.Email, inv.TenantID, string(inv.Role), inv.TokenHash,
		inv.Accepted, acceptedBy, inv.AcceptedAt,
		inv.ExpiresAt, inv.InvitedBy, inv.CreatedAt, inv.LapsedAt,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	return scanInvite(r.q.QueryRow(ctx, `SELECT `+inviteColumns+` FROM invites WHERE token_hash = $1`, hash))
}

// GetInviteByTokenHashForUpdate locks the row so concurrent acceptances of
// the same token queue behind the first.
func (r *invitesRepo) GetInviteByTokenHashForUpdate(ctx context.Context, hash string) (domain.Invite, error) {
	return scanInvite(r.q.QueryRow(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE token_hash = $1 FOR UPDATE`, hash))
}

func (r *invitesRepo) GetPendingInvite(
	ctx context.Context,
	tenantID, email string,
	now time.Time,
) (domain.Invite, error) {
	return scanInvite(r.q.QueryRow(ctx, `
		SELECT `+inviteColumns+`
		FROM invites
		WHERE tenant_id = $1 AND email = $2
		  AND NOT accepted AND lapsed_at IS NULL AND expires_at > $3
		LIMIT 1`,
		tenantID, email, now,
	))
}

func (r *invitesRepo) ListPendingInvites(
	ctx context.Context,
	tenantID string,
	now time.Time,
) ([]domain.Invite, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+inviteColumns+`
		FROM invites
		WHERE tenant_id = $1
		  AND NOT accepted AND lapsed_at IS NULL AND expires_at > $2
		ORDER BY created_at DESC, id DESC`,
		tenantID, now,
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
	tag, err := r.q.Exec(ctx, `
		UPDATE invites
		SET accepted = true, accepted_by = $1, accepted_at = $2
		WHERE id = $3 AND NOT accepted`,
		userID, at, inviteID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) LapseExpiredInvites(
	ctx context.Context,
	tenantID, email string,
	now time.Time,
) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE invites
		SET lapsed_at = $1
		WHERE NOT accepted AND lapsed_at IS NULL AND expires_at <= $1
		  AND ($2::text = '' OR tenant_id = $2)
		  AND ($3::text = '' OR email = $3)`,
		now, tenantID, email,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanInvite(row rowScanner) (domain.Invite, error) {
	var (
		inv  domain.Invite
		role string
	)
	err := row.Scan(
		&inv.ID, &inv.Email, &inv.TenantID, &role, &inv.TokenHash,
		&inv.Accepted, &inv.AcceptedBy, &inv.AcceptedAt,
		&inv.ExpiresAt, &inv.InvitedBy, &inv.CreatedAt, &inv.LapsedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}

	if inv.Role, err = mapRole(role); err != nil {
		return domain.Invite{}, err
	}
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	if inv.AcceptedAt != nil {
		at := inv.AcceptedAt.UTC()
		inv.AcceptedAt = &at
	}
	if inv.LapsedAt != nil {
		at := inv.LapsedAt.UTC()
		inv.LapsedAt = &at
	}
	return inv, nil
}
