package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
)

type membershipsRepo struct {
	q dbtx
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO memberships (user_id, tenant_id, role, created_at)
		VALUES (?, ?, ?, ?)`,
		m.UserID, m.TenantID, string(m.Role), toMillis(m.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembership(ctx context.Context, userID, tenantID string) (domain.Membership, error) {
	var (
		m       domain.Membership
		role    string
		created int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT user_id, tenant_id, role, created_at
		FROM memberships
		WHERE user_id = ? AND tenant_id = ?`,
		userID, tenantID,
	).Scan(&m.UserID, &m.TenantID, &role, &created)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}

	if m.Role, err = mapRole(role); err != nil {
		return domain.Membership{}, err
	}
	m.CreatedAt = fromMillis(created)
	return m, nil
}

func (r *membershipsRepo) ListByUser(ctx context.Context, userID string) ([]domain.TenantMembership, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT t.id, t.slug, t.name, t.description, t.branding, t.settings, t.created_at, t.updated_at,
		       m.role, m.created_at
		FROM memberships m
		JOIN tenants t ON t.id = m.tenant_id
		WHERE m.user_id = ?
		ORDER BY m.created_at ASC, t.slug ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TenantMembership
	for rows.Next() {
		var (
			tm                 domain.TenantMembership
			branding, settings string
			tCreated, tUpdated int64
			role               string
			mCreated           int64
		)
		t := &tm.Tenant
		if err := rows.Scan(
			&t.ID, &t.Slug, &t.Name, &t.Description, &branding, &settings, &tCreated, &tUpdated,
			&role, &mCreated,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(branding), &t.Branding); err != nil {
			return nil, fmt.Errorf("sqlite: tenant %s branding: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(settings), &t.Settings); err != nil {
			return nil, fmt.Errorf("sqlite: tenant %s settings: %w", t.ID, err)
		}
		t.CreatedAt = fromMillis(tCreated)
		t.UpdatedAt = fromMillis(tUpdated)

		if tm.Membership.Role, err = mapRole(role); err != nil {
			return nil, err
		}
		tm.Membership.UserID = userID
		tm.Membership.TenantID = t.ID
		tm.Membership.CreatedAt = fromMillis(mCreated)
		out = append(out, tm)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) CountByRole(ctx context.Context, tenantID string, role domain.Role) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM memberships WHERE tenant_id = ? AND role = ?`,
		tenantID, string(role),
	).Scan(&n)
	return n, err
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, userID, tenantID string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM memberships WHERE user_id = ? AND tenant_id = ?`,
		userID, tenantID,
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
