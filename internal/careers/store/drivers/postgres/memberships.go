package postgres

import (
	"context"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
)

type membershipsRepo struct {
	q querier
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO memberships (user_id, tenant_id, role, created_at)
		VALUES ($1, $2, $3::member_role, $4)`,
		m.UserID, m.TenantID, string(m.Role), m.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembership(ctx context.Context, userID, tenantID string) (domain.Membership, error) {
	var (
		m    domain.Membership
		role string
	)
	err := r.q.QueryRow(ctx, `
		SELECT user_id, tenant_id, role::text, created_at
		FROM memberships
		WHERE user_id = $1 AND tenant_id = $2`,
		userID, tenantID,
	).Scan(&m.UserID, &m.TenantID, &role, &m.CreatedAt)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}

	if m.Role, err = mapRole(role); err != nil {
		return domain.Membership{}, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

func (r *membershipsRepo) ListByUser(ctx context.Context, userID string) ([]domain.TenantMembership, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.id, t.slug, t.name, t.description, t.branding, t.settings, t.created_at, t.updated_at,
		       m.role::text, m.created_at
		FROM memberships m
		JOIN tenants t ON t.id = m.tenant_id
		WHERE m.user_id = $1
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
			branding, settings []byte
			role               string
		)
		t := &tm.Tenant
		if err := rows.Scan(
			&t.ID, &t.Slug, &t.Name, &t.Description, &branding, &settings, &t.CreatedAt, &t.UpdatedAt,
			&role, &tm.Membership.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := decodeProfile(t, branding, settings); err != nil {
			return nil, err
		}
		if tm.Membership.Role, err = mapRole(role); err != nil {
			return nil, err
		}
		t.CreatedAt = t.CreatedAt.UTC()
		t.UpdatedAt = t.UpdatedAt.UTC()
		tm.Membership.UserID = userID
		tm.Membership.TenantID = t.ID
		tm.Membership.CreatedAt = tm.Membership.CreatedAt.UTC()
		out = append(out, tm)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) CountByRole(ctx context.Context, tenantID string, role domain.Role) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM memberships WHERE tenant_id = $1 AND role = $2::member_role`,
		tenantID, string(role),
	).Scan(&n)
	return n, err
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, userID, tenantID string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM memberships WHERE user_id = $1 AND tenant_id = $2`,
		userID, tenantID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
