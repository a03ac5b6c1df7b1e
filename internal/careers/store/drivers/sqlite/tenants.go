package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
)

const tenantColumns = `id, slug, name, description, branding, settings, created_at, updated_at`

type tenantsRepo struct {
	q dbtx
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	branding, err := encodeDocument(t.Branding)
	if err != nil {
		return err
	}
	settings, err := encodeDocument(t.Settings)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Slug, t.Name, t.Description, branding, settings,
		toMillis(t.CreatedAt), toMillis(t.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *tenantsRepo) GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE slug = ?`, slug)
	return scanTenant(row)
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = ?`, id)
	return scanTenant(row)
}

func (r *tenantsRepo) UpdateProfile(ctx context.Context, t domain.Tenant) error {
	branding, err := encodeDocument(t.Branding)
	if err != nil {
		return err
	}
	settings, err := encodeDocument(t.Settings)
	if err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE tenants
		SET description = ?, branding = ?, settings = ?, updated_at = ?
		WHERE id = ?`,
		t.Description, branding, settings, toMillis(t.UpdatedAt), t.ID,
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (domain.Tenant, error) {
	var (
		t                  domain.Tenant
		branding, settings string
		created, updated   int64
	)
	err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Description, &branding, &settings, &created, &updated)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(branding), &t.Branding); err != nil {
		return domain.Tenant{}, fmt.Errorf("sqlite: tenant %s branding: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(settings), &t.Settings); err != nil {
		return domain.Tenant{}, fmt.Errorf("sqlite: tenant %s settings: %w", t.ID, err)
	}
	t.CreatedAt = fromMillis(created)
	t.UpdatedAt = fromMillis(updated)
	return t, nil
}
