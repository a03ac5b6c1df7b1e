package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
)

const tenantColumns = `id, slug, name, description, branding, settings, created_at, updated_at`

type tenantsRepo struct {
	q querier
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	branding, settings, err := encodeProfile(t)
	if err != nil {
		return err
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Slug, t.Name, t.Description, branding, settings, t.CreatedAt, t.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *tenantsRepo) GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	return scanTenant(r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug))
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	return scanTenant(r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
}

func (r *tenantsRepo) UpdateProfile(ctx context.Context, t domain.Tenant) error {
	branding, settings, err := encodeProfile(t)
	if err != nil {
		return err
	}

	tag, err := r.q.Exec(ctx, `
		UPDATE tenants
		SET description = $1, branding = $2, settings = $3, updated_at = $4
		WHERE id = $5`,
		t.Description, branding, settings, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func encodeProfile(t domain.Tenant) (branding, settings []byte, err error) {
	if branding, err = json.Marshal(t.Branding); err != nil {
		return nil, nil, err
	}
	if settings, err = json.Marshal(t.Settings); err != nil {
		return nil, nil, err
	}
	return branding, settings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (domain.Tenant, error) {
	var (
		t                  domain.Tenant
		branding, settings []byte
	)
	err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Description, &branding, &settings, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	if err := decodeProfile(&t, branding, settings); err != nil {
		return domain.Tenant{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func decodeProfile(t *domain.Tenant, branding, settings []byte) error {
	if err := json.Unmarshal(branding, &t.Branding); err != nil {
		return fmt.Errorf("postgres: tenant %s branding: %w", t.ID, err)
	}
	if err := json.Unmarshal(settings, &t.Settings); err != nil {
		return fmt.Errorf("postgres: tenant %s settings: %w", t.ID, err)
	}
	return nil
}
