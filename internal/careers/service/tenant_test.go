package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateTenant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("derives slug from name", func(t *testing.T) {
		tenant, err := env.tenants.CreateTenant(ctx, identity("u1", "u1@acme.test"), "Acme Corp", "")
		require.NoError(t, err)
		require.Equal(t, "acme-corp", tenant.Slug)
		require.Equal(t, "Acme Corp", tenant.Name)
		require.True(t, strings.HasPrefix(tenant.ID, "ten_"))
		require.True(t, tenant.CreatedAt.Equal(epoch))

		m, err := env.store.Memberships().GetMembership(ctx, "u1", tenant.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleOwner, m.Role)

		u, err := env.store.Users().GetUserByID(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "u1@acme.test", u.Email)
	})

	t.Run("colliding derived slug", func(t *testing.T) {
		_, err := env.tenants.CreateTenant(ctx, identity("u2", "u2@acme.test"), "Acme Corp!!", "")
		require.ErrorIs(t, err, ErrSlugAlreadyExists)

		// Nothing from the failed attempt survives.
		list, err := env.tenants.ListForUser(ctx, "u2")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("explicit canonical slug", func(t *testing.T) {
		tenant, err := env.tenants.CreateTenant(ctx, identity("u2", "u2@globex.test"), "Globex Corporation", "globex")
		require.NoError(t, err)
		require.Equal(t, "globex", tenant.Slug)
	})

	t.Run("rejected input", func(t *testing.T) {
		tests := []struct {
			name    string
			creator domain.Identity
			tname   string
			slug    string
			want    error
		}{
			{"anonymous", domain.Identity{}, "Acme", "", ErrUnauthenticated},
			{"blank name", identity("u1", "u1@acme.test"), "   ", "", ErrValidation},
			{"name without slug characters", identity("u1", "u1@acme.test"), "!!!", "", ErrValidation},
			{"non canonical slug", identity("u1", "u1@acme.test"), "Acme", "Acme Corp", ErrValidation},
			{"trailing hyphen slug", identity("u1", "u1@acme.test"), "Acme", "acme-", ErrValidation},
			{"long name", identity("u1", "u1@acme.test"), strings.Repeat("a", MaxTenantNameLen+1), "", ErrValidation},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := env.tenants.CreateTenant(ctx, tt.creator, tt.tname, tt.slug)
				require.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("long names are capped", func(t *testing.T) {
		tenant, err := env.tenants.CreateTenant(ctx, identity("u3", "u3@acme.test"), strings.Repeat("ab ", 40), "")
		require.NoError(t, err)
		require.LessOrEqual(t, len(tenant.Slug), domain.MaxSlugLen)
		require.NoError(t, domain.ValidateSlug(tenant.Slug))
	})

	require.Equal(t, 3, env.metrics.tenants)
}

func TestGetTenant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)

	got, err := env.tenants.GetTenant(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, acme.ID, got.ID)
	require.Equal(t, 1, env.dir.Len())

	_, err = env.tenants.GetTenant(ctx, "globex")
	require.ErrorIs(t, err, ErrTenantNotFound)

	_, err = env.tenants.GetTenant(ctx, "")
	require.ErrorIs(t, err, ErrMissingSlug)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)
	env.grant(t, acme, "editor", domain.RoleEditor)
	env.grant(t, acme, "viewer", domain.RoleViewer)

	// Warm the directory so the update has to invalidate it.
	_, err := env.tenants.GetTenant(ctx, "acme")
	require.NoError(t, err)

	t.Run("editor updates branding", func(t *testing.T) {
		env.clock.Advance(time.Hour)
		desc := "We build rockets."
		updated, err := env.tenants.UpdateProfile(ctx, "editor", "acme", domain.ProfileUpdate{
			Description: &desc,
			Branding:    &domain.Branding{PrimaryColor: "#ff6600", HeroText: "Come fly"},
		})
		require.NoError(t, err)
		require.Equal(t, "acme", updated.Slug)
		require.Equal(t, desc, updated.Description)
		require.True(t, updated.UpdatedAt.Equal(epoch.Add(time.Hour)))

		got, err := env.tenants.GetTenant(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, "#ff6600", got.Branding.PrimaryColor)
		require.Equal(t, desc, got.Description)
	})

	t.Run("untouched fields survive", func(t *testing.T) {
		desc := "Still rockets."
		updated, err := env.tenants.UpdateProfile(ctx, "u1", "acme", domain.ProfileUpdate{Description: &desc})
		require.NoError(t, err)
		require.Equal(t, "#ff6600", updated.Branding.PrimaryColor)
	})

	t.Run("viewer is forbidden", func(t *testing.T) {
		desc := "nope"
		_, err := env.tenants.UpdateProfile(ctx, "viewer", "acme", domain.ProfileUpdate{Description: &desc})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("invalid branding", func(t *testing.T) {
		_, err := env.tenants.UpdateProfile(ctx, "u1", "acme", domain.ProfileUpdate{
			Branding: &domain.Branding{Logo: "javascript:alert(1)"},
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty update", func(t *testing.T) {
		_, err := env.tenants.UpdateProfile(ctx, "u1", "acme", domain.ProfileUpdate{})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("description too long", func(t *testing.T) {
		desc := strings.Repeat("x", domain.MaxDescriptionLen+1)
		_, err := env.tenants.UpdateProfile(ctx, "u1", "acme", domain.ProfileUpdate{Description: &desc})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)

	env.clock.Advance(time.Minute)
	_, err := env.tenants.CreateTenant(ctx, identity("u2", "u2@globex.test"), "Globex", "")
	require.NoError(t, err)

	env.grant(t, acme, "u2", domain.RoleAdmin)

	list, err := env.tenants.ListForUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, list, 2)

	roles := map[string]domain.Role{}
	for _, tm := range list {
		roles[tm.Tenant.Slug] = tm.Membership.Role
	}
	require.Equal(t, domain.RoleAdmin, roles["acme"])
	require.Equal(t, domain.RoleOwner, roles["globex"])

	_, err = env.tenants.ListForUser(ctx, "")
	require.ErrorIs(t, err, ErrUnauthenticated)
}
