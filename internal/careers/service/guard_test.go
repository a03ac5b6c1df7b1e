package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
	"github.com/stretchr/testify/require"
)

func TestCheckAccess(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)
	env.grant(t, acme, "viewer", domain.RoleViewer)

	t.Run("owner is allowed", func(t *testing.T) {
		access, err := env.guard.CheckAccess(ctx, "u1", "acme", domain.EditContent)
		require.NoError(t, err)
		require.Equal(t, domain.RoleOwner, access.Membership.Role)
		require.Equal(t, acme.ID, access.Tenant.ID)
	})

	t.Run("non member is forbidden", func(t *testing.T) {
		_, err := env.guard.CheckAccess(ctx, "u2", "acme", domain.EditContent)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("role outside the set is forbidden", func(t *testing.T) {
		_, err := env.guard.CheckAccess(ctx, "viewer", "acme", domain.EditContent)
		require.ErrorIs(t, err, ErrForbidden)

		access, err := env.guard.CheckAccess(ctx, "viewer", "acme", domain.AnyMember)
		require.NoError(t, err)
		require.Equal(t, domain.RoleViewer, access.Membership.Role)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		_, err := env.guard.CheckAccess(ctx, "u1", "globex", domain.EditContent)
		require.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("input validation", func(t *testing.T) {
		tests := []struct {
			name    string
			userID  string
			slug    string
			allowed domain.RoleSet
			want    error
		}{
			{"missing user", "", "acme", domain.EditContent, ErrUnauthenticated},
			{"missing slug", "u1", "", domain.EditContent, ErrMissingSlug},
			{"empty role set", "u1", "acme", domain.NewRoleSet(), ErrValidation},
			{"unknown role", "u1", "acme", domain.NewRoleSet("SUPERUSER"), ErrValidation},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := env.guard.CheckAccess(ctx, tt.userID, tt.slug, tt.allowed)
				require.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("repeated checks agree", func(t *testing.T) {
		for _, userID := range []string{"u1", "u2", "viewer"} {
			a1, err1 := env.guard.CheckAccess(ctx, userID, "acme", domain.EditContent)
			a2, err2 := env.guard.CheckAccess(ctx, userID, "acme", domain.EditContent)
			require.Equal(t, a1, a2)
			require.Equal(t, err1, err2)
		}
	})

	t.Run("decisions are recorded", func(t *testing.T) {
		require.Positive(t, env.metrics.guard[OutcomeAllowed])
		require.Positive(t, env.metrics.guard[OutcomeForbidden])
		require.Positive(t, env.metrics.guard[OutcomeNotFound])
	})
}

func TestCheckAccessStoreFault(t *testing.T) {
	env := newTestEnv(t)
	env.seedAcme(t)

	_, err := env.guard.CheckAccess(context.Background(), "u1", "acme", domain.EditContent)
	require.NoError(t, err)
	require.NoError(t, env.store.Close())

	// acme is cached; the membership read hits the closed handle.
	_, err = env.guard.CheckAccess(context.Background(), "u1", "acme", domain.EditContent)
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.True(t, IsRetryable(err))

	env.dir.Invalidate("acme")
	_, err = env.guard.CheckAccess(context.Background(), "u1", "acme", domain.EditContent)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestStoreFault(t *testing.T) {
	require.NoError(t, storeFault(nil))
	require.ErrorIs(t, storeFault(ErrForbidden), ErrForbidden)
	require.False(t, errors.Is(storeFault(ErrForbidden), ErrStoreUnavailable))
	require.ErrorIs(t, storeFault(store.ErrAlreadyExists), ErrStoreUnavailable)
	require.ErrorIs(t, storeFault(context.DeadlineExceeded), ErrStoreUnavailable)
	require.False(t, IsRetryable(ErrValidation))
}
