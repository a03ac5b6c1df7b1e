package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const day = 24 * time.Hour

func TestCreateInvite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)
	env.grant(t, acme, "editor", domain.RoleEditor)

	t.Run("issues token and stores only its fingerprint", func(t *testing.T) {
		issued, err := env.invites.CreateInvite(ctx, "u1", "acme", "bob@x.com", domain.RoleEditor)
		require.NoError(t, err)
		require.NotEmpty(t, issued.Token)
		require.True(t, strings.HasPrefix(issued.ID, "inv_"))
		require.True(t, issued.ExpiresAt.Equal(epoch.Add(DefaultInviteTTL)))

		stored, err := env.store.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(issued.Token))
		require.NoError(t, err)
		require.Equal(t, issued.ID, stored.ID)
		require.NotEqual(t, issued.Token, stored.TokenHash)
		require.False(t, stored.Accepted)
	})

	t.Run("second invite for the same pair is a duplicate", func(t *testing.T) {
		_, err := env.invites.CreateInvite(ctx, "u1", "acme", "bob@x.com", domain.RoleAdmin)
		require.ErrorIs(t, err, ErrDuplicatePendingInvite)
	})

	t.Run("editors cannot invite", func(t *testing.T) {
		_, err := env.invites.CreateInvite(ctx, "editor", "acme", "carol@x.com", domain.RoleViewer)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rejected input", func(t *testing.T) {
		tests := []struct {
			name  string
			slug  string
			email string
			role  domain.Role
			want  error
		}{
			{"missing slug", "", "carol@x.com", domain.RoleViewer, ErrMissingSlug},
			{"unknown tenant", "globex", "carol@x.com", domain.RoleViewer, ErrTenantNotFound},
			{"empty email", "acme", "", domain.RoleViewer, ErrValidation},
			{"no domain", "acme", "carol", domain.RoleViewer, ErrValidation},
			{"display name", "acme", "Carol <carol@x.com>", domain.RoleViewer, ErrValidation},
			{"unknown role", "acme", "carol@x.com", domain.Role("INTERN"), ErrValidation},
			{"lower case role", "acme", "carol@x.com", domain.Role("editor"), ErrValidation},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := env.invites.CreateInvite(ctx, "u1", tt.slug, tt.email, tt.role)
				require.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("expired invite no longer blocks the pair", func(t *testing.T) {
		_, err := env.invites.CreateInvite(ctx, "u1", "acme", "dave@x.com", domain.RoleViewer)
		require.NoError(t, err)

		env.clock.Advance(DefaultInviteTTL)
		_, err = env.invites.CreateInvite(ctx, "u1", "acme", "dave@x.com", domain.RoleEditor)
		require.NoError(t, err)

		pending, err := env.invites.ListPending(ctx, "u1", "acme")
		require.NoError(t, err)

		var dave int
		for _, inv := range pending {
			if inv.Email == "dave@x.com" {
				dave++
				require.Equal(t, domain.RoleEditor, inv.Role)
			}
		}
		require.Equal(t, 1, dave)
	})

	t.Run("list pending is guarded", func(t *testing.T) {
		_, err := env.invites.ListPending(ctx, "editor", "acme")
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAcceptInvite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)

	issued, err := env.invites.CreateInvite(ctx, "u1", "acme", "bob@x.com", domain.RoleEditor)
	require.NoError(t, err)

	bob := identity("bob_id", "bob@x.com")

	t.Run("expired", func(t *testing.T) {
		env.clock.Advance(8 * day)
		defer env.clock.Advance(-8 * day)

		_, err := env.invites.AcceptInvite(ctx, bob, issued.Token)
		require.ErrorIs(t, err, ErrInvalidOrExpiredInvite)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		env.clock.Advance(DefaultInviteTTL)
		defer env.clock.Advance(-DefaultInviteTTL)

		_, err := env.invites.AcceptInvite(ctx, bob, issued.Token)
		require.ErrorIs(t, err, ErrInvalidOrExpiredInvite)
	})

	env.clock.Advance(day)

	t.Run("email mismatch", func(t *testing.T) {
		_, err := env.invites.AcceptInvite(ctx, identity("bob_id", "eve@x.com"), issued.Token)
		require.ErrorIs(t, err, ErrEmailMismatch)
	})

	t.Run("email match is case sensitive", func(t *testing.T) {
		_, err := env.invites.AcceptInvite(ctx, identity("bob_id", "Bob@x.com"), issued.Token)
		require.ErrorIs(t, err, ErrEmailMismatch)
	})

	t.Run("unknown and malformed tokens", func(t *testing.T) {
		other, err := cryptox.GenerateToken(cryptox.InviteTokenSize)
		require.NoError(t, err)

		_, err = env.invites.AcceptInvite(ctx, bob, other)
		require.ErrorIs(t, err, ErrInvalidOrExpiredInvite)

		_, err = env.invites.AcceptInvite(ctx, bob, "not a token!")
		require.ErrorIs(t, err, ErrInvalidOrExpiredInvite)

		_, err = env.invites.AcceptInvite(ctx, bob, "  ")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := env.invites.AcceptInvite(ctx, domain.Identity{}, issued.Token)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	var first domain.Membership

	t.Run("success", func(t *testing.T) {
		first, err = env.invites.AcceptInvite(ctx, bob, issued.Token)
		require.NoError(t, err)
		require.Equal(t, "bob_id", first.UserID)
		require.Equal(t, acme.ID, first.TenantID)
		require.Equal(t, domain.RoleEditor, first.Role)

		inv, err := env.store.Invites().GetInviteByTokenHash(ctx, issued.TokenHash)
		require.NoError(t, err)
		require.True(t, inv.Accepted)
		require.Equal(t, "bob_id", inv.AcceptedBy)
		require.NotNil(t, inv.AcceptedAt)

		access, err := env.guard.CheckAccess(ctx, "bob_id", "acme", domain.EditContent)
		require.NoError(t, err)
		require.Equal(t, domain.RoleEditor, access.Membership.Role)
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		env.clock.Advance(10 * day)
		again, err := env.invites.AcceptInvite(ctx, bob, issued.Token)
		require.NoError(t, err)
		require.Equal(t, first.UserID, again.UserID)
		require.Equal(t, first.TenantID, again.TenantID)
		require.Equal(t, first.Role, again.Role)
		require.True(t, first.CreatedAt.Equal(again.CreatedAt))

		n, err := env.store.Memberships().CountByRole(ctx, acme.ID, domain.RoleEditor)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("another user cannot reuse an accepted token", func(t *testing.T) {
		_, err := env.invites.AcceptInvite(ctx, identity("mallory", "bob@x.com"), issued.Token)
		require.ErrorIs(t, err, ErrInvalidOrExpiredInvite)
	})

	require.Equal(t, 1, env.metrics.accepted[AcceptJoined])
	require.Equal(t, 1, env.metrics.accepted[AcceptReplay])
	require.Equal(t, 1, env.metrics.issued[domain.RoleEditor.String()])
}

func TestAcceptInviteExistingMember(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)
	env.grant(t, acme, "carol_id", domain.RoleViewer)

	issued, err := env.invites.CreateInvite(ctx, "u1", "acme", "carol@x.com", domain.RoleAdmin)
	require.NoError(t, err)

	m, err := env.invites.AcceptInvite(ctx, identity("carol_id", "carol@x.com"), issued.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleViewer, m.Role, "existing membership is kept as is")

	inv, err := env.store.Invites().GetInviteByTokenHash(ctx, issued.TokenHash)
	require.NoError(t, err)
	require.True(t, inv.Accepted)
	require.Equal(t, 1, env.metrics.accepted[AcceptExisting])
}

func TestConcurrentAcceptance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)

	issued, err := env.invites.CreateInvite(ctx, "u1", "acme", "bob@x.com", domain.RoleEditor)
	require.NoError(t, err)

	var ok atomic.Int32
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			if _, err := env.invites.AcceptInvite(ctx, identity("bob_id", "bob@x.com"), issued.Token); err != nil {
				return err
			}
			ok.Add(1)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.EqualValues(t, 8, ok.Load())

	require.Equal(t, 1, env.metrics.accepted[AcceptJoined])
	require.Equal(t, 7, env.metrics.accepted[AcceptReplay])

	n, err := env.store.Memberships().CountByRole(ctx, acme.ID, domain.RoleEditor)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestConcurrentIssuance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAcme(t)

	var issued, duplicates atomic.Int32
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := env.invites.CreateInvite(ctx, "u1", "acme", "bob@x.com", domain.RoleEditor)
			switch {
			case err == nil:
				issued.Add(1)
			case errors.Is(err, ErrDuplicatePendingInvite):
				duplicates.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.EqualValues(t, 1, issued.Load())
	require.EqualValues(t, 7, duplicates.Load())
}

func TestInviteSweeper(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	acme := env.seedAcme(t)

	for _, email := range []string{"a@x.com", "b@x.com"} {
		_, err := env.invites.CreateInvite(ctx, "u1", "acme", email, domain.RoleViewer)
		require.NoError(t, err)
	}

	sweeper := NewInviteSweeper(env.store, discardLogger(), time.Hour)
	sweeper.Clock = env.clock.Now

	require.Zero(t, sweeper.Sweep(ctx))

	env.clock.Advance(DefaultInviteTTL)
	require.EqualValues(t, 2, sweeper.Sweep(ctx))
	require.Zero(t, sweeper.Sweep(ctx), "already lapsed rows are left alone")

	pending, err := env.store.Invites().ListPendingInvites(ctx, acme.ID, epoch)
	require.NoError(t, err)
	require.Empty(t, pending, "lapsed invites are no longer outstanding")

	sweeper.Start()
	sweeper.Stop()
}
