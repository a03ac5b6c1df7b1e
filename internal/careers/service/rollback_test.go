package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
	"github.com/stretchr/testify/require"
)

// flakyMembershipStore fails the first `failures` membership inserts made
// inside a transaction with err. Reads and pool-level repositories pass
// through untouched.
type flakyMembershipStore struct {
	store.Store
	err      error
	failures int32
	calls    atomic.Int32
}

func (s *flakyMembershipStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(flakyTx{Tx: tx, owner: s})
	})
}

type flakyTx struct {
	store.Tx
	owner *flakyMembershipStore
}

func (t flakyTx) Memberships() store.Memberships {
	return flakyMemberships{Memberships: t.Tx.Memberships(), owner: t.owner}
}

type flakyMemberships struct {
	store.Memberships
	owner *flakyMembershipStore
}

func (f flakyMemberships) CreateMembership(ctx context.Context, m domain.Membership) error {
	if f.owner.calls.Add(1) <= f.owner.failures {
		return f.owner.err
	}
	return f.Memberships.CreateMembership(ctx, m)
}

func TestCreateTenantRollsBack(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	flaky := &flakyMembershipStore{Store: env.store, err: errors.New("disk full"), failures: 1}
	svc := &TenantService{Store: flaky, Clock: env.clock.Now}

	_, err := svc.CreateTenant(ctx, identity("u1", "owner@acme.test"), "Acme", "acme")
	require.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = env.store.Tenants().GetTenantBySlug(ctx, "acme")
	require.ErrorIs(t, err, store.ErrNotFound, "no tenant without its owner")

	// The slug is still free once the store recovers.
	_, err = svc.CreateTenant(ctx, identity("u1", "owner@acme.test"), "Acme", "acme")
	require.NoError(t, err)
}

func TestAcceptInviteRollsBack(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAcme(t)

	issued, err := env.invites.CreateInvite(ctx, "u1", "acme", "bob@x.com", domain.RoleEditor)
	require.NoError(t, err)
	bob := identity("bob_id", "bob@x.com")

	t.Run("failed grant leaves the invite open", func(t *testing.T) {
		flaky := &flakyMembershipStore{Store: env.store, err: errors.New("disk full"), failures: 1}
		svc := &InviteService{Store: flaky, Guard: env.guard, Clock: env.clock.Now}

		_, err := svc.AcceptInvite(ctx, bob, issued.Token)
		require.ErrorIs(t, err, ErrStoreUnavailable)

		inv, err := env.store.Invites().GetInviteByTokenHash(ctx, issued.TokenHash)
		require.NoError(t, err)
		require.False(t, inv.Accepted)

		_, err = env.guard.CheckAccess(ctx, "bob_id", "acme", domain.AnyMember)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("lost membership race is retried", func(t *testing.T) {
		flaky := &flakyMembershipStore{Store: env.store, err: store.ErrAlreadyExists, failures: 1}
		svc := &InviteService{Store: flaky, Guard: env.guard, Clock: env.clock.Now}

		m, err := svc.AcceptInvite(ctx, bob, issued.Token)
		require.NoError(t, err)
		require.Equal(t, domain.RoleEditor, m.Role)
		require.EqualValues(t, 2, flaky.calls.Load())

		inv, err := env.store.Invites().GetInviteByTokenHash(ctx, issued.TokenHash)
		require.NoError(t, err)
		require.True(t, inv.Accepted)
	})
}
