package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type countingRecorder struct {
	mu       sync.Mutex
	guard    map[string]int
	issued   map[string]int
	accepted map[string]int
	tenants  int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		guard:    map[string]int{},
		issued:   map[string]int{},
		accepted: map[string]int{},
	}
}

func (r *countingRecorder) GuardDecision(o string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guard[o]++
}

func (r *countingRecorder) InviteIssued(role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued[role]++
}

func (r *countingRecorder) InviteAccepted(o string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted[o]++
}

func (r *countingRecorder) TenantCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants++
}

type testEnv struct {
	store   *sqlite.Store
	clock   *fakeClock
	metrics *countingRecorder
	dir     *TenantDirectory
	guard   *Guard
	tenants *TenantService
	invites *InviteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := &fakeClock{now: epoch}
	metrics := newCountingRecorder()
	dir := NewTenantDirectory(st, 16, time.Minute)
	guard := &Guard{Store: st, Directory: dir, Metrics: metrics}

	return &testEnv{
		store:   st,
		clock:   clock,
		metrics: metrics,
		dir:     dir,
		guard:   guard,
		tenants: &TenantService{
			Store:     st,
			Directory: dir,
			Guard:     guard,
			Clock:     clock.Now,
			Metrics:   metrics,
		},
		invites: &InviteService{
			Store:   st,
			Guard:   guard,
			Clock:   clock.Now,
			Metrics: metrics,
		},
	}
}

func identity(id, email string) domain.Identity {
	return domain.Identity{UserID: id, Email: email, Name: id}
}

// seedAcme creates tenant "acme" owned by u1.
func (e *testEnv) seedAcme(t *testing.T) domain.Tenant {
	t.Helper()
	tenant, err := e.tenants.CreateTenant(context.Background(), identity("u1", "owner@acme.test"), "Acme", "acme")
	require.NoError(t, err)
	return tenant
}

// grant adds a membership directly, bypassing the invite flow.
func (e *testEnv) grant(t *testing.T, tenant domain.Tenant, userID string, role domain.Role) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.store.Users().UpsertUser(ctx, domain.User{
		ID: userID, Email: userID + "@acme.test", CreatedAt: epoch, UpdatedAt: epoch,
	}))
	require.NoError(t, e.store.Memberships().CreateMembership(ctx, domain.Membership{
		UserID: userID, TenantID: tenant.ID, Role: role, CreatedAt: epoch,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
