package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a Tx can hand out the same
// repositories bound to the transaction.
type Store interface {
	Tenants() Tenants
	Memberships() Memberships
	Invites() Invites
	Users() Users

	ApplyMigrations() error

	// WithTx executes fn within a read/write transaction. A non-nil error
	// from fn, a panic, or a cancelled ctx rolls the transaction back.
	// Repositories used inside fn must come from tx, not from the Store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the repositories.
type Tx interface {
	Tenants() Tenants
	Memberships() Memberships
	Invites() Invites
	Users() Users
}

type Tenants interface {
	// CreateTenant inserts a tenant. A duplicate slug yields ErrAlreadyExists.
	CreateTenant(ctx context.Context, t domain.Tenant) error

	GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)

	// UpdateProfile replaces description, branding and settings and bumps
	// updated_at. The slug is never touched.
	UpdateProfile(ctx context.Context, t domain.Tenant) error
}

type Memberships interface {
	// CreateMembership inserts a membership. An existing (user, tenant) row
	// yields ErrAlreadyExists.
	CreateMembership(ctx context.Context, m domain.Membership) error

	// GetMembership returns the membership for (userID, tenantID).
	GetMembership(ctx context.Context, userID, tenantID string) (domain.Membership, error)

	// ListByUser returns every tenant the user belongs to, oldest first.
	ListByUser(ctx context.Context, userID string) ([]domain.TenantMembership, error)

	// CountByRole counts memberships on a tenant holding role.
	CountByRole(ctx context.Context, tenantID string, role domain.Role) (int, error)

	// DeleteMembership removes a membership (offboarding tooling only).
	DeleteMembership(ctx context.Context, userID, tenantID string) error
}

type Invites interface {
	// CreateInvite inserts an invite. A second outstanding invite for the
	// same (email, tenant) or a token hash collision yields ErrAlreadyExists.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByTokenHash returns an invite in any state.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// GetInviteByTokenHashForUpdate is GetInviteByTokenHash with a row lock
	// where the driver supports one. Only meaningful inside a transaction.
	GetInviteByTokenHashForUpdate(ctx context.Context, hash string) (domain.Invite, error)

	// GetPendingInvite returns the outstanding invite for (email, tenant)
	// relative to now, or ErrNotFound.
	GetPendingInvite(ctx context.Context, tenantID, email string, now time.Time) (domain.Invite, error)

	// ListPendingInvites returns outstanding invites for a tenant, newest first.
	ListPendingInvites(ctx context.Context, tenantID string, now time.Time) ([]domain.Invite, error)

	// MarkInviteAccepted flips accepted false->true. It returns ErrNotFound
	// when the invite does not exist or was already accepted.
	MarkInviteAccepted(ctx context.Context, inviteID, userID string, at time.Time) error

	// LapseExpiredInvites stamps lapsed_at on unaccepted invites that expired
	// at or before now. An empty tenantID/email widens the scope to every
	// tenant/email. Returns the number of rows touched.
	LapseExpiredInvites(ctx context.Context, tenantID, email string, now time.Time) (int64, error)
}

type Users interface {
	// UpsertUser records the identity provider's view of a user.
	UpsertUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
}
