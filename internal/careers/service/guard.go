package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
	"github.com/aussiebroadwan/careers/pkg/slogx"
)

// Access is what a successful check hands back so callers do not look the
// tenant or membership up a second time.
type Access struct {
	Tenant     domain.Tenant
	Membership domain.Membership
}

// Guard decides whether a user may act on a tenant. It never writes and is
// safe for concurrent use.
type Guard struct {
	Store     store.Store
	Directory *TenantDirectory
	OpTimeout time.Duration
	Metrics   Recorder
}

// CheckAccess allows the call when userID holds a membership in the tenant
// addressed by slug with a role in allowed.
//
// A missing membership and a role outside allowed both yield ErrForbidden
// so a caller cannot tell them apart.
func (g *Guard) CheckAccess(
	ctx context.Context,
	userID string,
	slug string,
	allowed domain.RoleSet,
) (Access, error) {
	ctx, cancel := withOpTimeout(ctx, g.OpTimeout)
	defer cancel()

	return g.check(ctx, userID, slug, allowed)
}

// check is CheckAccess without its own deadline, for services that already
// hold one.
func (g *Guard) check(
	ctx context.Context,
	userID string,
	slug string,
	allowed domain.RoleSet,
) (Access, error) {
	log := slogx.FromContext(ctx)
	metrics := recorderOrNop(g.Metrics)

	// 1. Validate input
	if userID == "" {
		metrics.GuardDecision(OutcomeInvalid)
		return Access{}, ErrUnauthenticated
	}
	if slug == "" {
		metrics.GuardDecision(OutcomeInvalid)
		return Access{}, ErrMissingSlug
	}
	if err := allowed.Validate(); err != nil {
		metrics.GuardDecision(OutcomeInvalid)
		return Access{}, fmt.Errorf("%w: allowed roles: %v", ErrValidation, err)
	}

	// 2. Resolve the tenant
	tenant, err := g.directory().Lookup(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.GuardDecision(OutcomeNotFound)
			return Access{}, ErrTenantNotFound
		}
		log.Error("failed to resolve tenant",
			slog.String("slug", slug),
			slog.Any("error", err),
		)
		metrics.GuardDecision(OutcomeError)
		return Access{}, storeFault(err)
	}

	// 3. Resolve the membership
	m, err := g.Store.Memberships().GetMembership(ctx, userID, tenant.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("access denied: not a member",
				slog.String("user_id", userID),
				slog.String("tenant_id", tenant.ID),
			)
			metrics.GuardDecision(OutcomeForbidden)
			return Access{}, ErrForbidden
		}
		log.Error("failed to fetch membership",
			slog.String("user_id", userID),
			slog.String("tenant_id", tenant.ID),
			slog.Any("error", err),
		)
		metrics.GuardDecision(OutcomeError)
		return Access{}, storeFault(err)
	}

	// 4. Check the role
	if !allowed.Contains(m.Role) {
		log.Warn("access denied: insufficient role",
			slog.String("user_id", userID),
			slog.String("tenant_id", tenant.ID),
			slog.String("role", m.Role.String()),
		)
		metrics.GuardDecision(OutcomeForbidden)
		return Access{}, ErrForbidden
	}

	metrics.GuardDecision(OutcomeAllowed)
	return Access{Tenant: tenant, Membership: m}, nil
}

func (g *Guard) directory() *TenantDirectory {
	if g.Directory != nil {
		return g.Directory
	}
	return &TenantDirectory{Store: g.Store}
}
