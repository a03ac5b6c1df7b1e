package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"
	"github.com/aussiebroadwan/careers/pkg/idx"
	"github.com/aussiebroadwan/careers/pkg/slogx"
)

// MaxTenantNameLen bounds the display name of a tenant.
const MaxTenantNameLen = 200

// tenantInput is the creation request as seen by the validator.
type tenantInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

type TenantService struct {
	Store     store.Store
	Directory *TenantDirectory
	Guard     *Guard
	Clock     Clock
	OpTimeout time.Duration
	Metrics   Recorder
}

// CreateTenant creates a tenant and makes creator its OWNER.
// It performs the following steps:
// 1. Validates the creator and the name
// 2. Derives the slug from the name, or checks an explicit one is canonical
// 3. Mirrors the creator, inserts the tenant and the OWNER membership in one
// transaction so the tenant is never observable without an owner
func (s *TenantService) CreateTenant(
	ctx context.Context,
	creator domain.Identity,
	name string,
	slug string,
) (domain.Tenant, error) {
	ctx, cancel := withOpTimeout(ctx, s.OpTimeout)
	defer cancel()
	log := slogx.FromContext(ctx)

	// 1. Validate input
	if creator.UserID == "" {
		return domain.Tenant{}, ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	if err := domain.ValidateStruct(tenantInput{Name: name}); err != nil {
		return domain.Tenant{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// 2. Resolve the slug
	if slug == "" {
		slug = domain.Slugify(name)
		if slug == "" {
			return domain.Tenant{}, fmt.Errorf("%w: name %q yields an empty slug", ErrValidation, name)
		}
	} else if err := domain.ValidateSlug(slug); err != nil {
		return domain.Tenant{}, fmt.Errorf("%w: slug %q is not in canonical form", ErrValidation, slug)
	}

	// 3. Persist tenant, owner and user mirror atomically
	now := s.Clock.now()
	tenant := domain.Tenant{
		ID:        idx.New(idx.KindTenant).String(),
		Slug:      slug,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user := creator.User()
		user.CreatedAt, user.UpdatedAt = now, now
		if err := tx.Users().UpsertUser(ctx, user); err != nil {
			return err
		}

		if err := tx.Tenants().CreateTenant(ctx, tenant); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrSlugAlreadyExists
			}
			return err
		}

		return tx.Memberships().CreateMembership(ctx, domain.Membership{
			UserID:    creator.UserID,
			TenantID:  tenant.ID,
			Role:      domain.RoleOwner,
			CreatedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrSlugAlreadyExists) {
			log.Warn("tenant slug already taken", slog.String("slug", slug))
			return domain.Tenant{}, err
		}
		log.Error("failed to create tenant",
			slog.String("slug", slug),
			slog.Any("error", err),
		)
		return domain.Tenant{}, storeFault(err)
	}

	recorderOrNop(s.Metrics).TenantCreated()
	log.Info("tenant created",
		slog.String("tenant_id", tenant.ID),
		slog.String("slug", tenant.Slug),
		slog.String("owner_id", creator.UserID),
	)

	return tenant, nil
}

// GetTenant is the public lookup behind the careers page.
func (s *TenantService) GetTenant(ctx context.Context, slug string) (domain.Tenant, error) {
	ctx, cancel := withOpTimeout(ctx, s.OpTimeout)
	defer cancel()

	if slug == "" {
		return domain.Tenant{}, ErrMissingSlug
	}

	t, err := s.directory().Lookup(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch tenant",
			slog.String("slug", slug),
			slog.Any("error", err),
		)
		return domain.Tenant{}, storeFault(err)
	}
	return t, nil
}

// UpdateProfile applies upd to the tenant. Callers need OWNER, ADMIN or
// EDITOR. The slug and name are never changed here.
func (s *TenantService) UpdateProfile(
	ctx context.Context,
	userID string,
	slug string,
	upd domain.ProfileUpdate,
) (domain.Tenant, error) {
	ctx, cancel := withOpTimeout(ctx, s.OpTimeout)
	defer cancel()
	log := slogx.FromContext(ctx)

	// 1. Authorize
	access, err := s.guard().check(ctx, userID, slug, domain.EditContent)
	if err != nil {
		return domain.Tenant{}, err
	}

	// 2. Validate the update
	if err := validateProfileUpdate(upd); err != nil {
		return domain.Tenant{}, err
	}

	// 3. Apply against the stored row, not the cached copy
	var updated domain.Tenant
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Tenants().GetTenantByID(ctx, access.Tenant.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTenantNotFound
			}
			return err
		}

		if upd.Description != nil {
			current.Description = *upd.Description
		}
		if upd.Branding != nil {
			current.Branding = *upd.Branding
		}
		if upd.Settings != nil {
			current.Settings = *upd.Settings
		}
		current.UpdatedAt = s.Clock.now()

		if err := tx.Tenants().UpdateProfile(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrTenantNotFound) {
			log.Error("failed to update tenant profile",
				slog.String("tenant_id", access.Tenant.ID),
				slog.Any("error", err),
			)
		}
		return domain.Tenant{}, storeFault(err)
	}

	s.directory().Invalidate(slug)

	log.Info("tenant profile updated",
		slog.String("tenant_id", updated.ID),
		slog.String("user_id", userID),
		slog.String("role", access.Membership.Role.String()),
	)
	return updated, nil
}

// ListForUser returns every tenant userID belongs to together with the role
// held there.
func (s *TenantService) ListForUser(ctx context.Context, userID string) ([]domain.TenantMembership, error) {
	ctx, cancel := withOpTimeout(ctx, s.OpTimeout)
	defer cancel()

	if userID == "" {
		return nil, ErrUnauthenticated
	}

	list, err := s.Store.Memberships().ListByUser(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list memberships",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, storeFault(err)
	}
	return list, nil
}

func validateProfileUpdate(upd domain.ProfileUpdate) error {
	if upd.Empty() {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if err := domain.ValidateStruct(upd); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if upd.Branding != nil {
		if err := upd.Branding.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if upd.Settings != nil {
		if err := upd.Settings.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return nil
}

func (s *TenantService) directory() *TenantDirectory {
	if s.Directory != nil {
		return s.Directory
	}
	return &TenantDirectory{Store: s.Store}
}

func (s *TenantService) guard() *Guard {
	if s.Guard != nil {
		return s.Guard
	}
	return &Guard{Store: s.Store, Directory: s.directory(), Metrics: s.Metrics}
}
