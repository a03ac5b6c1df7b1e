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
	"github.com/aussiebroadwan/careers/pkg/cryptox"
	"github.com/aussiebroadwan/careers/pkg/idx"
	"github.com/aussiebroadwan/careers/pkg/slogx"
)

// inviteInput is the issuance request as seen by the validator.
type inviteInput struct {
	Email string `json:"email" validate:"required,max=254,email"`
	Role  string `json:"role" validate:"required,oneof=OWNER ADMIN EDITOR VIEWER"`
}

type InviteService struct {
	Store     store.Store
	Guard     *Guard
	Clock     Clock
	OpTimeout time.Duration
	InviteTTL time.Duration
	Metrics   Recorder
}

// CreateInvite issues an invite for email to join the tenant with role.
// The issuer must be an OWNER or ADMIN of the tenant. The raw token is only
// ever returned here.
func (s *InviteService) CreateInvite(
	ctx context.Context,
	issuerUserID string,
	slug string,
	email string,
	role domain.Role,
) (domain.IssuedInvite, error) {
	ctx, cancel := withOpTimeout(ctx, s.OpTimeout)
	defer cancel()
	log := slogx.FromContext(ctx)

	// 1. Authorize
	access, err := s.guard().check(ctx, issuerUserID, slug, domain.ManageMembers)
	if err != nil {
		return domain.IssuedInvite{}, err
	}

	// 2. Validate input; the address is stored exactly as given (minus
	// surrounding space) because acceptance matches it case-sensitively.
	in := inviteInput{Email: strings.TrimSpace(email), Role: role.String()}
	if err := domain.ValidateStruct(in); err != nil {
		return domain.IssuedInvite{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	email = in.Email

	// 3. Generate the bearer token; only its fingerprint is stored
	token, fingerprint, err := cryptox.NewInviteToken()
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return domain.IssuedInvite{}, err
	}

	now := s.Clock.now()
	invite := domain.Invite{
		ID:        idx.New(idx.KindInvite).String(),
		Email:     email,
		TenantID:  access.Tenant.ID,
		Role:      role,
		TokenHash: fingerprint,
		ExpiresAt: now.Add(s.inviteTTL()),
		InvitedBy: issuerUserID,
		CreatedAt: now,
	}

	// 4. Lapse any expired invite for the pair, then insert. The partial
	// unique index settles concurrent issuers.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Invites().LapseExpiredInvites(ctx, invite.TenantID, email, now); err != nil {
			return err
		}

		_, err := tx.Invites().GetPendingInvite(ctx, invite.TenantID, email, now)
		switch {
		case err == nil:
			return ErrDuplicatePendingInvite
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		if err := tx.Invites().CreateInvite(ctx, invite); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicatePendingInvite
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicatePendingInvite) {
			log.Warn("invite already pending",
				slog.String("tenant_id", invite.TenantID),
				slog.String("issuer_id", issuerUserID),
			)
			return domain.IssuedInvite{}, err
		}
		log.Error("failed to create invite",
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
		return domain.IssuedInvite{}, storeFault(err)
	}

	recorderOrNop(s.Metrics).InviteIssued(role.String())
	log.Info("invite created",
		slog.String("invite_id", invite.ID),
		slog.String("tenant_id", invite.TenantID),
		slog.String("issuer_id", issuerUserID),
		slog.String("role", role.String()),
		slog.Time("expires_at", invite.ExpiresAt),
	)

	return domain.IssuedInvite{Invite: invite, Token: token}, nil
}

// AcceptInvite redeems token for the verified identity.
// It performs the following steps:
// 1. Fingerprints the token and locks the invite row
// 2. Returns the existing membership when the same user replays the token
// 3. Rejects unknown, expired and foreign-accepted invites alike
// 4. Requires the invite email to match the identity email exactly
// 5. Mirrors the user, grants the invited role unless already a member and
// marks the invite accepted, all in one transaction
func (s *InviteService) AcceptInvite(
	ctx context.Context,
	identity domain.Identity,
	token string,
) (domain.Membership, error) {
	ctx, cancel := withOpTimeout(ctx, s.OpTimeout)
	defer cancel()
	log := slogx.FromContext(ctx)
	metrics := recorderOrNop(s.Metrics)

	if identity.UserID == "" || identity.Email == "" {
		return domain.Membership{}, ErrUnauthenticated
	}
	if strings.TrimSpace(token) == "" {
		return domain.Membership{}, fmt.Errorf("%w: token is required", ErrValidation)
	}
	token, err := cryptox.NormalizeToken(token)
	if err != nil {
		metrics.InviteAccepted(AcceptRejected)
		return domain.Membership{}, ErrInvalidOrExpiredInvite
	}
	fingerprint := cryptox.FingerprintToken(token)

	var (
		membership domain.Membership
		invite     domain.Invite
		outcome    string
	)
	accept := func(tx store.Tx) error {
		// 1. Lock the invite
		inv, err := tx.Invites().GetInviteByTokenHashForUpdate(ctx, fingerprint)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidOrExpiredInvite
			}
			return err
		}
		invite = inv

		// 2. Replay by the user who accepted it
		if inv.Accepted {
			if inv.AcceptedBy != identity.UserID {
				return ErrInvalidOrExpiredInvite
			}
			m, err := tx.Memberships().GetMembership(ctx, identity.UserID, inv.TenantID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrInvalidOrExpiredInvite
				}
				return err
			}
			membership, outcome = m, AcceptReplay
			return nil
		}

		// 3. Expiry is evaluated lazily here
		now := s.Clock.now()
		if inv.Expired(now) {
			return ErrInvalidOrExpiredInvite
		}

		// 4. Exact email match
		if inv.Email != identity.Email {
			return ErrEmailMismatch
		}

		// 5. Grant and mark
		user := identity.User()
		user.CreatedAt, user.UpdatedAt = now, now
		if err := tx.Users().UpsertUser(ctx, user); err != nil {
			return err
		}

		existing, err := tx.Memberships().GetMembership(ctx, identity.UserID, inv.TenantID)
		switch {
		case err == nil:
			membership, outcome = existing, AcceptExisting
		case errors.Is(err, store.ErrNotFound):
			membership = domain.Membership{
				UserID:    identity.UserID,
				TenantID:  inv.TenantID,
				Role:      inv.Role,
				CreatedAt: now,
			}
			if err := tx.Memberships().CreateMembership(ctx, membership); err != nil {
				return err
			}
			outcome = AcceptJoined
		default:
			return err
		}

		if err := tx.Invites().MarkInviteAccepted(ctx, inv.ID, identity.UserID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidOrExpiredInvite
			}
			return err
		}
		return nil
	}

	err = s.Store.WithTx(ctx, accept)
	if errors.Is(err, store.ErrAlreadyExists) {
		// The same user joined the tenant through another acceptance that
		// committed after our membership read. The retry sees that row and
		// takes the existing-member path.
		err = s.Store.WithTx(ctx, accept)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOrExpiredInvite):
			metrics.InviteAccepted(AcceptRejected)
			log.Warn("invite acceptance rejected",
				slog.String("user_id", identity.UserID),
				slog.String("invite_id", invite.ID),
			)
			return domain.Membership{}, err
		case errors.Is(err, ErrEmailMismatch):
			metrics.InviteAccepted(AcceptMismatch)
			log.Warn("invite acceptance attempted with a different email",
				slog.String("user_id", identity.UserID),
				slog.String("invite_id", invite.ID),
			)
			return domain.Membership{}, err
		}
		log.Error("failed to accept invite",
			slog.String("user_id", identity.UserID),
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
		return domain.Membership{}, storeFault(err)
	}

	metrics.InviteAccepted(outcome)
	log.Info("invite accepted",
		slog.String("invite_id", invite.ID),
		slog.String("tenant_id", membership.TenantID),
		slog.String("user_id", identity.UserID),
		slog.String("role", membership.Role.String()),
		slog.String("outcome", outcome),
	)

	return membership, nil
}

// ListPending returns the outstanding invites of a tenant. Callers need
// OWNER or ADMIN.
func (s *InviteService) ListPending(ctx context.Context, userID, slug string) ([]domain.Invite, error) {
	ctx, cancel := withOpTimeout(ctx, s.OpTimeout)
	defer cancel()

	access, err := s.guard().check(ctx, userID, slug, domain.ManageMembers)
	if err != nil {
		return nil, err
	}

	invites, err := s.Store.Invites().ListPendingInvites(ctx, access.Tenant.ID, s.Clock.now())
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list pending invites",
			slog.String("tenant_id", access.Tenant.ID),
			slog.Any("error", err),
		)
		return nil, storeFault(err)
	}
	return invites, nil
}

func (s *InviteService) inviteTTL() time.Duration {
	if s.InviteTTL <= 0 {
		return DefaultInviteTTL
	}
	return s.InviteTTL
}

func (s *InviteService) guard() *Guard {
	if s.Guard != nil {
		return s.Guard
	}
	return &Guard{Store: s.Store, Metrics: s.Metrics}
}
