package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
	"github.com/aussiebroadwan/careers/pkg/slogx"
)

// identityFrom returns the verified caller placed by httpx.AuthnMiddleware.
func identityFrom(r *http.Request) (domain.Identity, bool) {
	p, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		return domain.Identity{}, false
	}
	return domain.Identity{UserID: p.Subject, Email: p.Email, Name: p.Name}, true
}

func toTenantResponse(ctx context.Context, t domain.Tenant) careersdk.TenantResponse {
	branding := marshalOrEmpty(ctx, "branding", t.Branding)
	settings := marshalOrEmpty(ctx, "settings", t.Settings)
	return careersdk.TenantResponse{
		ID:          t.ID,
		Slug:        t.Slug,
		Name:        t.Name,
		Description: t.Description,
		Branding:    branding,
		Settings:    settings,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// marshalOrEmpty encodes a stored JSON column for a response. A value that
// no longer encodes is logged and served as {} so the page still renders.
func marshalOrEmpty(ctx context.Context, field string, v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to encode tenant field",
			slog.String("field", field),
			slog.Any("error", err),
		)
		return json.RawMessage("{}")
	}
	return b
}

func toMembershipResponse(m domain.Membership) careersdk.MembershipResponse {
	return careersdk.MembershipResponse{
		UserID:    m.UserID,
		TenantID:  m.TenantID,
		Role:      m.Role.String(),
		CreatedAt: m.CreatedAt,
	}
}

func toInviteResponse(inv domain.Invite) careersdk.InviteResponse {
	return careersdk.InviteResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role.String(),
		TenantID:  inv.TenantID,
		InvitedBy: inv.InvitedBy,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

// present reports whether an optional JSON member was sent with a value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
