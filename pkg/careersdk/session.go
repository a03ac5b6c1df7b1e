package careersdk

import (
	"context"
	"net/http"
)

// CreateTenant creates a tenant owned by the session user.
func (s *Session) CreateTenant(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, "/v1/tenants", req)
	if err != nil {
		return nil, err
	}

	var tenant TenantResponse
	if err := decodeJSON(resp, &tenant, http.StatusCreated); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// UpdateProfile changes the description, branding or settings of a tenant.
// Requires OWNER, ADMIN or EDITOR.
func (s *Session) UpdateProfile(ctx context.Context, slug string, req UpdateProfileRequest) (*TenantResponse, error) {
	resp, err := s.doJSON(ctx, http.MethodPatch, tenantPath(slug), req)
	if err != nil {
		return nil, err
	}

	var tenant TenantResponse
	if err := decodeJSON(resp, &tenant, http.StatusOK); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// CheckAccess asks whether the session user may open the editor of a tenant.
func (s *Session) CheckAccess(ctx context.Context, slug string) (*AccessResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, tenantPath(slug)+"/access", nil, nil)
	if err != nil {
		return nil, err
	}

	var access AccessResponse
	if err := decodeJSON(resp, &access, http.StatusOK); err != nil {
		return nil, err
	}
	return &access, nil
}

// CreateInvite issues an invite. The returned Token is shown only once.
// Requires OWNER or ADMIN.
func (s *Session) CreateInvite(ctx context.Context, slug string, req CreateInviteRequest) (*InviteResponse, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, tenantPath(slug)+"/invites", req)
	if err != nil {
		return nil, err
	}

	var invite InviteResponse
	if err := decodeJSON(resp, &invite, http.StatusCreated); err != nil {
		return nil, err
	}
	return &invite, nil
}

// ListInvites lists outstanding invites. Requires OWNER or ADMIN.
func (s *Session) ListInvites(ctx context.Context, slug string) (*InviteListResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, tenantPath(slug)+"/invites", nil, nil)
	if err != nil {
		return nil, err
	}

	var list InviteListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// AcceptInvite redeems an invite token for the session user. Accepting a
// token the user already accepted returns the same membership.
func (s *Session) AcceptInvite(ctx context.Context, token string) (*MembershipResponse, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, "/v1/invites/accept", AcceptInviteRequest{Token: token})
	if err != nil {
		return nil, err
	}

	var membership MembershipResponse
	if err := decodeJSON(resp, &membership, http.StatusOK); err != nil {
		return nil, err
	}
	return &membership, nil
}

// MyTenants lists the tenants the session user belongs to.
func (s *Session) MyTenants(ctx context.Context) (*MyTenantsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me/tenants", nil, nil)
	if err != nil {
		return nil, err
	}

	var list MyTenantsResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}
