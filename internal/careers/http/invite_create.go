package http

import (
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

type InviteCreateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite a Member
//	@Description	Issue an email-bound invite to join the tenant with a role. The token is returned once and never again. Requires OWNER or ADMIN.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string							true	"Tenant slug"
//	@Param			request	body		careersdk.CreateInviteRequest	true	"Invite request"
//	@Success		201		{object}	careersdk.InviteResponse		"invite including its one-time token"
//	@Failure		400		{object}	careersdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	careersdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	careersdk.ErrorResponse			"access denied"
//	@Failure		409		{object}	careersdk.ErrorResponse			"an invite is already pending"
//	@Failure		503		{object}	careersdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants/{slug}/invites [post].
func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	issuer, ok := identityFrom(r)
	if !ok {
		writeServiceError(w, r, service.ErrUnauthenticated, protectedRoute)
		return
	}

	var req careersdk.CreateInviteRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Role == "" {
		writeBadRequest(w, "email and role are required")
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeBadRequest(w, "role must be one of OWNER, ADMIN, EDITOR, VIEWER")
		return
	}

	issued, err := h.InviteService.CreateInvite(ctx, issuer.UserID, r.PathValue("slug"), req.Email, role)
	if err != nil {
		writeServiceError(w, r, err, protectedRoute)
		return
	}

	resp := toInviteResponse(issued.Invite)
	resp.Token = issued.Token
	httpx.WriteJSON(w, http.StatusCreated, resp)
}
