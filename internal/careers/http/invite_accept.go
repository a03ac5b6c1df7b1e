package http

import (
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

type InviteAcceptHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invite
//	@Description	Redeem an invite token. The caller's verified email must match the invite exactly. Accepting the same token again returns the same membership.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		careersdk.AcceptInviteRequest	true	"Invite token"
//	@Success		200		{object}	careersdk.MembershipResponse
//	@Failure		400		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	careersdk.ErrorResponse	"email mismatch"
//	@Failure		410		{object}	careersdk.ErrorResponse	"invite expired, request a new one"
//	@Failure		503		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/accept [post].
func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := identityFrom(r)
	if !ok {
		writeServiceError(w, r, service.ErrUnauthenticated, protectedRoute)
		return
	}

	var req careersdk.AcceptInviteRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Token == "" {
		writeBadRequest(w, "invite token is required")
		return
	}

	membership, err := h.InviteService.AcceptInvite(ctx, caller, req.Token)
	if err != nil {
		writeServiceError(w, r, err, protectedRoute)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMembershipResponse(membership))
}
