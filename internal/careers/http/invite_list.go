package http

import (
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

type InviteListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		List Pending Invites
//	@Description	Outstanding invites of the tenant, newest first. Tokens are never included. Requires OWNER or ADMIN.
//	@Tags			Invitations
//	@Produce		json
//	@Param			slug	path		string	true	"Tenant slug"
//	@Success		200		{object}	careersdk.InviteListResponse
//	@Failure		401		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	careersdk.ErrorResponse	"access denied"
//	@Failure		503		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants/{slug}/invites [get].
func (h *InviteListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(r)
	if !ok {
		writeServiceError(w, r, service.ErrUnauthenticated, protectedRoute)
		return
	}

	invites, err := h.InviteService.ListPending(r.Context(), caller.UserID, r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, r, err, protectedRoute)
		return
	}

	resp := careersdk.InviteListResponse{Invites: make([]careersdk.InviteResponse, 0, len(invites))}
	for _, inv := range invites {
		resp.Invites = append(resp.Invites, toInviteResponse(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
