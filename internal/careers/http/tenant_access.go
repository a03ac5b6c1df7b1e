package http

import (
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

// TenantAccessHandler reports the Access resolved by RequireTenantRole.
type TenantAccessHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Editor Access Check
//	@Description	Succeeds when the caller may open the editor of the tenant (OWNER, ADMIN or EDITOR). Unknown tenants and missing memberships yield the same 403.
//	@Tags			Tenants
//	@Produce		json
//	@Param			slug	path		string	true	"Tenant slug"
//	@Success		200		{object}	careersdk.AccessResponse
//	@Failure		401		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	careersdk.ErrorResponse	"access denied"
//	@Failure		503		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants/{slug}/access [get].
func (h *TenantAccessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	access, ok := accessFrom(r.Context())
	if !ok {
		writeServiceError(w, r, service.ErrUnauthenticated, protectedRoute)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, careersdk.AccessResponse{
		Tenant: toTenantResponse(r.Context(), access.Tenant),
		Role:   access.Membership.Role.String(),
	})
}
