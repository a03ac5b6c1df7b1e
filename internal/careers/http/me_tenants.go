package http

import (
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

type MyTenantsHandler struct {
	TenantService *service.TenantService
}

// ServeHTTP godoc
//
//	@Summary		My Tenants
//	@Description	List the tenants the caller belongs to, with the role held in each.
//	@Tags			Tenants
//	@Produce		json
//	@Success		200	{object}	careersdk.MyTenantsResponse
//	@Failure		401	{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		503	{object}	careersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/me/tenants [get].
func (h *MyTenantsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(r)
	if !ok {
		writeServiceError(w, r, service.ErrUnauthenticated, protectedRoute)
		return
	}

	list, err := h.TenantService.ListForUser(r.Context(), caller.UserID)
	if err != nil {
		writeServiceError(w, r, err, protectedRoute)
		return
	}

	resp := careersdk.MyTenantsResponse{Tenants: make([]careersdk.MyTenant, 0, len(list))}
	for _, tm := range list {
		resp.Tenants = append(resp.Tenants, careersdk.MyTenant{
			Tenant: toTenantResponse(r.Context(), tm.Tenant),
			Role:   tm.Membership.Role.String(),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
