package http

import (
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

type TenantGetHandler struct {
	TenantService *service.TenantService
}

// ServeHTTP godoc
//
//	@Summary		Get Tenant
//	@Description	Public careers page lookup by slug.
//	@Tags			Tenants
//	@Produce		json
//	@Param			slug	path		string	true	"Tenant slug"
//	@Success		200		{object}	careersdk.TenantResponse
//	@Failure		404		{object}	careersdk.ErrorResponse	"tenant not found"
//	@Failure		503		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/tenants/{slug} [get].
func (h *TenantGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.TenantService.GetTenant(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, r, err, publicRoute)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTenantResponse(r.Context(), tenant))
}
