package http

import (
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

type TenantCreateHandler struct {
	TenantService *service.TenantService
}

// ServeHTTP godoc
//
//	@Summary		Create Tenant
//	@Description	Create a company workspace. The caller becomes its OWNER. When slug is omitted it is derived from the name.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		careersdk.CreateTenantRequest	true	"Tenant"
//	@Success		201		{object}	careersdk.TenantResponse
//	@Failure		400		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	careersdk.ErrorResponse	"slug already exists"
//	@Failure		503		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants [post].
func (h *TenantCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	creator, ok := identityFrom(r)
	if !ok {
		writeServiceError(w, r, service.ErrUnauthenticated, protectedRoute)
		return
	}

	var req careersdk.CreateTenantRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	tenant, err := h.TenantService.CreateTenant(ctx, creator, req.Name, req.Slug)
	if err != nil {
		writeServiceError(w, r, err, protectedRoute)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTenantResponse(r.Context(), tenant))
}
