package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

type TenantUpdateHandler struct {
	TenantService *service.TenantService
}

// ServeHTTP godoc
//
//	@Summary		Update Tenant Profile
//	@Description	Change description, branding or settings. Omitted members are left unchanged. Requires OWNER, ADMIN or EDITOR.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string							true	"Tenant slug"
//	@Param			request	body		careersdk.UpdateProfileRequest	true	"Profile changes"
//	@Success		200		{object}	careersdk.TenantResponse
//	@Failure		400		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	careersdk.ErrorResponse	"access denied"
//	@Failure		503		{object}	careersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants/{slug} [patch].
func (h *TenantUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := identityFrom(r)
	if !ok {
		writeServiceError(w, r, service.ErrUnauthenticated, protectedRoute)
		return
	}

	var req careersdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	// Branding and settings are checked here as well as in the service so a
	// malformed document never reaches the core.
	var upd domain.ProfileUpdate
	upd.Description = req.Description
	if present(req.Branding) {
		var b domain.Branding
		if err := json.Unmarshal(req.Branding, &b); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		if err := b.Validate(); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		upd.Branding = &b
	}
	if present(req.Settings) {
		var s domain.Settings
		if err := json.Unmarshal(req.Settings, &s); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		if err := s.Validate(); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		upd.Settings = &s
	}

	tenant, err := h.TenantService.UpdateProfile(ctx, caller.UserID, r.PathValue("slug"), upd)
	if err != nil {
		writeServiceError(w, r, err, protectedRoute)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTenantResponse(r.Context(), tenant))
}
