package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
	"github.com/aussiebroadwan/careers/pkg/slogx"
)

// retryAfterSeconds is advertised on 503 responses.
const retryAfterSeconds = "1"

// exposure controls whether a missing tenant may be reported as such.
type exposure int

const (
	// protectedRoute folds a missing tenant into the same opaque denial as a
	// missing membership so probes cannot enumerate slugs.
	protectedRoute exposure = iota
	publicRoute
)

// writeServiceError maps service errors onto status codes and the error
// envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, exp exposure) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, careersdk.ErrorCodeUnauthenticated, "authentication required")

	case errors.Is(err, service.ErrMissingSlug), errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, careersdk.ErrorCodeInvalidRequest, describe(err))

	case errors.Is(err, service.ErrTenantNotFound) && exp == publicRoute:
		httpx.WriteError(w, http.StatusNotFound, careersdk.ErrorCodeNotFound, "tenant not found")

	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrTenantNotFound):
		httpx.WriteError(w, http.StatusForbidden, careersdk.ErrorCodeAccessDenied, "access denied")

	case errors.Is(err, service.ErrEmailMismatch):
		httpx.WriteError(w, http.StatusForbidden, careersdk.ErrorCodeEmailMismatch, "invite was issued to a different email")

	case errors.Is(err, service.ErrDuplicatePendingInvite):
		httpx.WriteError(w, http.StatusConflict, careersdk.ErrorCodeDuplicateInvite, "an invite is already pending for this email")

	case errors.Is(err, service.ErrSlugAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, careersdk.ErrorCodeSlugTaken, "slug already exists")

	case errors.Is(err, service.ErrInvalidOrExpiredInvite):
		httpx.WriteError(w, http.StatusGone, careersdk.ErrorCodeInviteExpired, "invite expired, request a new one")

	case service.IsRetryable(err):
		slogx.FromContext(r.Context()).Warn("store unavailable", slog.Any("error", err))
		w.Header().Set("Retry-After", retryAfterSeconds)
		httpx.WriteError(w, http.StatusServiceUnavailable, careersdk.ErrorCodeUnavailable, "service temporarily unavailable, retry shortly")

	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, careersdk.ErrorCodeServerError, "internal error")
	}
}

// describe strips the sentinel prefix so clients see only the detail.
func describe(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{service.ErrValidation, service.ErrMissingSlug} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, careersdk.ErrorCodeInvalidRequest, desc)
}
