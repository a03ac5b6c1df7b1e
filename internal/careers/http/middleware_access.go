package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/pkg/httpx"
)

type accessCtxKey struct{}

func withAccess(ctx context.Context, a service.Access) context.Context {
	return context.WithValue(ctx, accessCtxKey{}, a)
}

// accessFrom returns the Access stored by RequireTenantRole.
func accessFrom(ctx context.Context) (service.Access, bool) {
	a, ok := ctx.Value(accessCtxKey{}).(service.Access)
	return a, ok
}

// RequireTenantRole the caller must hold one of the allowed roles in the
// tenant named by the {slug} path value. It must sit inside
// AuthnMiddleware. On success the resolved Access is stored in the request
// context for the handler.
func RequireTenantRole(guard *service.Guard, allowed domain.RoleSet) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Resolve the caller from the verified token.
			caller, ok := identityFrom(r)
			if !ok {
				writeServiceError(w, r, service.ErrUnauthenticated, protectedRoute)
				return
			}

			// 2. Run the guard against the path tenant.
			access, err := guard.CheckAccess(r.Context(), caller.UserID, r.PathValue("slug"), allowed)
			if err != nil {
				writeServiceError(w, r, err, protectedRoute)
				return
			}

			next.ServeHTTP(w, r.WithContext(withAccess(r.Context(), access)))
		})
	}
}
