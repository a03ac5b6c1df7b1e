package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/careers/pkg/jwtx"
	"github.com/aussiebroadwan/careers/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token and places the caller in the
// request context. Tokens without a verified email are refused.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", slog.Any("error", err))
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "token expired")
					return
				}
				writeBearerError(w, "token verification failed")
				return
			}

			if err := claims.ValidateIdentity(); err != nil {
				log.Warn("jwt identity rejected", slog.Any("error", err), slog.String("sub", claims.Subject))
				writeBearerError(w, "token lacks a verified email")
				return
			}

			ctx = WithPrincipal(ctx, Principal{
				Subject: claims.Subject,
				Email:   claims.Email,
				Name:    claims.Name,
			})
			ctx = slogx.With(ctx, "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthenticated", desc)
}
