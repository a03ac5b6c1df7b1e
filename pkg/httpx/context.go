package httpx

import "context"

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// Principal is the verified caller placed in the request context by
// AuthnMiddleware.
type Principal struct {
	Subject string
	Email   string
	Name    string
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFrom returns the caller, if AuthnMiddleware admitted one.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok && p.Subject != ""
}
