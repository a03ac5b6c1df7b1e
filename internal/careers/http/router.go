package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/observability"
	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/internal/careers/store"
	"github.com/aussiebroadwan/careers/pkg/httpx"
	"github.com/aussiebroadwan/careers/pkg/jwtx"
	"github.com/aussiebroadwan/careers/pkg/slogx"

	_ "github.com/aussiebroadwan/careers/api/careers" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *observability.Metrics

	store         store.Store
	Guard         *service.Guard
	TenantService *service.TenantService
	InviteService *service.InviteService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      metrics,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTenants()
	r.registerInvites()
	r.registerMe()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Careers Page Builder API
//	@version		0.1.0
//	@description	Multi-tenant careers pages. Companies (tenants) manage their public page through an editor gated by per-company roles.
//	@description
//	@description				Callers authenticate with an identity provider issued JWT; invites bind a role to a verified email.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/careers
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Identity provider JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, instrumented with the pattern as its
// route label.
func (r *Router) handle(pattern string, h http.Handler) {
	if r.metrics != nil {
		h = r.metrics.Instrument(pattern, h)
	}
	r.Mux.Handle(pattern, h)
}

func (r *Router) registerTenants() {
	createHandler := &TenantCreateHandler{TenantService: r.TenantService}
	getHandler := &TenantGetHandler{TenantService: r.TenantService}
	updateHandler := &TenantUpdateHandler{TenantService: r.TenantService}
	accessHandler := &TenantAccessHandler{}

	// POST /tenants - moderate rate limit by user
	r.handle("POST /v1/tenants",
		httpx.Chain(createHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
			httpx.RequireJSON(httpx.DefaultMaxBodyBytes),
		),
	)

	// GET /tenants/{slug} - public careers page lookup, high limit by IP
	r.handle("GET /v1/tenants/{slug}",
		httpx.Chain(getHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// PATCH /tenants/{slug} - moderate rate limit by user (content edits)
	r.handle("PATCH /v1/tenants/{slug}",
		httpx.Chain(updateHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
			httpx.RequireJSON(httpx.DefaultMaxBodyBytes),
		),
	)

	// GET /tenants/{slug}/access - lenient rate limit by user (editor gate)
	r.handle("GET /v1/tenants/{slug}/access",
		httpx.Chain(accessHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
			RequireTenantRole(r.Guard, domain.EditContent),
		),
	)
}

func (r *Router) registerInvites() {
	createHandler := &InviteCreateHandler{InviteService: r.InviteService}
	listHandler := &InviteListHandler{InviteService: r.InviteService}
	acceptHandler := &InviteAcceptHandler{InviteService: r.InviteService}

	r.handle("POST /v1/tenants/{slug}/invites",
		httpx.Chain(createHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
			httpx.RequireJSON(httpx.DefaultMaxBodyBytes),
		),
	)

	r.handle("GET /v1/tenants/{slug}/invites",
		httpx.Chain(listHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /invites/accept - strict rate limit by user (tokens could be guessed)
	r.handle("POST /v1/invites/accept",
		httpx.Chain(acceptHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
			httpx.RequireJSON(httpx.DefaultMaxBodyBytes),
		),
	)
}

func (r *Router) registerMe() {
	h := &MyTenantsHandler{TenantService: r.TenantService}

	r.handle("GET /v1/me/tenants",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
