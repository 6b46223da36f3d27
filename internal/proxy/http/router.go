package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jasiripay/krabridge/internal/proxy/service"
	"github.com/jasiripay/krabridge/internal/proxy/store"
	"github.com/jasiripay/krabridge/pkg/httpx"
	"github.com/jasiripay/krabridge/pkg/slogx"

	_ "github.com/jasiripay/krabridge/api/krabridge" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.TokenStore

	TokenService   *service.TokenService
	ForwardService *service.ForwardService

	// Sandbox lookup targets; either may be empty on misconfigured
	// deployments and is reported per request.
	PinByIDURL  string
	PinByPinURL string
}

func NewRouter(buildVersion string, st store.TokenStore, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerProxy()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			KRA Sandbox Bridge API
//	@version		0.1.0
//	@description	Backend proxy for the KRA sandbox: caches per-app OAuth2 client-credential tokens
//	@description	and forwards PIN lookups with bearer authentication, transient-failure retry and
//	@description	401-triggered token refresh.
//
//	@contact.name	Jasiri Pay Platform Team
//	@contact.url	https://github.com/jasiripay/krabridge
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerProxy() {
	// POST /token/ - strict rate limit; every hit is a forced fetch against
	// the sandbox identity provider.
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /token/{$}",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /pin-by-id/ - moderate rate limit
	pinByID := &PinByIDHandler{ForwardService: r.ForwardService, TargetURL: r.PinByIDURL}
	r.Mux.Handle("POST /pin-by-id/{$}",
		httpx.Chain(pinByID,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /pin-by-pin/ - moderate rate limit
	pinByPin := &PinByPinHandler{ForwardService: r.ForwardService, TargetURL: r.PinByPinURL}
	r.Mux.Handle("POST /pin-by-pin/{$}",
		httpx.Chain(pinByPin,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	targetsConfigured := r.PinByIDURL != "" && r.PinByPinURL != ""

	// Health endpoints - lenient rate limits (monitoring systems poll these)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, targetsConfigured),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
