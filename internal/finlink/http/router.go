package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/metrics"
	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/httpx"
	"github.com/aussiebroadwan/finlink/pkg/jwtx"
	"github.com/aussiebroadwan/finlink/pkg/slogx"

	_ "github.com/aussiebroadwan/finlink/api/finlink" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	metrics *metrics.Metrics

	Sessions    *service.SessionService
	Data        *service.LinkDataService
	Credentials *store.Credentials
	Institution *service.InstitutionService
	Dashboard   *service.DashboardService
	Health      *service.HealthMonitor
	Widget      widget.Provider
	Hosted      *widget.Hosted // Optional: only with WIDGET_MODE=hosted
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      m,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerLink()
	r.registerData()
	r.registerConfig()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			finlink API
//	@version		0.1.0
//	@description	Personal finance dashboard backend. Links a bank account through an aggregation
//	@description	backend, falling back to simulated data when the backend is disabled or unreachable.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/finlink
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
//	@description				Session token from /v1/session/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with session authentication and a per-session limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, r.Sessions.IsLive),
		httpx.RateLimitBySession(limit),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{Sessions: r.Sessions}

	// POST /login - strict rate limit by IP
	r.Mux.Handle("POST /v1/session/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/session/logout", r.secured(http.HandlerFunc(h.HandleLogout), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/session", r.secured(http.HandlerFunc(h.HandleGet), httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/session", r.secured(http.HandlerFunc(h.HandleUpdateProfile), httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/session/preferences", r.secured(http.HandlerFunc(h.HandleUpdatePreferences), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/session/password", r.secured(http.HandlerFunc(h.HandleChangePassword), httpx.StrictLimit))
}

func (r *Router) registerLink() {
	h := &LinkHandler{
		Sessions: r.Sessions,
		Widget:   r.Widget,
		Hosted:   r.Hosted,
		Health:   r.Health,
	}

	// Starting or refreshing a link fans out to the backend.
	r.Mux.Handle("POST /v1/link/connect", r.secured(http.HandlerFunc(h.HandleConnect), httpx.StrictLimit))
	r.Mux.Handle("POST /v1/link/refresh", r.secured(http.HandlerFunc(h.HandleRefresh), httpx.StrictLimit))
	r.Mux.Handle("POST /v1/link/disconnect", r.secured(http.HandlerFunc(h.HandleDisconnect), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/link/status", r.secured(http.HandlerFunc(h.HandleStatus), httpx.PublicLimit))
	r.Mux.Handle("POST /v1/link/callback", r.secured(http.HandlerFunc(h.HandleCallback), httpx.ModerateLimit))

	r.Mux.Handle("GET /v1/notifications",
		r.secured(&NotificationsHandler{Sessions: r.Sessions}, httpx.PublicLimit),
	)
}

func (r *Router) registerData() {
	h := &DataHandler{
		Sessions:    r.Sessions,
		Institution: r.Institution,
		Dashboard:   r.Dashboard,
	}

	r.Mux.Handle("GET /v1/accounts", r.secured(http.HandlerFunc(h.HandleAccounts), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/transactions", r.secured(http.HandlerFunc(h.HandleTransactions), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/transactions/manual", r.secured(http.HandlerFunc(h.HandleAddManual), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/dashboard", r.secured(http.HandlerFunc(h.HandleDashboard), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/dashboard/transactions", r.secured(http.HandlerFunc(h.HandleTransactionPage), httpx.ModerateLimit))
}

func (r *Router) registerConfig() {
	h := &ConfigHandler{
		Data:        r.Data,
		Credentials: r.Credentials,
		Widget:      r.Widget,
		Health:      r.Health,
	}

	r.Mux.Handle("GET /v1/config", r.secured(http.HandlerFunc(h.HandleGet), httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/config", r.secured(http.HandlerFunc(h.HandlePut), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/config/health", r.secured(http.HandlerFunc(h.HandleHealth), httpx.StrictLimit))
}

func (r *Router) registerSystem() {
	// Probes and scrapes - public limits, monitoring may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Health),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /metrics",
		httpx.Chain(r.metrics.Handler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
