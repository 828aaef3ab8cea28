// Package web provides the JSON API the admin front end consumes.
// Stateless design - sessions are JWT tokens, no server-side storage.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/artpar/admingate/adapters/auth"
	"github.com/artpar/admingate/adapters/metrics"
	"github.com/artpar/admingate/core/registry"
	"github.com/artpar/admingate/ports"
)

// SessionCookie is the cookie carrying the admin session token.
const SessionCookie = "admingate_session"

// Handler provides the admin API endpoints.
type Handler struct {
	registry      func() *registry.Registry
	sessions      ports.SessionStore
	authenticator *auth.Authenticator
	sessionTTL    time.Duration
	logger        zerolog.Logger
	metrics       *metrics.Collector
	metricsPath   string
	startTime     time.Time
}

// Deps contains dependencies for the web handler.
type Deps struct {
	// Registry returns the current resource registry. Called per
	// request so config hot reload swaps the registry atomically.
	Registry func() *registry.Registry

	// Sessions issues and validates session tokens. Optional: when nil
	// (together with Authenticator) the panel runs unauthenticated.
	Sessions ports.SessionStore

	// Authenticator verifies admin credentials. Optional.
	Authenticator *auth.Authenticator

	SessionTTL time.Duration
	Logger     zerolog.Logger
	Metrics    *metrics.Collector

	// MetricsPath is where the Prometheus endpoint is mounted.
	// Defaults to /metrics.
	MetricsPath string
}

// NewHandler creates a new admin API handler.
func NewHandler(deps Deps) *Handler {
	ttl := deps.SessionTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	metricsPath := deps.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	return &Handler{
		registry:      deps.Registry,
		sessions:      deps.Sessions,
		authenticator: deps.Authenticator,
		sessionTTL:    ttl,
		logger:        deps.Logger,
		metrics:       deps.Metrics,
		metricsPath:   metricsPath,
		startTime:     time.Now(),
	}
}

// Router returns the admin API router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(h.logger, h.metricsPath))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	if h.metrics != nil {
		r.Use(NewMetricsMiddleware(h.metrics, h.metricsPath))
		r.Handle(h.metricsPath, promhttp.Handler())
	}

	// Health endpoints (no auth required)
	r.Get("/health", h.Health)

	// Session endpoints (login needs no auth)
	r.Post("/api/session", h.Login)
	r.Delete("/api/session", h.Logout)

	// Protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Get("/api/pages", h.Pages)
		r.Get("/api/resources", h.ListResources)
		r.Get("/api/resources/{resourceID}", h.GetResource)
		r.Get("/api/resources/{resourceID}/records", h.ListRecords)
		r.Get("/api/resources/{resourceID}/records/{recordID}", h.GetRecord)
	})

	return r
}

// AuthMiddleware resolves the session token into a CurrentAdmin.
// When no authenticator is configured the panel runs open and every
// request is anonymous.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.authenticator == nil || h.sessions == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := sessionToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Session token required")
			return
		}

		admin, err := h.sessions.Resolve(token)
		if err != nil {
			if h.metrics != nil {
				h.metrics.AuthFailures.Inc()
			}
			writeError(w, http.StatusUnauthorized, "invalid_session", "Session token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r.WithContext(withAdmin(r.Context(), admin)))
	})
}

// sessionToken extracts the session token from the cookie or, as a
// fallback for API clients, the Authorization header.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
