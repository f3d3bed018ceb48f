package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/secondchance/secondchance/internal/server/handlers"
	"github.com/secondchance/secondchance/internal/server/middleware"
)

// RouterConfig carries the handlers and middleware knobs for NewRouter.
type RouterConfig struct {
	Logger          *slog.Logger
	Auth            *handlers.AuthHandler
	Health          *handlers.HealthHandler
	RateLimit       int
	RateLimitWindow time.Duration
}

// NewRouter mounts the credential routes under /api/auth and wraps the mux
// with CORS, recovery and request logging. Rate limiting applies to the auth
// routes only, to slow down password guessing without throttling probes.
func NewRouter(cfg RouterConfig) http.Handler {
	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /api/auth/register", cfg.Auth.Register)
	authMux.HandleFunc("POST /api/auth/login", cfg.Auth.Login)
	authMux.HandleFunc("PUT /api/auth/update", cfg.Auth.Update)

	var authHandler http.Handler = authMux
	if cfg.RateLimit > 0 {
		authHandler = middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow, cfg.Logger)(authHandler)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/auth/", authHandler)
	mux.HandleFunc("GET /api/health", cfg.Health.Health)

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(cfg.Logger, []string{"/api/health"})(handler)
	handler = middleware.Recovery(cfg.Logger)(handler)
	handler = middleware.CORS(handler)

	return handler
}
