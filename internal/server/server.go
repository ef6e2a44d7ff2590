package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/society-be/internal/auth"
	"github.com/hongminglow/society-be/internal/config"
	"github.com/hongminglow/society-be/internal/events"
	"github.com/hongminglow/society-be/internal/http/handlers"
	"github.com/hongminglow/society-be/internal/middleware"
	"github.com/hongminglow/society-be/internal/ratelimit"
	"github.com/hongminglow/society-be/internal/storage"
)

// Deps are the collaborators the HTTP layer is built from.
// Limiter and Publisher are optional.
type Deps struct {
	Store     storage.Store
	Limiter   ratelimit.Limiter
	Publisher events.Publisher
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewHandler builds the full routing tree wrapped in CORS and request logging.
func NewHandler(cfg config.Config, deps Deps) http.Handler {
	if deps.Publisher == nil {
		deps.Publisher = events.Noop{}
	}

	mux := http.NewServeMux()
	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	gates := handlers.NewGates(tokenManager)

	handlers.NewAuthHandler(deps.Store, tokenManager, deps.Limiter, cfg.TrustProxy).Register(mux)
	handlers.NewNoticeHandler(deps.Store, gates, deps.Publisher).Register(mux)
	handlers.NewMemberHandler(deps.Store, gates, deps.Publisher).Register(mux)
	handlers.NewFundHandler(deps.Store, gates, deps.Publisher).Register(mux)

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
