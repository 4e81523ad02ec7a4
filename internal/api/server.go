// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation layer boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/quillpad/internal/admin"
	"github.com/taibuivan/quillpad/internal/content/blog"
	"github.com/taibuivan/quillpad/internal/content/comment"
	"github.com/taibuivan/quillpad/internal/content/guideline"
	"github.com/taibuivan/quillpad/internal/content/tag"
	"github.com/taibuivan/quillpad/internal/media"
	"github.com/taibuivan/quillpad/internal/platform/config"
	"github.com/taibuivan/quillpad/internal/platform/constants"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	"github.com/taibuivan/quillpad/internal/users/account"
	"github.com/taibuivan/quillpad/internal/users/auth"
	"github.com/taibuivan/quillpad/internal/users/elevation"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 503 when a dependency is down.
	Readiness http.HandlerFunc

	Auth      *auth.Handler
	Account   *account.Handler
	Elevation *elevation.Handler
	Blog      *blog.Handler
	Comment   *comment.Handler
	Tag       *tag.Handler
	Guideline *guideline.Handler
	Admin     *admin.Handler
	Media     *media.Handler
}

// Security bundles the token verifier and the role-change session checker
// used by [middleware.Authenticate].
type Security struct {
	Verifier middleware.TokenVerifier
	Sessions middleware.SessionChecker
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, security Security, h Handlers) *Server {
	r := NewRouter(context, cfg, log, security, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

/*
NewRouter builds the routing tree.

# Layout

	/health, /ready                infrastructure probes
	/api/auth                      register, login
	/api/admin-requests            elevation request lifecycle
	/api/superadmin/users          account management (superadmin)
	/api/superadmin/reported       reported posts (admin, superadmin)
	/api/users                     self-service profile
	/api/blogs, /comments, /tags   content
	/api/guidelines                community guidelines
	/api/admin/stats               dashboard totals
	/api/media                     image upload
*/
func NewRouter(context context.Context, cfg middleware.AppConfig, log *slog.Logger, security Security, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(security.Verifier, security.Sessions))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/admin-requests", h.Elevation.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/blogs", h.Blog.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/tags", h.Tag.Routes())
		api.Mount("/guidelines", h.Guideline.Routes())
		api.Mount("/admin", h.Admin.Routes())
		api.Mount("/media", h.Media.Routes())

		api.Route("/superadmin", func(superadmin chi.Router) {
			h.Account.RegisterSuperadminRoutes(superadmin)
			h.Blog.RegisterModerationRoutes(superadmin)
		})
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
