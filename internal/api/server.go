// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the HTTP composition root of the back office.

It owns the chi routing tree, the global middleware chain and the
[http.Server] lifecycle. Domain packages contribute their own sub-routers;
cross-domain glue, such as resolving economics owners, also lives here so the
domain packages never import each other.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/talento/internal/core/artist"
	"github.com/taibuivan/talento/internal/core/economics"
	"github.com/taibuivan/talento/internal/core/party"
	"github.com/taibuivan/talento/internal/core/validation"
	"github.com/taibuivan/talento/internal/platform/config"
	"github.com/taibuivan/talento/internal/platform/constants"
	"github.com/taibuivan/talento/internal/platform/middleware"
)

// Handlers is everything the router mounts.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Party      *party.Handler
	Artist     *artist.Handler
	Economics  *economics.Handler
	Validation *validation.Handler
}

// Server is the listening back-office API.
type Server struct {
	http *http.Server
	log  *slog.Logger
}

// NewServer binds the router to cfg.Server.Port with the platform timeouts.
// context stops background work started by the middleware, such as the rate limiter sweep.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	return &Server{
		log: log,
		http: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           NewRouter(context, cfg, log, verifier, h),
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
	}
}

/*
NewRouter builds the routing tree without a listener.

Routes:
  - /health, /ready: unauthenticated probes
  - /api/v1/{parties,artists,economics,validate}: staff token required

The global chain runs in this order: request id, access log, timeout, rate
limit, panic recovery, CORS, path cleaning. With SERVER_TRUST_PROXY the peer
address is first rewritten from the proxy headers.
*/
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	router := chi.NewRouter()

	if cfg.Server.TrustProxy {
		router.Use(chimw.RealIP)
	}

	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(context, cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		middleware.PanicRecovery(log),
		middleware.CORS(cfg),
		chimw.CleanPath,
	)

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.Authenticate(verifier))

		v1.Mount("/parties", h.Party.Routes())
		v1.Mount("/artists", h.Artist.Routes())
		v1.Mount("/economics", h.Economics.Routes())
		v1.Mount("/validate", h.Validation.Routes())
	})

	return router
}

// ListenAndServe blocks until the server stops. A graceful stop returns http.ErrServerClosed.
func (server *Server) ListenAndServe() error {
	server.log.Info("server_starting", slog.String("addr", server.http.Addr))
	return server.http.ListenAndServe()
}

// Shutdown stops accepting requests and waits up to timeout for in-flight ones.
func (server *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.http.Shutdown(context)
}
