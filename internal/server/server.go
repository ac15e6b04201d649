package server

import (
	"context"
	"net/http"
	"time"

	"github.com/stellaracademy/academy-be/internal/auth"
	"github.com/stellaracademy/academy-be/internal/config"
	"github.com/stellaracademy/academy-be/internal/gemini"
	"github.com/stellaracademy/academy-be/internal/http/handlers"
	"github.com/stellaracademy/academy-be/internal/middleware"
	"github.com/stellaracademy/academy-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	mux := http.NewServeMux()

	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	svc := auth.NewService(store, store, tokens)
	authHandler := handlers.NewAuthHandler(svc)
	authHandler.Register(mux)

	courses := handlers.NewCoursesHandler(store)
	courses.Register(mux)

	guard := middleware.RequireAuth(tokens)

	users := handlers.NewUsersHandler(store, store)
	users.Register(mux, guard)

	ai := handlers.NewAIHandler(gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel))
	ai.Register(mux, guard)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
