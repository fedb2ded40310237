// ABOUTME: HTTP server assembly for the agent console
// ABOUTME: Wires store, services, and admin routes; handles graceful shutdown

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/helpdeskhq/agent-console/internal/auth"
	"github.com/helpdeskhq/agent-console/internal/config"
	"github.com/helpdeskhq/agent-console/internal/console"
	"github.com/helpdeskhq/agent-console/internal/prompt"
	"github.com/helpdeskhq/agent-console/internal/store"
	"github.com/helpdeskhq/agent-console/internal/webadmin"
)

// shutdownTimeout bounds how long in-flight requests get on shutdown
const shutdownTimeout = 10 * time.Second

// Server runs the console HTTP API on top of a SQLite store.
type Server struct {
	cfg        *config.Config
	store      store.Store
	httpServer *http.Server
	logger     *slog.Logger
}

// New opens the store and assembles the full handler chain.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	verifier := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	composer := prompt.Composer{Institution: cfg.Console.Institution}

	admin := webadmin.New(
		s,
		console.NewDepartmentService(s),
		console.NewAgentService(s, composer),
		verifier,
		webadmin.Config{
			BaseURL:  cfg.Console.BaseURL,
			TokenTTL: cfg.Auth.TokenTTL,
		},
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	admin.RegisterRoutes(mux)

	srv := &Server{
		cfg:    cfg,
		store:  s,
		logger: logger.With("component", "server"),
	}
	srv.httpServer = &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.logRequests(mux),
	}
	return srv, nil
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.store.Close()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	if closeErr := s.store.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Handler exposes the assembled handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// statusRecorder captures the response status for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs one line per request with method, path, status, and timing
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
