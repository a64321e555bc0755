// Package server exposes the measurement form over HTTP: a server-rendered
// page that works without JavaScript plus a small JSON API over the same
// per-visitor controller.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-fnaform/pkg/orchestrator"
	"github.com/goliatone/go-fnaform/pkg/prediction"
	"github.com/goliatone/go-fnaform/pkg/renderers/vanilla"
)

const (
	defaultAddr          = "127.0.0.1:3000"
	defaultShutdownGrace = 5 * time.Second
	defaultSessionTTL    = 30 * time.Minute
	defaultMaxSessions   = 1000
)

// HealthChecker is implemented by predictors that can report whether the
// prediction service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server holds the router, page orchestrator and session store.
type Server struct {
	cfg        config
	router     *mux.Router
	pages      *orchestrator.Orchestrator
	sessions   *sessionStore
	predictor  prediction.Predictor
	httpServer *http.Server
}

// New wires routes around predictor.
func New(predictor prediction.Predictor, options ...Option) (*Server, error) {
	if predictor == nil {
		return nil, errors.New("server: predictor is required")
	}
	cfg := config{
		addr:          defaultAddr,
		shutdownGrace: defaultShutdownGrace,
		sessionTTL:    defaultSessionTTL,
		maxSessions:   defaultMaxSessions,
		logger:        zap.NewNop(),
		now:           time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	pages, err := orchestrator.New(orchestrator.WithVanillaOptions(cfg.vanillaOptions...))
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		router:    mux.NewRouter(),
		pages:     pages,
		sessions:  newSessionStore(predictor, cfg.sessionTTL, cfg.maxSessions, cfg.now, cfg.logger),
		predictor: predictor,
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down within the
// configured grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.logger.Info("server listening", zap.String("addr", listener.Addr().String()))
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownGrace)
	defer cancel()
	s.cfg.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	s.router.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleFormPost).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/openapi.yaml", s.handleOpenAPI).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/fields/{id}", s.handleFieldChange).Methods(http.MethodPost)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodPost)

	assets := http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS())))
	s.router.PathPrefix("/assets/").Handler(assets)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.cfg.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.cfg.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", s.cfg.now().Sub(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
