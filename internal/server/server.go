package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/agbru/trampcalc/internal/calc"
	"github.com/agbru/trampcalc/internal/config"
	"github.com/agbru/trampcalc/internal/logging"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// Server serves calculations over HTTP.
type Server struct {
	httpServer *http.Server
	factory    *calc.Factory
	cfg        config.AppConfig
	logger     logging.Logger
	metrics    *Metrics
	security   SecurityConfig
	validate   *validator.Validate
	version    string
	startedAt  time.Time
}

// Option customizes a Server.
type Option func(*Server)

func WithLogger(l logging.Logger) Option { return func(s *Server) { s.logger = l } }

func WithSecurityConfig(c SecurityConfig) Option { return func(s *Server) { s.security = c } }

func WithVersion(v string) Option { return func(s *Server) { s.version = v } }

// NewServer builds a server listening on cfg.Addr. cfg supplies the
// per-request timeout and the same limits as the command line.
func NewServer(factory *calc.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:   factory,
		cfg:       cfg,
		logger:    logging.NewDefaultLogger(),
		metrics:   NewMetrics(),
		security:  DefaultSecurityConfig(),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		version:   "dev",
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.Timeout + readHeaderTimeout,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// Handler returns the routed handler with its middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(path string, h http.HandlerFunc) {
		mux.HandleFunc(path, s.requestIDMiddleware(SecurityMiddleware(s.security, s.metricsMiddleware(h))))
	}
	route("/ackermann", s.handleAckermann)
	route("/fibonacci", s.handleFibonacci)
	route("/health", s.handleHealth)
	route("/metrics", s.handleMetrics)
	return mux
}

// Start serves until ctx is canceled, then shuts down gracefully,
// letting in-flight calculations finish within shutdownTimeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()), logging.String("version", s.version))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveResponse(r.URL.Path, rec.status, time.Since(start))
	}
}
