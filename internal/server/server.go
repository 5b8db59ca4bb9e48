package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/polycalc/internal/config"
	"github.com/agbru/polycalc/internal/engine"
	apperrors "github.com/agbru/polycalc/internal/errors"
	"github.com/agbru/polycalc/internal/logging"
	"github.com/agbru/polycalc/internal/service"
)

// Server is the HTTP front end of the polynomial calculator. It wraps an
// http.Server with the middleware chain and graceful shutdown.
type Server struct {
	factory        engine.Factory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a Server for the operations of factory.
//
// Parameters:
//   - factory: The operation factory, also used by GET /operations.
//   - cfg: The application configuration (port and engine options).
//   - opts: Optional functional options (e.g. WithLogger, WithService).
//
// Returns:
//   - *Server: The initialized server.
func NewServer(factory engine.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		svc := service.NewEvaluatorService(s.factory, s.engineOptions(), s.securityConfig.MaxOperandLength)
		if cache, err := service.NewParseCache(service.DefaultParseCacheSize); err == nil {
			svc.WithParseCache(cache)
		}
		s.service = svc
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", s.wrapWithMiddleware(s.handleEvaluate))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/operations", s.wrapWithMiddleware(s.handleOperations))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// engineOptions returns the configured engine options, tightened to the
// server's security limits.
func (s *Server) engineOptions() engine.Options {
	opts := s.cfg.ToOptions()
	opts.MaxDegree = tighten(opts.MaxDegree, s.securityConfig.MaxDegree)
	opts.MaxExponent = tighten(opts.MaxExponent, s.securityConfig.MaxExponent)
	return opts
}

// tighten returns the smaller non-zero limit; 0 means unlimited.
func tighten(configured, limit uint64) uint64 {
	if limit == 0 || (configured != 0 && configured < limit) {
		return configured
	}
	return limit
}

// Handler returns the root handler with every route and middleware.
// Tests serve requests through it without opening a socket.
//
// Returns:
//   - http.Handler: The server's multiplexer.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies Security -> RateLimit -> Logging -> Metrics.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start listens on the configured port and blocks until SIGINT or SIGTERM,
// then shuts down gracefully.
//
// Returns:
//   - error: A ServerError if listening or shutdown fails.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)

	go func() {
		opts := s.engineOptions()
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.String("pow_strategy", opts.PowStrategy),
			logging.Uint64("max_degree", opts.MaxDegree),
			logging.Uint64("max_exponent", opts.MaxExponent),
			logging.Int("max_operand_length", s.securityConfig.MaxOperandLength),
		)
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET  /evaluate?op=<operation>&p=<polynomial>[&p=<polynomial>]")
		s.logger.Println("  POST /evaluate {\"op\": ..., \"operands\": [...]}")
		s.logger.Println("  GET  /operations")
		s.logger.Println("  GET  /health")
		s.logger.Println("  GET  /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Println("Server stopped gracefully")
	return nil
}
