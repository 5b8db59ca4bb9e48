package server

import (
	"log"
	"time"

	"github.com/agbru/polycalc/internal/logging"
	"github.com/agbru/polycalc/internal/service"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger, e.g. one writing to a test buffer.
//
// Parameters:
//   - logger: The logger to use. If nil, the default logger is kept.
//
// Returns:
//   - Option: A functional option that configures the server's logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger sets a standard library logger for the server, wrapped in a
// logging.StdLoggerAdapter.
//
// Parameters:
//   - logger: The standard log.Logger to use. If nil, the default logger is kept.
//
// Returns:
//   - Option: A functional option that configures the server's logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithService replaces the evaluation service, typically with a mock.
// A nil service keeps the default.
//
// Parameters:
//   - svc: The service implementation to use.
//
// Returns:
//   - Option: A functional option that configures the server's service.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

// WithTimeouts sets the server timeouts. Zero fields are passed to
// http.Server as is, which means no limit.
//
// Parameters:
//   - timeouts: The timeouts to apply.
//
// Returns:
//   - Option: A functional option that configures the server's timeouts.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// Timeouts holds the timeouts of the HTTP server.
type Timeouts struct {
	// RequestTimeout bounds a single evaluation.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration
	// ReadTimeout bounds reading the whole request, body included.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration
	// IdleTimeout bounds keep-alive waits between requests.
	IdleTimeout time.Duration
}

// DefaultServerTimeouts returns timeouts suited to interactive API use.
//
// Returns:
//   - Timeouts: A 30s evaluation and shutdown budget, 10s to read a request,
//     1m to write a response and 2m of keep-alive.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    1 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}
