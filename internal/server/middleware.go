package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/polycalc/internal/logging"
)

// RequestIDHeader carries the identifier of a request. A client-supplied
// value is kept; otherwise a random UUID is assigned. The identifier is
// echoed on the response and logged.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied identifiers.
const maxRequestIDLength = 128

// WithRateLimiter replaces the default per-client rate limiter.
// The server stops it when Start returns.
//
// Parameters:
//   - rl: The rate limiter to use.
//
// Returns:
//   - Option: A functional option that configures the server's rate limiter.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		s.rateLimiter = rl
	}
}

// WithSecurityConfig replaces the security headers, CORS policy and
// resource limits of the server.
//
// Parameters:
//   - config: The security configuration to apply.
//
// Returns:
//   - Option: A functional option that configures the server's security.
func WithSecurityConfig(config SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = config
	}
}

// WithMaxOperandLength bounds the length in bytes of each operand.
//
// Parameters:
//   - n: The maximum length (0 for no limit).
//
// Returns:
//   - Option: A functional option that configures the limit.
func WithMaxOperandLength(n int) Option {
	return func(s *Server) {
		s.securityConfig.MaxOperandLength = n
	}
}

// WithMaxDegree bounds the degree of any result.
//
// Parameters:
//   - n: The maximum degree (0 for no limit).
//
// Returns:
//   - Option: A functional option that configures the limit.
func WithMaxDegree(n uint64) Option {
	return func(s *Server) {
		s.securityConfig.MaxDegree = n
	}
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

// requestID returns the identifier of r, generating one if the client sent
// none or an oversized one.
func requestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
	if id == "" || len(id) > maxRequestIDLength {
		return uuid.NewString()
	}
	return id
}

// loggingMiddleware tags each request with an identifier and logs its
// method, path, client, status and duration.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r)
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		s.logger.Info("request completed",
			logging.String("request_id", id),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", r.RemoteAddr),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(start)),
		)
	}
}
