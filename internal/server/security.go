package server

import (
	"net/http"
	"strings"
)

// SecurityConfig holds the security headers and resource limits of the API.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins lists allowed CORS origins; "*" allows all.
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods advertised for CORS.
	AllowedMethods []string
	// MaxOperandLength bounds the length in bytes of each operand.
	MaxOperandLength int
	// MaxDegree bounds the degree of any result.
	MaxDegree uint64
	// MaxExponent bounds the exponent of pow.
	MaxExponent uint64
}

// DefaultSecurityConfig returns limits that keep any single request within
// a few megabytes of rationals.
//
// Returns:
//   - SecurityConfig: CORS for any origin, 4 KiB operands, and degree and
//     pow exponent capped at 16384.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:       true,
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		MaxOperandLength: 4096,
		MaxDegree:        1 << 14,
		MaxExponent:      1 << 14,
	}
}

// SecurityMiddleware sets security response headers and, when enabled,
// CORS headers. Preflight OPTIONS requests are answered directly.
//
// Parameters:
//   - config: The security configuration.
//   - next: The next handler in the chain.
//
// Returns:
//   - http.HandlerFunc: A new handler with security headers.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, "+RequestIDHeader)
				w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
				w.Header().Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}

// allowedOrigin returns the configured entry matching origin, or "".
func allowedOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return a
		}
	}
	return ""
}
