package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestExtractFirstIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"127.0.0.1", "127.0.0.1"},
		{"127.0.0.1, 192.168.1.1", "127.0.0.1"},
		{"", ""},
		{"   1.2.3.4   ", "1.2.3.4"},
	}
	for _, tt := range tests {
		if got := extractFirstIP(tt.input); got != tt.expected {
			t.Errorf("extractFirstIP(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestStripPort(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"127.0.0.1:8080", "127.0.0.1"},
		{"192.168.1.1", "192.168.1.1"},
		{"[::1]:8080", "::1"},
		{"[::1]", "::1"},
	}
	for _, tt := range tests {
		if got := stripPort(tt.input); got != tt.expected {
			t.Errorf("stripPort(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{"X-Forwarded-For", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "9.9.9.9:1234", "1.2.3.4"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "5.6.7.8"}, "9.9.9.9:1234", "5.6.7.8"},
		{"RemoteAddr", map[string]string{}, "9.9.9.9:1234", "9.9.9.9"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remote
			if got := getClientIP(req); got != tt.expected {
				t.Errorf("getClientIP() = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestRateLimiterWindow(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{Requests: 2, Window: time.Minute})
	defer rl.Stop()

	now := time.Now()
	for i := 0; i < 2; i++ {
		if ok, _ := rl.allowAt("1.2.3.4", now); !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	ok, wait := rl.allowAt("1.2.3.4", now.Add(15*time.Second))
	if ok {
		t.Fatal("third request in the window should be refused")
	}
	if wait != 45*time.Second {
		t.Errorf("retry after = %v, want 45s", wait)
	}
	if ok, _ := rl.allowAt("5.6.7.8", now); !ok {
		t.Error("another client should have its own budget")
	}
	if ok, _ := rl.allowAt("1.2.3.4", now.Add(time.Minute)); !ok {
		t.Error("a new window should reset the budget")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Requests:        10,
		Window:          10 * time.Millisecond,
		CleanupInterval: 10 * time.Millisecond,
	})
	defer rl.Stop()

	rl.Allow("1.2.3.4")
	time.Sleep(60 * time.Millisecond)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.clients) != 0 {
		t.Error("idle client should have been cleaned up")
	}
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(DefaultRateLimiterConfig())
	rl.Stop()
	rl.Stop()
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{Requests: 1, Window: time.Minute})
	defer rl.Stop()

	handler := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
	retry, err := strconv.Atoi(second.Header().Get("Retry-After"))
	if err != nil || retry < 1 || retry > 60 {
		t.Errorf("Retry-After = %q", second.Header().Get("Retry-After"))
	}
}

func TestSecurityMiddleware(t *testing.T) {
	t.Parallel()
	called := false
	next := func(w http.ResponseWriter, r *http.Request) { called = true }

	cfg := DefaultSecurityConfig()
	cfg.AllowedOrigins = []string{"https://example.org"}
	handler := SecurityMiddleware(cfg, next)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "https://example.org")
	handler(rr, req)
	if !called {
		t.Fatal("next handler not called")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" || rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers missing")
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "https://evil.example")
	handler(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got CORS header %q", got)
	}

	called = false
	rr = httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodOptions, "/", http.NoBody))
	if rr.Code != http.StatusNoContent || called {
		t.Errorf("preflight: status %d, next called %v", rr.Code, called)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	s := createTestServer()

	t.Run("Generated", func(t *testing.T) {
		t.Parallel()
		rr := serve(s, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
		id := rr.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("generated request ID %q is not a UUID: %v", id, err)
		}
	})

	t.Run("Echoed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
		req.Header.Set(RequestIDHeader, "trace-42")
		rr := serve(s, req)
		if got := rr.Header().Get(RequestIDHeader); got != "trace-42" {
			t.Errorf("request ID = %q, want trace-42", got)
		}
	})

	t.Run("OversizedReplaced", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", maxRequestIDLength+1))
		rr := serve(s, req)
		if _, err := uuid.Parse(rr.Header().Get(RequestIDHeader)); err != nil {
			t.Errorf("oversized request ID should be replaced by a UUID: %v", err)
		}
	})
}
