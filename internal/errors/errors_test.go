package apperrors

import (
	"context"
	"errors"
	"testing"

	"github.com/agbru/polycalc/internal/poly"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid value %d for flag %s", 42, "--max-degree")
	if err.Error() != "invalid value 42 for flag --max-degree" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("expected error to be ConfigError type")
	}
}

func TestEvaluationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		op      string
		cause   error
		wantMsg string
	}{
		{"with operation", "div", poly.ErrNotDivisible, "div: poly: the polynomials are not divisible"},
		{"without operation", "", context.Canceled, "context canceled"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewEvaluationError(tt.op, tt.cause)
			if err.Error() != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, err.Error())
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("errors.Is should find %v in the chain", tt.cause)
			}
		})
	}

	if NewEvaluationError("add", nil) != nil {
		t.Error("NewEvaluationError with a nil cause should return nil")
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		message string
		cause   error
		wantMsg string
	}{
		{"with cause", "failed to start", errors.New("connection refused"), "failed to start: connection refused"},
		{"without cause", "server stopped", nil, "server stopped"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewServerError(tt.message, tt.cause)
			if err.Error() != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, err.Error())
			}
			var serverErr ServerError
			if !errors.As(err, &serverErr) {
				t.Fatal("expected error to be ServerError type")
			}
			if serverErr.Unwrap() != tt.cause {
				t.Errorf("Unwrap() = %v, want %v", serverErr.Unwrap(), tt.cause)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		err     ValidationError
		wantMsg string
	}{
		{"with field", ValidationError{Field: "a", Message: "cannot parse"}, "validation error for 'a': cannot parse"},
		{"without field", ValidationError{Message: "invalid input"}, "validation error: invalid input"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.wantMsg {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.wantMsg, tt.err.Error())
		}
	}

	_, parseErr := poly.Parse("???")
	err := error(ValidationError{Field: "b", Message: parseErr.Error(), Value: "???", Cause: parseErr})
	if !errors.Is(err, poly.ErrParse) {
		t.Error("ValidationError should unwrap to its cause")
	}

	err = NewValidationError("op", "unknown operation", "frobnicate")
	var valErr ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "op" || valErr.Value != "frobnicate" {
		t.Errorf("unexpected validation error: %+v", valErr)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	err := WrapError(poly.ErrDivisionByZero, "evaluating %s", "mod")
	if err.Error() != "evaluating mod: poly: division by the zero polynomial" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, poly.ErrDivisionByZero) {
		t.Error("wrapped error should preserve the sentinel")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorDomain":   ExitErrorDomain,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorParse":    ExitErrorParse,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
