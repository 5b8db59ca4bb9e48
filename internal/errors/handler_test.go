package apperrors

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/agbru/polycalc/internal/engine"
	"github.com/agbru/polycalc/internal/poly"
)

type MockColorProvider struct{}

func (m MockColorProvider) Yellow() string { return "[YELLOW]" }
func (m MockColorProvider) Reset() string  { return "[RESET]" }

func TestExitCode(t *testing.T) {
	t.Parallel()
	_, parseErr := poly.Parse("abc")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", fmt.Errorf("eval: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"not divisible", NewEvaluationError("div", poly.ErrNotDivisible), ExitErrorDomain},
		{"unsupported exponent", poly.ErrUnsupportedExponent, ExitErrorDomain},
		{"degree limit", engine.ErrDegreeLimit, ExitErrorDomain},
		{"parse", parseErr, ExitErrorParse},
		{"validation", NewValidationError("a", "too long", nil), ExitErrorParse},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"unknown op", fmt.Errorf("%w: frob", engine.ErrUnknownOperation), ExitErrorConfig},
		{"arity", engine.ErrArity, ExitErrorConfig},
		{"generic", fmt.Errorf("random error"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleEvaluationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		err          error
		duration     time.Duration
		colors       ColorProvider
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "No Error",
			expectedCode: ExitSuccess,
		},
		{
			name:         "Timeout Error",
			err:          context.DeadlineExceeded,
			duration:     1 * time.Second,
			colors:       MockColorProvider{},
			expectedCode: ExitErrorTimeout,
			expectedMsg:  "Status: Failure (Timeout). The execution limit was reached after [YELLOW]1s[RESET].",
		},
		{
			name:         "Canceled Error",
			err:          context.Canceled,
			duration:     500 * time.Millisecond,
			colors:       MockColorProvider{},
			expectedCode: ExitErrorCanceled,
			expectedMsg:  "[YELLOW]Status: Canceled after [YELLOW]500ms[RESET].[RESET]",
		},
		{
			name:         "Domain Error",
			err:          NewEvaluationError("divmod", poly.ErrNotDivisible),
			expectedCode: ExitErrorDomain,
			expectedMsg:  "Status: Failure (Domain). divmod: poly: the polynomials are not divisible",
		},
		{
			name:         "Parse Error",
			err:          &poly.ParseError{Input: "?", Reason: "no monomial found"},
			expectedCode: ExitErrorParse,
			expectedMsg:  "Status: Failure (Parse).",
		},
		{
			name:         "Generic Error",
			err:          fmt.Errorf("random error"),
			expectedCode: ExitErrorGeneric,
			expectedMsg:  "Status: Failure. An unexpected error occurred: random error",
		},
		{
			name:         "Default Colors",
			err:          context.DeadlineExceeded,
			duration:     1 * time.Second,
			expectedCode: ExitErrorTimeout,
			expectedMsg:  "Status: Failure (Timeout). The execution limit was reached after 1s.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := new(bytes.Buffer)
			code := HandleEvaluationError(tt.err, tt.duration, out, tt.colors)

			if code != tt.expectedCode {
				t.Errorf("HandleEvaluationError() code = %v, want %v", code, tt.expectedCode)
			}
			if tt.expectedMsg != "" && !strings.Contains(out.String(), tt.expectedMsg) {
				t.Errorf("HandleEvaluationError() output = %q, want %q", out.String(), tt.expectedMsg)
			}
		})
	}
}

func TestDefaultColorProvider(t *testing.T) {
	t.Parallel()
	p := DefaultColorProvider{}
	if p.Yellow() != "" || p.Reset() != "" {
		t.Error("DefaultColorProvider should return empty strings")
	}
}
