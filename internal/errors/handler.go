package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/polycalc/internal/engine"
	"github.com/agbru/polycalc/internal/poly"
)

// ColorProvider supplies terminal color codes. It keeps this package free of
// a dependency on the CLI.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes.
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// ExitCode classifies err into one of the Exit* codes.
//
// Parameters:
//   - err: The error to classify; nil yields ExitSuccess.
//
// Returns:
//   - int: The exit code.
func ExitCode(err error) int {
	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case engine.IsDomainError(err):
		return ExitErrorDomain
	case errors.Is(err, poly.ErrParse), errors.As(err, &valErr):
		return ExitErrorParse
	case errors.As(err, &cfgErr), errors.Is(err, engine.ErrUnknownOperation),
		errors.Is(err, engine.ErrArity), errors.Is(err, engine.ErrUnknownStrategy):
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}

// HandleEvaluationError prints a user-facing status line for a failed
// evaluation and returns the matching exit code.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: How long the evaluation ran before failing.
//   - out: The writer receiving the message.
//   - colors: Provider for terminal color codes (nil for none).
//
// Returns:
//   - int: The exit code for the error class.
func HandleEvaluationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	code := ExitCode(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
	case ExitErrorDomain:
		fmt.Fprintf(out, "Status: Failure (Domain). %v\n", err)
	case ExitErrorParse:
		fmt.Fprintf(out, "Status: Failure (Parse). %v\n", err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Status: Failure (Usage). %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
