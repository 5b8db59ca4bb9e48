// Package apperrors defines the structured error types of polycalc and maps
// every failure class (configuration, parsing, algebraic domain, timeout,
// cancellation) to a process exit code.
//
// All error types carrying a cause implement Unwrap, so errors.Is and
// errors.As see through them. Context is added with fmt.Errorf and %w.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Unclassified failure.
	ExitErrorTimeout  = 2   // The execution limit was reached.
	ExitErrorDomain   = 3   // Not divisible, unsupported exponent, division by zero, limits.
	ExitErrorConfig   = 4   // Invalid flags, environment or operation name.
	ExitErrorParse    = 5   // An operand could not be parsed.
	ExitErrorCanceled = 130 // Interrupted (e.g. SIGINT).
)

// ConfigError reports invalid user configuration: flags, environment
// variables or an unknown operation name.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvaluationError records which operation failed and why.
type EvaluationError struct {
	// Op is the name of the operation being applied.
	Op string
	// Cause is the underlying error.
	Cause error
}

// Error returns "<op>: <cause>", or the cause alone when Op is empty.
func (e EvaluationError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause.
func (e EvaluationError) Unwrap() error { return e.Cause }

// NewEvaluationError wraps cause with the operation name. It returns nil when
// cause is nil.
func NewEvaluationError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return EvaluationError{Op: op, Cause: cause}
}

// ServerError represents a failure of the HTTP server component.
type ServerError struct {
	// Message describes what the server was doing.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the message, followed by the cause when there is one.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error, or nil.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ValidationError reports invalid input: an operand that does not parse, an
// operand that is too long, or a malformed API request.
type ValidationError struct {
	// Field names the offending input (e.g. "a", "b", "op").
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
	// Cause is the underlying error (optional, may be nil).
	Cause error
}

// Error returns the message, prefixed with the field name when set.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap returns the underlying cause, or nil.
func (e ValidationError) Unwrap() error { return e.Cause }

// NewValidationError creates a ValidationError without a cause.
//
// Parameters:
//   - field: The name of the input that failed validation.
//   - message: Why validation failed.
//   - value: The invalid value (optional).
//
// Returns:
//   - error: A new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// WrapError annotates err with a formatted message, keeping it unwrappable.
// It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
