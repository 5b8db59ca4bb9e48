package engine

import (
	"errors"

	"github.com/agbru/polycalc/internal/poly"
)

var (
	// ErrUnknownOperation is returned when no operation is registered under
	// the requested name.
	ErrUnknownOperation = errors.New("engine: unknown operation")
	// ErrArity is returned when an operation receives the wrong number of
	// operands.
	ErrArity = errors.New("engine: wrong number of operands")
	// ErrDegreeLimit is returned when a result would exceed Options.MaxDegree
	// or the uint64 exponent range, or a pow exponent exceeds
	// Options.MaxExponent.
	ErrDegreeLimit = errors.New("engine: result exceeds the configured limit")
	// ErrInvalidExponent is returned by "pow" when the exponent operand is not
	// an integer constant.
	ErrInvalidExponent = errors.New("engine: exponent must be an integer constant")
	// ErrNotConstant is returned by "eval" when the evaluation point is not a
	// constant polynomial.
	ErrNotConstant = errors.New("engine: operand must be a constant")
	// ErrUnknownStrategy is returned for an unrecognised Options.PowStrategy.
	ErrUnknownStrategy = errors.New("engine: unknown power strategy")
)

// IsDomainError reports whether err is a mathematical domain failure, as
// opposed to a malformed request: non-divisible operands, unsupported or
// invalid exponents, division by zero, a non-constant evaluation point, or a
// result over the configured limits.
//
// Parameters:
//   - err: The error to classify.
//
// Returns:
//   - bool: True if err wraps one of the domain sentinels.
func IsDomainError(err error) bool {
	for _, target := range []error{
		poly.ErrNotDivisible,
		poly.ErrUnsupportedExponent,
		poly.ErrDivisionByZero,
		ErrInvalidExponent,
		ErrNotConstant,
		ErrDegreeLimit,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
