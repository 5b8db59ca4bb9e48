package poly

import (
	"errors"
	"fmt"
)

var (
	// ErrNotDivisible is returned by DivMod, Div and Mod when the dividend's
	// degree is below the divisor's degree.
	ErrNotDivisible = errors.New("poly: the polynomials are not divisible")
	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("poly: division by the zero polynomial")
	// ErrUnsupportedExponent is returned by Pow for a negative exponent and
	// for the zero polynomial raised to the power 0.
	ErrUnsupportedExponent = errors.New("poly: unsupported exponent")
	// ErrParse is the sentinel wrapped by every *ParseError.
	ErrParse = errors.New("poly: parse error")
)

// ParseError reports text that could not be turned into a polynomial.
type ParseError struct {
	// Input is the text handed to Parse.
	Input string
	// Reason describes what went wrong.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("poly: cannot parse %q: %s", e.Input, e.Reason)
}

// Unwrap makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Unwrap() error { return ErrParse }
