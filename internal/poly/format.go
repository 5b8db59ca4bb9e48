package poly

import (
	"strconv"
	"strings"
)

// String renders p in the textual notation read by Parse.
//
// The zero polynomial is "0". Every term, the first included, carries a
// spaced sign ("+ 3x", "- x^2"). A magnitude of 1 is omitted unless the
// exponent is 0, exponent 1 is written as a bare x, and rational
// coefficients are written p/q.
func (p Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	for i, t := range p.terms {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeTerm(&b, t)
	}
	return b.String()
}

// Format is the function form of Polynomial.String.
func Format(p Polynomial) string { return p.String() }

func writeTerm(b *strings.Builder, t Term) {
	c := t.rat()
	if c.Sign() < 0 {
		b.WriteString("- ")
	} else {
		b.WriteString("+ ")
	}

	mag := c.RatString()
	if c.Sign() < 0 {
		mag = mag[1:]
	}
	if t.exp == 0 || mag != "1" {
		b.WriteString(mag)
	}

	switch t.exp {
	case 0:
	case 1:
		b.WriteByte('x')
	default:
		b.WriteString("x^")
		b.WriteString(strconv.FormatUint(t.exp, 10))
	}
}
