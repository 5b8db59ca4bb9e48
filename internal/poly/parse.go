package poly

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// monomialRe matches one monomial: an optional sign, an optional integer or
// p/q coefficient, and an optional x with an optional exponent. The caret is
// optional after x, so "x2" reads as x^2.
var monomialRe = regexp.MustCompile(`([+-]?)(\d+(?:/\d+)?)?(?:(x)\^?(\d+)?)?`)

// Parse reads a polynomial written in x, for example:
//
//	3x - 2
//	4x**2 + x - 1
//	-2x^3 + x**2 - x + 1
//	1/2x^2 - 3/4
//
// Whitespace is ignored and ** is a synonym for ^. A monomial may omit its
// coefficient (1), its sign (+) and its exponent (1 after x, 0 without x).
// Monomials of equal degree are summed. Empty or blank input is the zero
// polynomial; any other input without a single monomial is a *ParseError.
//
// Parameters:
//   - s: The text to parse.
//
// Returns:
//   - Polynomial: The canonical polynomial.
//   - error: A *ParseError wrapping ErrParse on failure.
func Parse(s string) (Polynomial, error) {
	compact := strings.Join(strings.Fields(s), "")
	compact = strings.ReplaceAll(compact, "**", "^")
	if compact == "" {
		return Zero(), nil
	}

	byExp := make(map[uint64]*big.Rat)
	found := false
	for _, m := range monomialRe.FindAllStringSubmatch(compact, -1) {
		sign, digits, sym, expDigits := m[1], m[2], m[3], m[4]
		if digits == "" && sym == "" {
			continue
		}
		found = true

		coeff := big.NewRat(1, 1)
		if digits != "" {
			if _, ok := coeff.SetString(digits); !ok {
				return Zero(), &ParseError{Input: s, Reason: "invalid coefficient " + strconv.Quote(digits)}
			}
		}
		if sign == "-" {
			coeff.Neg(coeff)
		}

		var exp uint64
		if sym != "" {
			exp = 1
			if expDigits != "" {
				e, err := strconv.ParseUint(expDigits, 10, 64)
				if err != nil {
					return Zero(), &ParseError{Input: s, Reason: "exponent out of range " + strconv.Quote(expDigits)}
				}
				exp = e
			}
		}

		if sum, ok := byExp[exp]; ok {
			sum.Add(sum, coeff)
			continue
		}
		byExp[exp] = coeff
	}

	if !found {
		return Zero(), &ParseError{Input: s, Reason: "no monomial found"}
	}

	terms := make([]Term, 0, len(byExp))
	for exp, c := range byExp {
		terms = append(terms, Term{coeff: c, exp: exp})
	}
	return New(terms...), nil
}

// MustParse is like Parse but panics on error. It is meant for literals in
// tests and package-level variables.
func MustParse(s string) Polynomial {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}
