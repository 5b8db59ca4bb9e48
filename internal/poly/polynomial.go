// Package poly implements single-variable polynomial algebra over exact
// rational coefficients.
//
// A Polynomial is an immutable value holding its terms in canonical form:
// exponents are unique, no coefficient is zero (the zero polynomial has no
// terms) and terms are sorted by strictly descending exponent. Every
// constructor and every operation returns a canonical value, so accessors can
// rely on the first term being the leading term and the last term being the
// lowest-degree term.
//
// Coefficients are math/big.Rat values; integer inputs are rationals with a
// denominator of 1. The indeterminate is always written x.
package poly

import "math/big"

// Polynomial is a canonical, immutable sequence of terms.
// The zero value is the zero polynomial.
type Polynomial struct {
	terms []Term
}

// New builds a polynomial from raw terms, running them through Simplify.
//
// Parameters:
//   - terms: The raw terms, in any order, possibly with duplicates or zeros.
//
// Returns:
//   - Polynomial: The canonical polynomial.
func New(terms ...Term) Polynomial {
	return Polynomial{terms: Simplify(terms)}
}

// Zero returns the zero polynomial.
func Zero() Polynomial { return Polynomial{} }

// One returns the constant polynomial 1.
func One() Polynomial { return New(T(1, 0)) }

// Constant returns the constant polynomial c (the zero polynomial when c is 0).
func Constant(c *big.Rat) Polynomial { return New(NewTerm(c, 0)) }

// Monomial returns the one-term polynomial c*x^exp.
func Monomial(c *big.Rat, exp uint64) Polynomial { return New(NewTerm(c, exp)) }

// Terms returns a deep copy of the canonical term sequence.
func (p Polynomial) Terms() []Term {
	out := make([]Term, len(p.terms))
	for i, t := range p.terms {
		out[i] = NewTerm(t.coeff, t.exp)
	}
	return out
}

// Len returns the number of (non-zero) terms.
func (p Polynomial) Len() int { return len(p.terms) }

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return len(p.terms) == 0 }

// NonZero is the truth value of p: true iff p has at least one term.
func (p Polynomial) NonZero() bool { return len(p.terms) > 0 }

// Degree returns the highest exponent present, or 0 for the zero polynomial.
func (p Polynomial) Degree() uint64 {
	if p.IsZero() {
		return 0
	}
	return p.terms[0].exp
}

// LeadingCoeff returns the coefficient of the leading term, or 0 for the zero
// polynomial.
func (p Polynomial) LeadingCoeff() *big.Rat {
	if p.IsZero() {
		return new(big.Rat)
	}
	return p.terms[0].Coeff()
}

// Rhs returns the constant term: the coefficient of x^0 when the
// lowest-degree term has exponent 0, and 0 otherwise.
func (p Polynomial) Rhs() *big.Rat {
	if p.IsZero() {
		return new(big.Rat)
	}
	last := p.terms[len(p.terms)-1]
	if last.exp != 0 {
		return new(big.Rat)
	}
	return last.Coeff()
}

// IsNumeric reports whether p is a plain scalar: the zero polynomial, or a
// single term with exponent 0.
func (p Polynomial) IsNumeric() bool {
	if p.IsZero() {
		return true
	}
	return len(p.terms) == 1 && p.terms[0].exp == 0
}

// Append concatenates the raw term lists of p and q and canonicalizes the
// result. It is equivalent to addition.
func (p Polynomial) Append(q Polynomial) Polynomial {
	terms := make([]Term, 0, len(p.terms)+len(q.terms))
	terms = append(terms, p.terms...)
	terms = append(terms, q.terms...)
	return New(terms...)
}

// At returns the singleton polynomial wrapping the i-th term, counting from
// the leading term. It panics if i is out of range, like slice indexing.
func (p Polynomial) At(i int) Polynomial {
	return Polynomial{terms: []Term{p.terms[i]}}
}

// Slice returns the polynomial made of terms[i:j]. A sub-sequence of a
// canonical sequence is canonical, so no re-simplification happens.
// It panics on invalid bounds, like slice expressions.
func (p Polynomial) Slice(i, j int) Polynomial {
	sub := make([]Term, j-i)
	copy(sub, p.terms[i:j])
	return Polynomial{terms: sub}
}

// Tail returns p without its leading term.
func (p Polynomial) Tail() Polynomial {
	if p.IsZero() {
		return p
	}
	return p.Slice(1, len(p.terms))
}

// Equal reports structural equality of the canonical term sequences, with
// exact coefficient comparison.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if !p.terms[i].Equal(q.terms[i]) {
			return false
		}
	}
	return true
}
