package poly

import "math/big"

// Term is a single (coefficient, exponent) pair, the atomic unit of a
// Polynomial. A Term is immutable: its coefficient is copied when the term is
// built and again whenever it is read through Coeff.
type Term struct {
	coeff *big.Rat
	exp   uint64
}

// NewTerm builds a term with an exact rational coefficient. A nil coefficient
// is treated as zero.
//
// Parameters:
//   - c: The coefficient (copied).
//   - exp: The exponent of the indeterminate.
//
// Returns:
//   - Term: The new term.
func NewTerm(c *big.Rat, exp uint64) Term {
	r := new(big.Rat)
	if c != nil {
		r.Set(c)
	}
	return Term{coeff: r, exp: exp}
}

// T builds a term with an integer coefficient.
func T(c int64, exp uint64) Term {
	return Term{coeff: new(big.Rat).SetInt64(c), exp: exp}
}

// Q builds a term with the rational coefficient num/den.
// It panics if den is zero, like big.Rat.SetFrac64.
func Q(num, den int64, exp uint64) Term {
	return Term{coeff: new(big.Rat).SetFrac64(num, den), exp: exp}
}

// Coeff returns a copy of the term's coefficient.
func (t Term) Coeff() *big.Rat { return new(big.Rat).Set(t.rat()) }

// Exp returns the term's exponent.
func (t Term) Exp() uint64 { return t.exp }

// Equal reports whether both terms have the same exponent and exactly the
// same coefficient.
func (t Term) Equal(u Term) bool {
	return t.exp == u.exp && t.rat().Cmp(u.rat()) == 0
}

// String renders the term the way the formatter renders a one-term polynomial.
func (t Term) String() string { return New(t).String() }

// rat returns the coefficient without copying. Callers must not mutate it.
// The zero Term has a nil coefficient, which reads as zero.
func (t Term) rat() *big.Rat {
	if t.coeff == nil {
		return new(big.Rat)
	}
	return t.coeff
}
