package poly

import "math/big"

// DivMod performs Euclidean long division of p by d and returns the quotient
// and the remainder, such that p == d*q + r.
//
// The division is deliberately conservative: when deg(p) < deg(d) it fails
// with ErrNotDivisible instead of returning a zero quotient. A zero dividend
// yields (0, 0) for any divisor of degree 0, the zero polynomial included.
// Dividing anything else by the zero polynomial fails with ErrDivisionByZero.
//
// The loop works on a private remainder and never touches the operands. Each
// step divides the remainder's leading term by d's leading term, appends that
// term to the quotient and drops the leading term from the remainder. When d
// has more than one term, the quotient term times the rest of d is then
// subtracted from the remainder. Two scalars end the loop with one last exact
// quotient term.
//
// Parameters:
//   - d: The divisor.
//
// Returns:
//   - Polynomial: The quotient.
//   - Polynomial: The remainder.
//   - error: ErrDivisionByZero or ErrNotDivisible.
func (p Polynomial) DivMod(d Polynomial) (Polynomial, Polynomial, error) {
	if p.Degree() < d.Degree() {
		return Zero(), Zero(), ErrNotDivisible
	}
	if p.IsZero() {
		return Zero(), Zero(), nil
	}
	if d.IsZero() {
		return Zero(), Zero(), ErrDivisionByZero
	}

	rem := p.Slice(0, p.Len())
	quot := Zero()
	lead := d.terms[0]
	rest := d.Tail()

	for rem.Degree() >= d.Degree() {
		if rem.IsZero() {
			return quot, Zero(), nil
		}
		if rem.IsNumeric() && d.IsNumeric() {
			return quot.Append(divTerm(rem.terms[0], lead)), Zero(), nil
		}

		step := divTerm(rem.terms[0], lead)
		rem = rem.Tail()
		quot = quot.Append(step)
		if d.Len() == 1 {
			continue
		}
		rem = rem.Sub(step.Mul(rest))
	}
	return quot, rem, nil
}

// Div returns the quotient of p divided by d. See DivMod.
func (p Polynomial) Div(d Polynomial) (Polynomial, error) {
	q, _, err := p.DivMod(d)
	return q, err
}

// Mod returns the remainder of p divided by d. See DivMod.
func (p Polynomial) Mod(d Polynomial) (Polynomial, error) {
	_, r, err := p.DivMod(d)
	return r, err
}

// divTerm returns the one-term polynomial a/b. The caller guarantees
// a.exp >= b.exp and a non-zero b.
func divTerm(a, b Term) Polynomial {
	c := new(big.Rat).Quo(a.coeff, b.coeff)
	return Polynomial{terms: []Term{{coeff: c, exp: a.exp - b.exp}}}
}
