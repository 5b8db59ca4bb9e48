package poly

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Neg returns -p, computed as the constant polynomial -1 times p.
func (p Polynomial) Neg() Polynomial {
	return New(T(-1, 0)).Mul(p)
}

// Add returns p + q: both term lists concatenated, then canonicalized.
func (p Polynomial) Add(q Polynomial) Polynomial {
	return p.Append(q)
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.Add(q.Neg())
}

// Mul returns p * q by distributing every term of p over every term of q.
// A zero operand yields the zero polynomial.
//
// Exponents are uint64; a product whose exponent does not fit panics, the
// same way an out-of-range index does. Callers taking untrusted input check
// deg(p) + deg(q) first, as the engine's "mul" operation does.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Zero()
	}
	terms := make([]Term, 0, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			terms = append(terms, Term{
				coeff: new(big.Rat).Mul(a.coeff, b.coeff),
				exp:   addExp(a.exp, b.exp),
			})
		}
	}
	return New(terms...)
}

// Pow returns p^n using exponentiation by squaring.
//
// A negative n, or n == 0 on the zero polynomial, fails with
// ErrUnsupportedExponent. p^0 is 1 and p^1 is p. A one-term p is raised
// directly by powering its coefficient and multiplying its exponent.
//
// Parameters:
//   - n: The exponent.
//
// Returns:
//   - Polynomial: p raised to n.
//   - error: ErrUnsupportedExponent for the undefined cases.
func (p Polynomial) Pow(n int) (Polynomial, error) {
	if r, done, err := p.powTrivial(n); done {
		return r, err
	}
	result := One()
	base := p
	for e := n; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		if e > 1 {
			base = base.Mul(base)
		}
	}
	return result, nil
}

// PowLinear returns p^n by n-1 successive multiplications by p. It has the
// same contract as Pow and always agrees with it.
func (p Polynomial) PowLinear(n int) (Polynomial, error) {
	if r, done, err := p.powTrivial(n); done {
		return r, err
	}
	result := p
	for i := 1; i < n; i++ {
		result = result.Mul(p)
	}
	return result, nil
}

// powTrivial handles the cases shared by both power strategies. done is true
// when r (or err) is the final answer.
func (p Polynomial) powTrivial(n int) (r Polynomial, done bool, err error) {
	switch {
	case n < 0:
		return Zero(), true, fmt.Errorf("%w: negative exponent %d", ErrUnsupportedExponent, n)
	case n == 0:
		if p.IsZero() {
			return Zero(), true, fmt.Errorf("%w: 0^0 is undefined", ErrUnsupportedExponent)
		}
		return One(), true, nil
	case n == 1:
		return p, true, nil
	case len(p.terms) == 1:
		t := p.terms[0]
		e := uint64(n)
		hi, exp := bits.Mul64(t.exp, e)
		if hi != 0 {
			panic(fmt.Sprintf("poly: exponent overflow in x^%d raised to %d", t.exp, n))
		}
		return Polynomial{terms: []Term{{coeff: ratPow(t.coeff, e), exp: exp}}}, true, nil
	}
	return Polynomial{}, false, nil
}

// ratPow returns r^n for n >= 0 (r^0 == 1, including 0^0).
func ratPow(r *big.Rat, n uint64) *big.Rat {
	e := new(big.Int).SetUint64(n)
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	return new(big.Rat).SetFrac(num, den)
}

func addExp(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		panic(fmt.Sprintf("poly: exponent overflow in x^%d * x^%d", a, b))
	}
	return sum
}
