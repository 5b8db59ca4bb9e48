package poly

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// dense builds a polynomial whose coefficient for x^i is cs[i]/den.
func dense(cs []int64, den int64) Polynomial {
	terms := make([]Term, len(cs))
	for i, c := range cs {
		terms[i] = Q(c, den, uint64(i))
	}
	return New(terms...)
}

func polyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 8
	return parameters
}

func coeffsGen() gopter.Gen {
	return gen.SliceOf(gen.Int64Range(-12, 12))
}

// TestAlgebraicLaws_PropertyBased checks the ring laws the arithmetic must
// satisfy on random polynomials with rational coefficients, and that every
// result stays canonical.
func TestAlgebraicLaws_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(polyParameters())

	properties.Property("P + 0 == P", prop.ForAll(
		func(a []int64) bool {
			p := dense(a, 3)
			return p.Add(Zero()).Equal(p)
		},
		coeffsGen(),
	))

	properties.Property("P + (-P) == 0", prop.ForAll(
		func(a []int64) bool {
			p := dense(a, 5)
			return p.Add(p.Neg()).IsZero()
		},
		coeffsGen(),
	))

	properties.Property("P * 1 == P", prop.ForAll(
		func(a []int64) bool {
			p := dense(a, 2)
			return p.Mul(One()).Equal(p)
		},
		coeffsGen(),
	))

	properties.Property("addition and multiplication commute", prop.ForAll(
		func(a, b []int64) bool {
			p, q := dense(a, 1), dense(b, 7)
			return p.Add(q).Equal(q.Add(p)) && p.Mul(q).Equal(q.Mul(p))
		},
		coeffsGen(), coeffsGen(),
	))

	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(a, b, c []int64) bool {
			p, q, r := dense(a, 1), dense(b, 2), dense(c, 3)
			return p.Mul(q.Add(r)).Equal(p.Mul(q).Add(p.Mul(r)))
		},
		coeffsGen(), coeffsGen(), coeffsGen(),
	))

	properties.Property("results are canonical", prop.ForAll(
		func(a, b []int64) bool {
			p, q := dense(a, 1), dense(b, 4)
			for _, r := range []Polynomial{p.Add(q), p.Sub(q), p.Mul(q), p.Neg()} {
				if !isCanonical(r.terms) {
					return false
				}
			}
			return true
		},
		coeffsGen(), coeffsGen(),
	))

	properties.TestingRun(t)
}

// TestDivisionRoundTrip_PropertyBased verifies D*Div(P, D) + Mod(P, D) == P
// whenever deg(P) >= deg(D) and D is not zero, and the not-divisible error
// otherwise.
func TestDivisionRoundTrip_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(polyParameters())

	properties.Property("D*q + r == P", prop.ForAll(
		func(a, b []int64) bool {
			p, d := dense(a, 1), dense(b, 3)
			if d.IsZero() {
				return true
			}
			q, r, err := p.DivMod(d)
			if p.Degree() < d.Degree() {
				return errors.Is(err, ErrNotDivisible)
			}
			if err != nil {
				t.Logf("DivMod(%s, %s): %v", p, d, err)
				return false
			}
			if !r.IsZero() && r.Degree() >= d.Degree() && !d.IsNumeric() {
				return false
			}
			return d.Mul(q).Add(r).Equal(p)
		},
		coeffsGen(), coeffsGen(),
	))

	properties.TestingRun(t)
}

// TestPowerConsistency_PropertyBased verifies P^(m+1) == P^m * P and that both
// power strategies agree.
func TestPowerConsistency_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(polyParameters())

	properties.Property("Pow(P, m+1) == Pow(P, m) * P", prop.ForAll(
		func(a []int64, m int) bool {
			p := dense(a, 2)
			if p.IsZero() && m == 0 {
				return true
			}
			pm, err := p.Pow(m)
			if err != nil {
				return false
			}
			pm1, err := p.Pow(m + 1)
			if err != nil {
				return false
			}
			return pm1.Equal(pm.Mul(p))
		},
		coeffsGen(), gen.IntRange(0, 6),
	))

	properties.Property("Pow == PowLinear", prop.ForAll(
		func(a []int64, m int) bool {
			p := dense(a, 1)
			if p.IsZero() && m == 0 {
				return true
			}
			x, err1 := p.Pow(m)
			y, err2 := p.PowLinear(m)
			return err1 == nil && err2 == nil && x.Equal(y)
		},
		coeffsGen(), gen.IntRange(0, 9),
	))

	properties.TestingRun(t)
}

// TestParseFormat_PropertyBased verifies parse(format(P)) == P and that
// evaluation commutes with addition.
func TestParseFormat_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(polyParameters())

	properties.Property("Parse(String(P)) == P", prop.ForAll(
		func(a []int64, den int64) bool {
			p := dense(a, den)
			back, err := Parse(p.String())
			return err == nil && back.Equal(p)
		},
		coeffsGen(), gen.Int64Range(1, 9),
	))

	properties.Property("(P+Q)(x) == P(x) + Q(x)", prop.ForAll(
		func(a, b []int64, x int64) bool {
			p, q := dense(a, 1), dense(b, 2)
			at := big.NewRat(x, 3)
			sum := new(big.Rat).Add(p.Evaluate(at), q.Evaluate(at))
			return p.Add(q).Evaluate(at).Cmp(sum) == 0
		},
		coeffsGen(), coeffsGen(), gen.Int64Range(-6, 6),
	))

	properties.TestingRun(t)
}
