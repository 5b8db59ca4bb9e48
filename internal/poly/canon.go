package poly

import (
	"math/big"
	"sort"
)

// Simplify collapses an arbitrary sequence of terms into canonical form.
//
// Terms sharing an exponent are summed, zero coefficients are dropped (an
// exponent whose running sum reaches zero is removed at that point and only
// comes back if a later term re-introduces it), and the result is sorted by
// strictly descending exponent. Input order and duplicate exponents are
// irrelevant. An empty input yields an empty result, the zero polynomial.
//
// The returned terms own fresh coefficients; the input is left untouched.
//
// Parameters:
//   - terms: The raw terms, in any order and with any multiplicity.
//
// Returns:
//   - []Term: The canonical term sequence.
func Simplify(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}

	acc := make(map[uint64]*big.Rat, len(terms))
	for _, t := range terms {
		c := t.rat()
		if c.Sign() == 0 {
			continue
		}
		sum, ok := acc[t.exp]
		if !ok {
			acc[t.exp] = new(big.Rat).Set(c)
			continue
		}
		sum.Add(sum, c)
		if sum.Sign() == 0 {
			delete(acc, t.exp)
		}
	}

	if len(acc) == 0 {
		return nil
	}
	out := make([]Term, 0, len(acc))
	for exp, c := range acc {
		out = append(out, Term{coeff: c, exp: exp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].exp > out[j].exp })
	return out
}

// isCanonical reports whether terms satisfy the three representation
// invariants: unique exponents, no zero coefficient, strictly descending order.
func isCanonical(terms []Term) bool {
	for i, t := range terms {
		if t.rat().Sign() == 0 {
			return false
		}
		if i > 0 && terms[i-1].exp <= t.exp {
			return false
		}
	}
	return true
}
