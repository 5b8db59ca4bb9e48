package poly

import "math/big"

// Evaluate returns p(x) exactly, using Horner's rule over the sparse terms:
// the gap between consecutive exponents is bridged with a single power of x.
func (p Polynomial) Evaluate(x *big.Rat) *big.Rat {
	result := new(big.Rat)
	if p.IsZero() {
		return result
	}

	prev := p.terms[0].exp
	result.Set(p.terms[0].coeff)
	for _, t := range p.terms[1:] {
		result.Mul(result, ratPow(x, prev-t.exp))
		result.Add(result, t.coeff)
		prev = t.exp
	}
	return result.Mul(result, ratPow(x, prev))
}
