package poly

import "testing"

// pairs builds a polynomial from (coefficient, exponent) pairs.
func pairs(ps ...[2]int64) Polynomial {
	terms := make([]Term, len(ps))
	for i, p := range ps {
		terms[i] = T(p[0], uint64(p[1]))
	}
	return New(terms...)
}

func assertPoly(t *testing.T, got, want Polynomial) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("got %q, want %q", got.String(), want.String())
	}
	if !isCanonical(got.terms) {
		t.Errorf("result %q is not canonical", got.String())
	}
}
