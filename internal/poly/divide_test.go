package poly

import (
	"errors"
	"testing"
)

func TestDivMod(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		p, d      Polynomial
		quot, rem Polynomial
	}{
		{
			"cubic by quadratic",
			pairs([2]int64{3, 3}, [2]int64{-2, 2}, [2]int64{4, 1}, [2]int64{-3, 0}),
			pairs([2]int64{1, 2}, [2]int64{3, 1}, [2]int64{3, 0}),
			pairs([2]int64{3, 1}, [2]int64{-11, 0}),
			pairs([2]int64{28, 1}, [2]int64{30, 0}),
		},
		{
			"cubic by linear",
			pairs([2]int64{1, 3}, [2]int64{-2, 2}, [2]int64{1, 1}, [2]int64{-5, 0}),
			pairs([2]int64{-1, 1}, [2]int64{1, 0}),
			pairs([2]int64{-1, 2}, [2]int64{1, 1}),
			pairs([2]int64{-5, 0}),
		},
		{
			"quadratic by linear",
			pairs([2]int64{1, 2}, [2]int64{8, 1}, [2]int64{-54, 0}),
			pairs([2]int64{1, 1}, [2]int64{11, 0}),
			pairs([2]int64{1, 1}, [2]int64{-3, 0}),
			pairs([2]int64{-21, 0}),
		},
		{
			"scalars",
			pairs([2]int64{6, 0}),
			pairs([2]int64{2, 0}),
			pairs([2]int64{3, 0}),
			Zero(),
		},
		{
			"by a scalar",
			pairs([2]int64{4, 2}, [2]int64{-2, 1}, [2]int64{2, 0}),
			pairs([2]int64{2, 0}),
			pairs([2]int64{2, 2}, [2]int64{-1, 1}, [2]int64{1, 0}),
			Zero(),
		},
		{"zero by zero", Zero(), Zero(), Zero(), Zero()},
		{
			"by a monomial",
			pairs([2]int64{2, 3}, [2]int64{4, 2}, [2]int64{1, 0}),
			pairs([2]int64{2, 2}),
			pairs([2]int64{1, 1}, [2]int64{2, 0}),
			pairs([2]int64{1, 0}),
		},
		{
			"rational quotient",
			pairs([2]int64{1, 1}, [2]int64{1, 0}),
			pairs([2]int64{2, 1}),
			New(Q(1, 2, 0)),
			pairs([2]int64{1, 0}),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, r, err := tt.p.DivMod(tt.d)
			if err != nil {
				t.Fatalf("DivMod() error = %v", err)
			}
			assertPoly(t, q, tt.quot)
			assertPoly(t, r, tt.rem)

			div, err := tt.p.Div(tt.d)
			if err != nil {
				t.Fatalf("Div() error = %v", err)
			}
			assertPoly(t, div, tt.quot)

			mod, err := tt.p.Mod(tt.d)
			if err != nil {
				t.Fatalf("Mod() error = %v", err)
			}
			assertPoly(t, mod, tt.rem)
		})
	}
}

func TestDivModNotDivisible(t *testing.T) {
	t.Parallel()
	p := pairs([2]int64{1, 2}, [2]int64{-3, 1})
	d := pairs([2]int64{3, 3}, [2]int64{4, 0})

	if _, _, err := p.DivMod(d); !errors.Is(err, ErrNotDivisible) {
		t.Errorf("DivMod() error = %v, want ErrNotDivisible", err)
	}
	if _, err := p.Div(d); !errors.Is(err, ErrNotDivisible) {
		t.Errorf("Div() error = %v, want ErrNotDivisible", err)
	}
	if _, err := p.Mod(d); !errors.Is(err, ErrNotDivisible) {
		t.Errorf("Mod() error = %v, want ErrNotDivisible", err)
	}
	if _, _, err := Zero().DivMod(d); !errors.Is(err, ErrNotDivisible) {
		t.Errorf("DivMod(0, d) error = %v, want ErrNotDivisible", err)
	}
}

func TestDivModByZero(t *testing.T) {
	t.Parallel()
	for _, p := range []Polynomial{pairs([2]int64{5, 0}), pairs([2]int64{1, 2}, [2]int64{1, 0})} {
		if _, _, err := p.DivMod(Zero()); !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("DivMod(%s, 0) error = %v, want ErrDivisionByZero", p, err)
		}
	}
}

func TestDivModLeavesOperandsUntouched(t *testing.T) {
	t.Parallel()
	p := pairs([2]int64{3, 3}, [2]int64{-2, 2}, [2]int64{4, 1}, [2]int64{-3, 0})
	d := pairs([2]int64{1, 2}, [2]int64{3, 1}, [2]int64{3, 0})
	if _, _, err := p.DivMod(d); err != nil {
		t.Fatal(err)
	}
	assertPoly(t, p, pairs([2]int64{3, 3}, [2]int64{-2, 2}, [2]int64{4, 1}, [2]int64{-3, 0}))
	assertPoly(t, d, pairs([2]int64{1, 2}, [2]int64{3, 1}, [2]int64{3, 0}))
}
