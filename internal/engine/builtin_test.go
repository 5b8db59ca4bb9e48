package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/agbru/polycalc/internal/poly"
)

func parseAll(t *testing.T, texts ...string) []poly.Polynomial {
	t.Helper()
	out := make([]poly.Polynomial, len(texts))
	for i, s := range texts {
		p, err := poly.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		out[i] = p
	}
	return out
}

func TestBuiltinOperations(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	tests := []struct {
		op   string
		args []string
		want []string
	}{
		{"parse", []string{"x + x - 3x"}, []string{"- x"}},
		{"neg", []string{"2x^4 - 3x^5"}, []string{"+ 3x^5 - 2x^4"}},
		{"add", []string{"3x^2 + 4x", "x^2 - x"}, []string{"+ 4x^2 + 3x"}},
		{"sub", []string{"3x^3", "-3x^3"}, []string{"+ 6x^3"}},
		{"mul", []string{"x - 1", "x - 1"}, []string{"+ x^2 - 2x + 1"}},
		{"div", []string{"3x^3 - 2x^2 + 4x - 3", "x^2 + 3x + 3"}, []string{"+ 3x - 11"}},
		{"mod", []string{"3x^3 - 2x^2 + 4x - 3", "x^2 + 3x + 3"}, []string{"+ 28x + 30"}},
		{"divmod", []string{"3x^3 - 2x^2 + 4x - 3", "x^2 + 3x + 3"}, []string{"+ 3x - 11", "+ 28x + 30"}},
		{"divmod", []string{"6", "2"}, []string{"+ 3", "0"}},
		{"pow", []string{"x - 1", "2"}, []string{"+ x^2 - 2x + 1"}},
		{"pow", []string{"x^4", "3"}, []string{"+ x^12"}},
		{"pow", []string{"x^3 - x^2", "0"}, []string{"+ 1"}},
		{"degree", []string{"4x^3 + 9x^2"}, []string{"+ 3"}},
		{"degree", []string{""}, []string{"0"}},
		{"rhs", []string{"9 - 3x^2 + 4x^2 - 5x"}, []string{"+ 9"}},
		{"lead", []string{"-1/2x^3 + 1"}, []string{"- 1/2"}},
		{"isnum", []string{"-2"}, []string{"+ 1"}},
		{"isnum", []string{"x + 1"}, []string{"0"}},
		{"eval", []string{"x^2 + 4x - 2", "2"}, []string{"+ 10"}},
		{"eval", []string{"1/2x^2", "1/3"}, []string{"+ 1/18"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.op, func(t *testing.T) {
			t.Parallel()
			op := factory.MustGet(tt.op)
			res, err := op.Apply(context.Background(), parseAll(t, tt.args...), Options{})
			if err != nil {
				t.Fatalf("%s(%q) error = %v", tt.op, tt.args, err)
			}
			got := res.Strings()
			if len(got) != len(tt.want) {
				t.Fatalf("%s(%q) = %q, want %q", tt.op, tt.args, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("%s(%q)[%d] = %q, want %q", tt.op, tt.args, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuiltinOperationErrors(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	tests := []struct {
		name string
		op   string
		args []string
		opts Options
		want error
	}{
		{"not divisible", "divmod", []string{"x^2 - 3x", "3x^3 + 4"}, Options{}, poly.ErrNotDivisible},
		{"div not divisible", "div", []string{"x", "x^2"}, Options{}, poly.ErrNotDivisible},
		{"mod by zero", "mod", []string{"x + 1", "0"}, Options{}, poly.ErrDivisionByZero},
		{"negative exponent", "pow", []string{"2x^2 - x", "-1"}, Options{}, poly.ErrUnsupportedExponent},
		{"zero to zero", "pow", []string{"0", "0"}, Options{}, poly.ErrUnsupportedExponent},
		{"rational exponent", "pow", []string{"x", "1/2"}, Options{}, ErrInvalidExponent},
		{"polynomial exponent", "pow", []string{"x", "x"}, Options{}, ErrInvalidExponent},
		{"huge exponent", "pow", []string{"x", "99999999999"}, Options{}, ErrInvalidExponent},
		{"exponent limit", "pow", []string{"2", "1000"}, Options{MaxExponent: 100}, ErrDegreeLimit},
		{"pow degree limit", "pow", []string{"x^10 + 1", "20"}, Options{MaxDegree: 100}, ErrDegreeLimit},
		{"mul degree limit", "mul", []string{"x^60", "x^60 + 1"}, Options{MaxDegree: 100}, ErrDegreeLimit},
		{"mul exponent overflow", "mul", []string{"x^18446744073709551615", "x"}, Options{}, ErrDegreeLimit},
		{"mul exponent overflow both sides", "mul", []string{"x^9223372036854775808 + 1", "x^9223372036854775808"}, Options{}, ErrDegreeLimit},
		{"add degree limit", "add", []string{"x^200", "1"}, Options{MaxDegree: 100}, ErrDegreeLimit},
		{"non-constant point", "eval", []string{"x^2", "x"}, Options{}, ErrNotConstant},
		{"arity", "add", []string{"x"}, Options{}, ErrArity},
		{"unknown strategy", "pow", []string{"x + 1", "2"}, Options{PowStrategy: "ternary"}, ErrUnknownStrategy},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := factory.MustGet(tt.op).Apply(context.Background(), parseAll(t, tt.args...), tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPowStrategiesAgree(t *testing.T) {
	t.Parallel()
	op := NewDefaultFactory().MustGet("pow")
	args := parseAll(t, "x^3 - 2x + 1/3", "7")

	binary, err := op.Apply(context.Background(), args, Options{PowStrategy: PowBinary})
	if err != nil {
		t.Fatal(err)
	}
	linear, err := op.Apply(context.Background(), args, Options{PowStrategy: PowLinear})
	if err != nil {
		t.Fatal(err)
	}
	if !binary.Values[0].Equal(linear.Values[0]) {
		t.Errorf("binary %s != linear %s", binary.Values[0], linear.Values[0])
	}
}

func TestIsDomainError(t *testing.T) {
	t.Parallel()
	for _, err := range []error{poly.ErrNotDivisible, poly.ErrDivisionByZero, poly.ErrUnsupportedExponent, ErrDegreeLimit, ErrNotConstant, ErrInvalidExponent} {
		if !IsDomainError(err) {
			t.Errorf("IsDomainError(%v) = false, want true", err)
		}
	}
	for _, err := range []error{nil, ErrArity, ErrUnknownOperation, poly.ErrParse, context.Canceled} {
		if IsDomainError(err) {
			t.Errorf("IsDomainError(%v) = true, want false", err)
		}
	}
}
