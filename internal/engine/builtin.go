package engine

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/agbru/polycalc/internal/poly"
)

// funcOp is a coreOperation backed by a plain function.
type funcOp struct {
	name    string
	summary string
	arity   int
	eval    func(ctx context.Context, args []poly.Polynomial, opts Options) (Result, error)
}

func (f *funcOp) Name() string    { return f.name }
func (f *funcOp) Arity() int      { return f.arity }
func (f *funcOp) Summary() string { return f.summary }

func (f *funcOp) Eval(ctx context.Context, args []poly.Polynomial, opts Options) (Result, error) {
	return f.eval(ctx, args, opts)
}

func unary(name, summary string, fn func(p poly.Polynomial) poly.Polynomial) func() coreOperation {
	return func() coreOperation {
		return &funcOp{name: name, summary: summary, arity: 1,
			eval: func(_ context.Context, args []poly.Polynomial, _ Options) (Result, error) {
				return Single(fn(args[0])), nil
			}}
	}
}

func binary(name, summary string, fn func(a, b poly.Polynomial) poly.Polynomial) func() coreOperation {
	return func() coreOperation {
		return &funcOp{name: name, summary: summary, arity: 2,
			eval: func(_ context.Context, args []poly.Polynomial, _ Options) (Result, error) {
				return Single(fn(args[0], args[1])), nil
			}}
	}
}

func custom(name, summary string, arity int, eval func(context.Context, []poly.Polynomial, Options) (Result, error)) func() coreOperation {
	return func() coreOperation {
		return &funcOp{name: name, summary: summary, arity: arity, eval: eval}
	}
}

// builtins lists the operations registered by NewDefaultFactory.
var builtins = []func() coreOperation{
	unary("parse", "normalize a polynomial to canonical form", func(p poly.Polynomial) poly.Polynomial { return p }),
	unary("neg", "negate a polynomial", poly.Polynomial.Neg),
	binary("add", "add two polynomials", poly.Polynomial.Add),
	binary("sub", "subtract the second polynomial from the first", poly.Polynomial.Sub),
	custom("mul", "multiply two polynomials", 2, evalMul),
	custom("div", "quotient of the long division", 2, evalDiv),
	custom("mod", "remainder of the long division", 2, evalMod),
	custom("divmod", "quotient and remainder of the long division", 2, evalDivMod),
	custom("pow", "raise a polynomial to a non-negative integer power", 2, evalPow),
	unary("degree", "degree of a polynomial (0 for zero)", func(p poly.Polynomial) poly.Polynomial {
		return poly.Constant(new(big.Rat).SetUint64(p.Degree()))
	}),
	unary("rhs", "constant term of a polynomial", func(p poly.Polynomial) poly.Polynomial {
		return poly.Constant(p.Rhs())
	}),
	unary("lead", "leading coefficient of a polynomial", func(p poly.Polynomial) poly.Polynomial {
		return poly.Constant(p.LeadingCoeff())
	}),
	unary("isnum", "1 if the polynomial is a plain number, else 0", func(p poly.Polynomial) poly.Polynomial {
		if p.IsNumeric() {
			return poly.One()
		}
		return poly.Zero()
	}),
	custom("eval", "evaluate the first polynomial at the constant second operand", 2, evalAt),
}

func evalMul(_ context.Context, args []poly.Polynomial, opts Options) (Result, error) {
	a, b := args[0], args[1]
	if a.NonZero() && b.NonZero() {
		// The product's degree is the largest exponent sum, so a carry here
		// is the only way poly.Mul can overflow.
		deg, carry := bits.Add64(a.Degree(), b.Degree(), 0)
		if carry != 0 {
			return Result{}, fmt.Errorf("%w: x^%d * x^%d overflows the exponent range", ErrDegreeLimit, a.Degree(), b.Degree())
		}
		if opts.MaxDegree > 0 && deg > opts.MaxDegree {
			return Result{}, fmt.Errorf("%w: product degree exceeds %d", ErrDegreeLimit, opts.MaxDegree)
		}
	}
	return Single(a.Mul(b)), nil
}

func evalDiv(_ context.Context, args []poly.Polynomial, _ Options) (Result, error) {
	q, err := args[0].Div(args[1])
	if err != nil {
		return Result{}, err
	}
	return Single(q), nil
}

func evalMod(_ context.Context, args []poly.Polynomial, _ Options) (Result, error) {
	r, err := args[0].Mod(args[1])
	if err != nil {
		return Result{}, err
	}
	return Single(r), nil
}

func evalDivMod(_ context.Context, args []poly.Polynomial, _ Options) (Result, error) {
	q, r, err := args[0].DivMod(args[1])
	if err != nil {
		return Result{}, err
	}
	return Result{Values: []poly.Polynomial{q, r}}, nil
}

func evalPow(_ context.Context, args []poly.Polynomial, opts Options) (Result, error) {
	base := args[0]
	n, err := exponentOf(args[1])
	if err != nil {
		return Result{}, err
	}

	if n > 0 {
		if opts.MaxExponent > 0 && uint64(n) > opts.MaxExponent {
			return Result{}, fmt.Errorf("%w: exponent %d > %d", ErrDegreeLimit, n, opts.MaxExponent)
		}
		hi, deg := bits.Mul64(base.Degree(), uint64(n))
		if hi != 0 || (opts.MaxDegree > 0 && deg > opts.MaxDegree) {
			return Result{}, fmt.Errorf("%w: x^%d raised to %d", ErrDegreeLimit, base.Degree(), n)
		}
	}

	pow := base.Pow
	if opts.PowStrategy == PowLinear {
		pow = base.PowLinear
	}
	p, err := pow(n)
	if err != nil {
		return Result{}, err
	}
	return Single(p), nil
}

// exponentOf reads an integer exponent out of a constant polynomial.
// Negative values are passed through so that Pow reports them.
func exponentOf(p poly.Polynomial) (int, error) {
	if !p.IsNumeric() {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidExponent, p)
	}
	c := p.Rhs()
	if !c.IsInt() {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidExponent, c.RatString())
	}
	num := c.Num()
	if !num.IsInt64() || num.Int64() > math.MaxInt32 || num.Int64() < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidExponent, num)
	}
	return int(num.Int64()), nil
}

func evalAt(_ context.Context, args []poly.Polynomial, _ Options) (Result, error) {
	if !args[1].IsNumeric() {
		return Result{}, fmt.Errorf("%w: evaluation point %s", ErrNotConstant, args[1])
	}
	return Single(poly.Constant(args[0].Evaluate(args[1].Rhs()))), nil
}
