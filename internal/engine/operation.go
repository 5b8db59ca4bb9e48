// Package engine exposes the polynomial algebra of package poly as a registry
// of named operations. Every operation is wrapped in a decorator that checks
// the operand count, honours context cancellation, records Prometheus metrics,
// opens an OpenTelemetry span and emits a debug log line, so the CLI, the
// batch runner and the HTTP server all evaluate expressions the same way.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/agbru/polycalc/internal/poly"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polycalc_operations_total",
			Help: "The total number of polynomial operations applied",
		},
		[]string{"operation", "status"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "polycalc_operation_duration_seconds",
			Help: "The duration of polynomial operations in seconds",
		},
		[]string{"operation"},
	)
)

// Result holds the polynomials produced by an operation. Most operations
// yield a single value; divmod yields the quotient and the remainder.
// Scalar answers (degree, rhs, isnum, eval) are constant polynomials.
type Result struct {
	Values []poly.Polynomial
}

// Single wraps one polynomial in a Result.
func Single(p poly.Polynomial) Result {
	return Result{Values: []poly.Polynomial{p}}
}

// Strings returns the formatted values of the result.
func (r Result) Strings() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = v.String()
	}
	return out
}

// Operation is the public interface of a named polynomial operation.
// Implementations are safe for concurrent use.
type Operation interface {
	// Apply evaluates the operation on args.
	//
	// Parameters:
	//   - ctx: The context for cancellation and deadlines.
	//   - args: The operands; their count must equal Arity().
	//   - opts: Evaluation options.
	//
	// Returns:
	//   - Result: The produced polynomials.
	//   - error: ErrArity, a context error, or a domain error from the operation.
	Apply(ctx context.Context, args []poly.Polynomial, opts Options) (Result, error)

	// ApplyWithObservers is Apply with progress notifications sent to subject
	// under the given index. A nil subject disables progress.
	ApplyWithObservers(ctx context.Context, subject *ProgressSubject, index int, args []poly.Polynomial, opts Options) (Result, error)

	// Name returns the registry name of the operation (e.g. "divmod").
	Name() string

	// Arity returns the number of operands the operation takes.
	Arity() int

	// Summary returns a one-line description for help output.
	Summary() string
}

// coreOperation is a pure operation without cross-cutting concerns.
// The decorator guarantees len(args) == Arity() and a normalized opts.
type coreOperation interface {
	Eval(ctx context.Context, args []poly.Polynomial, opts Options) (Result, error)
	Name() string
	Arity() int
	Summary() string
}

// TracedOperation implements Operation by decorating a coreOperation with
// arity checking, cancellation, metrics, tracing and logging.
type TracedOperation struct {
	core coreOperation
}

// NewOperation wraps core in a TracedOperation. It panics if core is nil.
//
// Parameters:
//   - core: The operation to decorate.
//
// Returns:
//   - Operation: The decorated operation.
func NewOperation(core coreOperation) Operation {
	if core == nil {
		panic("engine: the `coreOperation` implementation cannot be nil")
	}
	return &TracedOperation{core: core}
}

// Name delegates to the wrapped operation.
func (o *TracedOperation) Name() string { return o.core.Name() }

// Arity delegates to the wrapped operation.
func (o *TracedOperation) Arity() int { return o.core.Arity() }

// Summary delegates to the wrapped operation.
func (o *TracedOperation) Summary() string { return o.core.Summary() }

// Apply evaluates the operation without progress reporting.
func (o *TracedOperation) Apply(ctx context.Context, args []poly.Polynomial, opts Options) (Result, error) {
	return o.ApplyWithObservers(ctx, nil, 0, args, opts)
}

// ApplyWithObservers evaluates the operation and notifies subject with 0 when
// work starts and 1 when it completes successfully.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - subject: The progress subject, or nil.
//   - index: The identifier passed to observers.
//   - args: The operands.
//   - opts: Evaluation options.
//
// Returns:
//   - Result: The produced polynomials.
//   - error: An error if one occurred.
func (o *TracedOperation) ApplyWithObservers(ctx context.Context, subject *ProgressSubject, index int, args []poly.Polynomial, opts Options) (result Result, err error) {
	name := o.core.Name()
	ctx, span := otel.Tracer("engine").Start(ctx, "Apply")
	span.SetAttributes(attribute.String("operation", name), attribute.Int("operands", len(args)))
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		operationsTotal.WithLabelValues(name, status).Inc()
		operationDuration.WithLabelValues(name).Observe(duration)

		log.Debug().
			Str("op", name).
			Int("operands", len(args)).
			Float64("duration", duration).
			Str("status", status).
			Msg("operation completed")
	}()

	reporter := ProgressReporter(func(float64) {})
	if subject != nil {
		reporter = subject.AsProgressReporter(index)
	}

	if len(args) != o.core.Arity() {
		return Result{}, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, name, o.core.Arity(), len(args))
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	opts = normalizeOptions(opts)
	if !ValidPowStrategy(opts.PowStrategy) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.PowStrategy)
	}

	reporter(0)
	result, err = o.core.Eval(ctx, args, opts)
	if err != nil {
		return Result{}, err
	}
	if err := checkDegree(result, opts); err != nil {
		return Result{}, err
	}
	reporter(1.0)
	return result, nil
}

// checkDegree enforces Options.MaxDegree on every produced value.
func checkDegree(r Result, opts Options) error {
	if opts.MaxDegree == 0 {
		return nil
	}
	for _, v := range r.Values {
		if v.Degree() > opts.MaxDegree {
			return fmt.Errorf("%w: degree %d > %d", ErrDegreeLimit, v.Degree(), opts.MaxDegree)
		}
	}
	return nil
}
