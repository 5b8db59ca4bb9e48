package service

//go:generate mockgen -source=evaluator_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/polycalc/internal/engine"
	apperrors "github.com/agbru/polycalc/internal/errors"
	"github.com/agbru/polycalc/internal/poly"
)

var (
	// ErrInputTooLarge is returned when an operand exceeds the configured
	// maximum length.
	ErrInputTooLarge = errors.New("operand exceeds maximum length")
)

// Service evaluates named polynomial operations on textual operands.
// The CLI, the REPL and the HTTP server all go through it.
type Service interface {
	// Evaluate parses operands and applies the named operation.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - op: The operation name (e.g. "divmod").
	//   - operands: The operands in textual notation.
	//
	// Returns:
	//   - engine.Result: The produced polynomials.
	//   - error: An error if validation, parsing or evaluation fails.
	Evaluate(ctx context.Context, op string, operands []string) (engine.Result, error)
}

// EvaluatorService is the default Service. It resolves operations through a
// factory, enforces an operand length limit and applies shared options.
type EvaluatorService struct {
	factory       engine.Factory
	opts          engine.Options
	maxOperandLen int
	cache         *ParseCache
}

var _ Service = (*EvaluatorService)(nil)

// NewEvaluatorService creates an EvaluatorService.
//
// Parameters:
//   - factory: The factory to retrieve operations from.
//   - opts: The options applied to every evaluation.
//   - maxOperandLen: The maximum operand length in bytes (0 for no limit).
func NewEvaluatorService(factory engine.Factory, opts engine.Options, maxOperandLen int) *EvaluatorService {
	return &EvaluatorService{
		factory:       factory,
		opts:          opts,
		maxOperandLen: maxOperandLen,
	}
}

// WithParseCache makes the service parse operands through cache. A nil
// cache disables caching.
func (s *EvaluatorService) WithParseCache(cache *ParseCache) *EvaluatorService {
	s.cache = cache
	return s
}

// Options returns the options applied to every evaluation.
func (s *EvaluatorService) Options() engine.Options { return s.opts }

// Evaluate implements Service. Operands that fail to parse are reported as
// an apperrors.ValidationError wrapping the *poly.ParseError.
func (s *EvaluatorService) Evaluate(ctx context.Context, op string, operands []string) (engine.Result, error) {
	operation, err := s.factory.Get(op)
	if err != nil {
		return engine.Result{}, err
	}

	parse := poly.Parse
	if s.cache != nil {
		parse = s.cache.Parse
	}
	args, err := parseOperands(operands, s.maxOperandLen, parse)
	if err != nil {
		return engine.Result{}, err
	}

	return operation.Apply(ctx, args, s.opts)
}

// ParseOperands parses textual operands into polynomials.
//
// Parameters:
//   - operands: The operands in textual notation.
//   - maxLen: The maximum operand length in bytes (0 for no limit).
//
// Returns:
//   - []poly.Polynomial: The parsed operands, in order.
//   - error: ErrInputTooLarge, or an apperrors.ValidationError wrapping the
//     *poly.ParseError of the first operand that does not parse.
func ParseOperands(operands []string, maxLen int) ([]poly.Polynomial, error) {
	return parseOperands(operands, maxLen, poly.Parse)
}

func parseOperands(operands []string, maxLen int, parse func(string) (poly.Polynomial, error)) ([]poly.Polynomial, error) {
	args := make([]poly.Polynomial, len(operands))
	for i, text := range operands {
		field := fmt.Sprintf("operand[%d]", i)
		if maxLen > 0 && len(text) > maxLen {
			return nil, fmt.Errorf("%w: %s has %d bytes, limit is %d", ErrInputTooLarge, field, len(text), maxLen)
		}
		p, err := parse(text)
		if err != nil {
			msg := err.Error()
			var perr *poly.ParseError
			if errors.As(err, &perr) {
				msg = perr.Reason
			}
			return nil, apperrors.ValidationError{Field: field, Message: msg, Value: text, Cause: err}
		}
		args[i] = p
	}
	return args, nil
}
