package engine

// Power strategies accepted by Options.PowStrategy.
const (
	// PowBinary raises by repeated squaring.
	PowBinary = "binary"
	// PowLinear raises by n-1 successive multiplications.
	PowLinear = "linear"
)

// Options configures how operations are applied.
type Options struct {
	// PowStrategy selects the exponentiation algorithm used by "pow".
	// If empty, PowBinary is used.
	PowStrategy string
	// MaxDegree bounds the degree of any polynomial an operation may produce.
	// Operations whose result degree can be predicted (mul, pow) check the
	// bound before computing. If 0, there is no bound.
	MaxDegree uint64
	// MaxExponent bounds the exponent accepted by "pow". It protects against
	// constants raised to huge powers, whose degree stays 0. If 0, there is
	// no bound.
	MaxExponent uint64
}

// normalizeOptions returns a copy of opts with default values filled in.
func normalizeOptions(opts Options) Options {
	normalized := opts
	if normalized.PowStrategy == "" {
		normalized.PowStrategy = PowBinary
	}
	return normalized
}

// ValidPowStrategy reports whether s names a known power strategy.
func ValidPowStrategy(s string) bool {
	return s == PowBinary || s == PowLinear
}
