// Package config turns command-line flags and POLYCALC_* environment
// variables into an AppConfig and validates it. Priority is: flags, then
// environment, then defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/polycalc/internal/engine"
	apperrors "github.com/agbru/polycalc/internal/errors"
	"github.com/agbru/polycalc/internal/ui"
	"github.com/rs/zerolog"
)

// EnvPrefix is the prefix of every environment variable read by polycalc.
const EnvPrefix = "POLYCALC_"

// Default configuration values.
const (
	// DefaultOp is the operation applied when none is named: it normalizes
	// its operand to canonical form.
	DefaultOp = "parse"
	// DefaultTimeout bounds a single evaluation or a whole batch.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "warn"
	// DefaultTheme is the default color theme.
	DefaultTheme = "dark"
)

// validShells lists the shells supported by -completion.
var validShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig aggregates the settings of one polycalc run.
type AppConfig struct {
	// Op is the operation to apply (e.g. "add", "divmod").
	Op string
	// Operands are the polynomials given as positional arguments.
	Operands []string
	// PowStrategy selects the exponentiation algorithm ("binary" or "linear").
	PowStrategy string
	// MaxDegree bounds result degrees; 0 disables the bound.
	MaxDegree uint64
	// MaxExponent bounds pow exponents; 0 disables the bound.
	MaxExponent uint64
	// Timeout bounds the evaluation (or the whole batch).
	Timeout time.Duration
	// JSONOutput prints results as JSON.
	JSONOutput bool
	// Quiet prints bare results, one per line, for scripts.
	Quiet bool
	// Verbose prints long polynomials in full instead of truncating them.
	Verbose bool
	// Details prints the degree and term count of each result.
	Details bool
	// NoColor disables colors. NO_COLOR is honoured as well.
	NoColor bool
	// Theme names the color theme ("dark", "light", "none").
	Theme string
	// ServerMode starts the HTTP API.
	ServerMode bool
	// Port is the listening port in server mode.
	Port string
	// Interactive starts the REPL.
	Interactive bool
	// BatchFile is a file of "op: a ; b" lines to evaluate concurrently.
	// "-" reads standard input.
	BatchFile string
	// Workers bounds the number of concurrent batch evaluations.
	Workers int
	// OutputFile, if set, also writes the result to this path.
	OutputFile string
	// Completion prints a shell completion script for the named shell.
	Completion string
	// LogLevel is the zerolog level of diagnostic output.
	LogLevel string
}

// ToOptions converts the configuration into engine options.
func (c AppConfig) ToOptions() engine.Options {
	return engine.Options{
		PowStrategy: c.PowStrategy,
		MaxDegree:   c.MaxDegree,
		MaxExponent: c.MaxExponent,
	}
}

// evaluatesOperands reports whether the run evaluates the positional
// operands, as opposed to serving, running a batch, a REPL or completion.
func (c AppConfig) evaluatesOperands() bool {
	return !c.ServerMode && !c.Interactive && c.BatchFile == "" && c.Completion == ""
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableOps: The names of the registered operations.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableOps []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if !engine.ValidPowStrategy(c.PowStrategy) {
		return apperrors.NewConfigError("unrecognized power strategy: '%s'. Valid strategies are: %s, %s", c.PowStrategy, engine.PowBinary, engine.PowLinear)
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	if _, ok := ui.LookupTheme(c.Theme); !ok {
		return apperrors.NewConfigError("unrecognized theme: '%s'. Valid themes are: %s", c.Theme, strings.Join(ui.ThemeNames(), ", "))
	}
	if c.Completion != "" && !contains(validShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell for completion: '%s'. Valid shells are: %s", c.Completion, strings.Join(validShells, ", "))
	}
	if !contains(availableOps, c.Op) {
		return apperrors.NewConfigError("unrecognized operation: '%s'. Valid operations are: [%s]", c.Op, strings.Join(availableOps, ", "))
	}
	if c.evaluatesOperands() && len(c.Operands) == 0 {
		return apperrors.NewConfigError("nothing to evaluate: pass one or more polynomials, or use -interactive, -batch or -server")
	}
	return nil
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// and validates the result.
//
// Positional arguments are operands. When -op is not given and the first
// positional argument names an operation, it is taken as the operation:
//
//	polycalc divmod "3x^3 - 2x^2 + 4x - 3" "x^2 + 3x + 3"
//
// Parameters:
//   - programName: The program name, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage are printed.
//   - availableOps: The names of the registered operations.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp, a parsing error, or an error if validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableOps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	opHelp := fmt.Sprintf("Operation to apply, one of [%s].", strings.Join(availableOps, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Op, "op", "", opHelp)
	fs.StringVar(&config.PowStrategy, "strategy", engine.PowBinary, "Exponentiation strategy for pow: 'binary' or 'linear'.")
	fs.Uint64Var(&config.MaxDegree, "max-degree", 0, "Reject results of higher degree (0 for no limit).")
	fs.Uint64Var(&config.MaxExponent, "max-exponent", 0, "Reject pow exponents above this value (0 for no limit).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - bare results for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Display long polynomials in full.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Display degree, term count and timing of each result.")
	fs.BoolVar(&config.Details, "d", false, "Detailed output (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme: "+strings.Join(ui.ThemeNames(), ", ")+".")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.Interactive, "i", false, "Interactive mode (shorthand).")
	fs.StringVar(&config.BatchFile, "batch", "", "Evaluate every 'op: a ; b' line of a file ('-' for stdin).")
	fs.IntVar(&config.Workers, "workers", runtime.NumCPU(), "Number of concurrent batch evaluations.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error, disabled).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Operands = fs.Args()
	if config.Op == "" && len(config.Operands) > 0 && contains(availableOps, strings.ToLower(config.Operands[0])) {
		config.Op = strings.ToLower(config.Operands[0])
		config.Operands = config.Operands[1:]
	}
	if config.Op == "" {
		config.Op = DefaultOp
	}
	config.Op = strings.ToLower(config.Op)
	config.PowStrategy = strings.ToLower(config.PowStrategy)
	config.LogLevel = strings.ToLower(config.LogLevel)

	if err := config.Validate(availableOps); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
