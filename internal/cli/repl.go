// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive polynomial algebra.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/agbru/polycalc/internal/engine"
	"github.com/agbru/polycalc/internal/poly"
)

// LastResultVar names the variable holding the first value of the most
// recent successful evaluation.
const LastResultVar = "_"

var varNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration of each evaluation.
	Timeout time.Duration
	// Options are the evaluation options; the strategy can be changed
	// during the session.
	Options engine.Options
	// Verbose prints long polynomials in full.
	Verbose bool
}

// REPL is an interactive polynomial calculator session. Each line is either
// a command, an operation ("mul x - 1 ; x + 1"), a variable binding
// ("let p = x^2 - 1") or a bare polynomial, which is normalized.
type REPL struct {
	config  REPLConfig
	factory engine.Factory
	vars    map[string]poly.Polynomial
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - factory: The registry of available operations.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(factory engine.Factory, config REPLConfig) *REPL {
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		config:  config,
		factory: factory,
		vars:    make(map[string]poly.Polynomial),
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It reads and processes lines until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ColorGreen()+"poly> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			continue
		}
		eof := err != nil

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sPolynomial Calculator - Interactive Mode%s             %s║%s\n",
		ColorCyan(), ColorReset(), ColorBold(), ColorReset(), ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorCyan(), ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <p> [; <q>]%s   - Apply an operation (%s)\n", ColorYellow(), ColorReset(), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %s<p>%s                - Normalize a polynomial\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %slet <name> = ...%s   - Store a result; use it later as $name ($_ is the last result)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %svars%s               - List stored variables\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstrategy <name>%s    - Change the pow strategy (%s, %s)\n", ColorYellow(), ColorReset(), engine.PowBinary, engine.PowLinear)
	fmt.Fprintf(r.out, "  %sverbose%s            - Toggle full display of long polynomials\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %slist%s               - List available operations\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s             - Display current configuration\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s               - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s        - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

// processCommand executes one input line. It returns false if the REPL
// should exit.
func (r *REPL) processCommand(input string) bool {
	word, rest, _ := strings.Cut(input, " ")
	cmd := strings.ToLower(word)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "let":
		r.cmdLet(rest)
	case "vars":
		r.cmdVars()
	case "strategy":
		r.cmdStrategy(rest)
	case "verbose":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Verbose display: %s%s%s\n", ColorGreen(), onOff(r.config.Verbose), ColorReset())
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		r.run(input)
	}
	return true
}

// splitExpression separates an input line into an operation name and its
// operands. A line that does not start with a registered operation is a
// single polynomial to normalize.
func (r *REPL) splitExpression(input string) (string, []string) {
	word, rest, _ := strings.Cut(input, " ")
	if name := strings.ToLower(word); r.factory.Has(name) {
		if strings.TrimSpace(rest) == "" {
			return name, nil
		}
		operands := strings.Split(rest, ";")
		for i := range operands {
			operands[i] = strings.TrimSpace(operands[i])
		}
		return name, operands
	}
	return "parse", []string{input}
}

// resolve parses an operand, substituting $name references.
func (r *REPL) resolve(operand string) (poly.Polynomial, error) {
	if name, ok := strings.CutPrefix(operand, "$"); ok {
		p, exists := r.vars[name]
		if !exists {
			return poly.Polynomial{}, fmt.Errorf("undefined variable: $%s", name)
		}
		return p, nil
	}
	return poly.Parse(operand)
}

// evaluate applies the expression on the input line and stores its first
// value as the last result.
func (r *REPL) evaluate(input string) (string, engine.Result, time.Duration, error) {
	name, operands := r.splitExpression(input)
	op, err := r.factory.Get(name)
	if err != nil {
		return name, engine.Result{}, 0, err
	}
	if len(operands) != op.Arity() {
		return name, engine.Result{}, 0, fmt.Errorf("%s takes %d operand(s) separated by ';', got %d", name, op.Arity(), len(operands))
	}

	args := make([]poly.Polynomial, len(operands))
	for i, operand := range operands {
		if args[i], err = r.resolve(operand); err != nil {
			return name, engine.Result{}, 0, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	start := time.Now()
	result, err := op.Apply(ctx, args, r.config.Options)
	duration := time.Since(start)
	if err != nil {
		return name, engine.Result{}, duration, err
	}
	r.vars[LastResultVar] = result.Values[0]
	return name, result, duration, nil
}

// run evaluates an expression and prints its values.
func (r *REPL) run(input string) {
	name, result, duration, err := r.evaluate(input)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	DisplayResult(name, result, duration, r.config.Verbose, false, r.out)
}

// cmdLet handles "let <name> = <expression>".
func (r *REPL) cmdLet(args string) {
	name, expr, ok := strings.Cut(args, "=")
	name, expr = strings.TrimSpace(name), strings.TrimSpace(expr)
	if !ok || expr == "" {
		fmt.Fprintf(r.out, "%sUsage: let <name> = <expression>%s\n", ColorRed(), ColorReset())
		return
	}
	if !varNamePattern.MatchString(name) || name == LastResultVar {
		fmt.Fprintf(r.out, "%sInvalid variable name: %s%s\n", ColorRed(), name, ColorReset())
		return
	}

	_, result, _, err := r.evaluate(expr)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	r.vars[name] = result.Values[0]
	fmt.Fprintf(r.out, "%s$%s%s = %s%s%s\n", ColorMagenta(), name, ColorReset(), ColorGreen(), result.Values[0], ColorReset())
}

func (r *REPL) cmdVars() {
	if len(r.vars) == 0 {
		fmt.Fprintln(r.out, "No variables defined.")
		return
	}
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		text, _ := truncate(r.vars[name].String())
		fmt.Fprintf(r.out, "  %s$%-10s%s = %s\n", ColorMagenta(), name, ColorReset(), text)
	}
}

func (r *REPL) cmdStrategy(args string) {
	name := strings.ToLower(args)
	if !engine.ValidPowStrategy(name) {
		fmt.Fprintf(r.out, "%sUsage: strategy <%s|%s>%s\n", ColorRed(), engine.PowBinary, engine.PowLinear, ColorReset())
		return
	}
	r.config.Options.PowStrategy = name
	fmt.Fprintf(r.out, "Pow strategy changed to: %s%s%s\n", ColorGreen(), name, ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable operations:%s\n", ColorBold(), ColorReset())
	for _, name := range r.factory.List() {
		op, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.out, "  %s%-8s%s %d  %s\n", ColorYellow(), name, ColorReset(), op.Arity(), op.Summary())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	strategy := r.config.Options.PowStrategy
	if strategy == "" {
		strategy = engine.PowBinary
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Pow strategy:   %s%s%s\n", ColorCyan(), strategy, ColorReset())
	fmt.Fprintf(r.out, "  Max degree:     %s%s%s\n", ColorCyan(), limitString(r.config.Options.MaxDegree), ColorReset())
	fmt.Fprintf(r.out, "  Max exponent:   %s%s%s\n", ColorCyan(), limitString(r.config.Options.MaxExponent), ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ColorCyan(), r.config.Timeout, ColorReset())
	fmt.Fprintf(r.out, "  Verbose:        %s%s%s\n", ColorCyan(), onOff(r.config.Verbose), ColorReset())
	fmt.Fprintf(r.out, "  Variables:      %s%d%s\n", ColorCyan(), len(r.vars), ColorReset())
	fmt.Fprintln(r.out)
}

func limitString(v uint64) string {
	if v == 0 {
		return "unlimited"
	}
	return fmt.Sprint(v)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
