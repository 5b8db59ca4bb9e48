package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/polycalc/internal/config"
	"github.com/agbru/polycalc/internal/engine"
)

// PrintExecutionConfig prints the settings of a run before it starts.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The output writer.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	opts := cfg.ToOptions()
	strategy := opts.PowStrategy
	if strategy == "" {
		strategy = engine.PowBinary
	}

	fmt.Fprintf(out, "%s--- Execution Configuration ---%s\n", ColorBold(), ColorReset())
	if cfg.BatchFile != "" {
		fmt.Fprintf(out, "Batch file: %s%s%s, %s%d%s worker(s).\n",
			ColorMagenta(), cfg.BatchFile, ColorReset(), ColorCyan(), cfg.Workers, ColorReset())
	} else {
		fmt.Fprintf(out, "Operation: %s%s%s", ColorBlue(), cfg.Op, ColorReset())
		if len(cfg.Operands) > 0 {
			fmt.Fprintf(out, " on %s%s%s", ColorMagenta(), strings.Join(cfg.Operands, " ; "), ColorReset())
		}
		fmt.Fprintln(out, ".")
	}
	fmt.Fprintf(out, "Pow strategy: %s%s%s, max degree: %s%s%s, max exponent: %s%s%s.\n",
		ColorCyan(), strategy, ColorReset(),
		ColorCyan(), limitString(opts.MaxDegree), ColorReset(),
		ColorCyan(), limitString(opts.MaxExponent), ColorReset())
	fmt.Fprintf(out, "Execution timeout set to %s%s%s.\n\n", ColorYellow(), cfg.Timeout, ColorReset())
}
