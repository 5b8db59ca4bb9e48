package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/polycalc/internal/engine"
)

// OutputConfig selects how an evaluation result is presented.
type OutputConfig struct {
	// OutputFile is the path to save the result to (empty for none).
	OutputFile string
	// Quiet prints bare values, one per line.
	Quiet bool
	// JSON prints a JSONResult document.
	JSON bool
	// Verbose prints long polynomials in full.
	Verbose bool
	// Details prints the degree and term count of each value.
	Details bool
}

// JSONResult is the JSON document of one evaluation.
type JSONResult struct {
	Op       string   `json:"op"`
	Operands []string `json:"operands"`
	Results  []string `json:"results,omitempty"`
	Duration string   `json:"duration"`
	Error    string   `json:"error,omitempty"`
}

// NewJSONResult builds the JSON document of an evaluation. When err is not
// nil the results are omitted and the error message is reported instead.
func NewJSONResult(op string, operands []string, result engine.Result, duration time.Duration, err error) JSONResult {
	jr := JSONResult{Op: op, Operands: operands, Duration: duration.String()}
	if err != nil {
		jr.Error = err.Error()
	} else {
		jr.Results = result.Strings()
	}
	return jr
}

// WriteJSON writes v as indented JSON.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteResultToFile saves an evaluation to path with a commented header.
// Missing parent directories are created.
//
// Parameters:
//   - path: The destination file.
//   - op: The operation that was applied.
//   - operands: The operands, as given.
//   - result: The values to save.
//   - duration: The evaluation time.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(path, op string, operands []string, result engine.Result, duration time.Duration) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Polynomial Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", op)
	for i, operand := range operands {
		fmt.Fprintf(file, "# Operand %d: %s\n", i+1, operand)
	}
	fmt.Fprintf(file, "# Duration: %s\n\n", duration)

	labels := resultLabels(op, len(result.Values))
	for i, v := range result.Values {
		fmt.Fprintf(file, "%s = %s\n", labels[i], v.String())
	}
	return file.Close()
}

// FormatQuietResult returns the values of result, one per line.
func FormatQuietResult(result engine.Result) string {
	return strings.Join(result.Strings(), "\n")
}

// DisplayQuietResult prints the values of result, one per line.
func DisplayQuietResult(out io.Writer, result engine.Result) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig prints an evaluation in the mode selected by
// config and saves it when config.OutputFile is set.
//
// Parameters:
//   - out: The output writer.
//   - op: The operation that was applied.
//   - operands: The operands, as given.
//   - result: The values to display.
//   - duration: The evaluation time.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if encoding or file output fails.
func DisplayResultWithConfig(out io.Writer, op string, operands []string, result engine.Result, duration time.Duration, config OutputConfig) error {
	switch {
	case config.JSON:
		if err := WriteJSON(out, NewJSONResult(op, operands, result, duration, nil)); err != nil {
			return err
		}
	case config.Quiet:
		DisplayQuietResult(out, result)
	default:
		DisplayResult(op, result, duration, config.Verbose, config.Details, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(config.OutputFile, op, operands, result, duration); err != nil {
		return err
	}
	if !config.Quiet && !config.JSON {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
	}
	return nil
}
