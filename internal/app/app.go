package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agbru/polycalc/internal/cli"
	"github.com/agbru/polycalc/internal/config"
	"github.com/agbru/polycalc/internal/engine"
	apperrors "github.com/agbru/polycalc/internal/errors"
	"github.com/agbru/polycalc/internal/logging"
	"github.com/agbru/polycalc/internal/orchestration"
	"github.com/agbru/polycalc/internal/server"
	"github.com/agbru/polycalc/internal/service"
	"github.com/agbru/polycalc/internal/ui"
)

// Application represents the polycalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (CLI, batch, server, REPL).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the polynomial operations.
	Factory engine.Factory
	// ErrWriter is the writer for error and log output (typically os.Stderr).
	ErrWriter io.Writer
	// In is the REPL input, and the batch source when the batch file is "-"
	// (typically os.Stdin).
	In io.Reader
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := engine.GlobalFactory()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "polycalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
		In:        os.Stdin,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (completion, server, REPL,
// batch or single evaluation).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Respects -no-color and the NO_COLOR environment variable.
	ui.InitTheme(a.Config.NoColor, a.Config.Theme)

	if err := logging.Configure(a.ErrWriter, a.Config.LogLevel); err != nil {
		fmt.Fprintf(a.ErrWriter, "Invalid log level: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.Interactive:
		return a.runREPL(out)
	case a.Config.BatchFile != "":
		return a.runBatch(ctx, out)
	default:
		return a.runEvaluate(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		Timeout: a.Config.Timeout,
		Options: a.Config.ToOptions(),
		Verbose: a.Config.Verbose,
	})
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		JSON:       a.Config.JSONOutput,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}
}

// runEvaluate applies the configured operation to the positional operands.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	svc := service.NewEvaluatorService(a.Factory, a.Config.ToOptions(), 0)
	start := time.Now()
	result, err := svc.Evaluate(ctx, a.Config.Op, a.Config.Operands)
	duration := time.Since(start)

	if err != nil {
		switch {
		case a.Config.JSONOutput:
			_ = cli.WriteJSON(out, cli.NewJSONResult(a.Config.Op, a.Config.Operands, result, duration, err))
			return apperrors.ExitCode(err)
		case a.Config.Quiet:
			return apperrors.HandleEvaluationError(err, duration, a.ErrWriter, cli.CLIColorProvider{})
		default:
			return apperrors.HandleEvaluationError(err, duration, out, cli.CLIColorProvider{})
		}
	}

	if err := cli.DisplayResultWithConfig(out, a.Config.Op, a.Config.Operands, result, duration, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runBatch evaluates every job of the batch file.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	jobs, err := a.readBatch()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Batch error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	progressOut := out
	if a.Config.JSONOutput || a.Config.Quiet {
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, out)
	}

	results, firstErr := orchestration.ExecuteJobs(ctx, a.Factory, jobs, a.Config, progressOut)

	if a.Config.OutputFile != "" {
		if err := writeBatchFile(a.Config.OutputFile, results); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}

	switch {
	case a.Config.JSONOutput:
		if err := cli.WriteJSON(out, batchJSON(results)); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitCode(firstErr)
	case a.Config.Quiet:
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(a.ErrWriter, "%v\n", res.Err)
				continue
			}
			cli.DisplayQuietResult(out, res.Result)
		}
		return apperrors.ExitCode(firstErr)
	default:
		code := orchestration.AnalyzeResults(results, a.Config, out)
		if a.Config.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
				cli.ColorGreen(), cli.ColorCyan(), a.Config.OutputFile, cli.ColorReset())
		}
		return code
	}
}

// readBatch parses the batch file, or a.In when the file name is "-".
func (a *Application) readBatch() ([]orchestration.Job, error) {
	if a.Config.BatchFile == "-" {
		return orchestration.ParseBatch(a.In)
	}
	f, err := os.Open(a.Config.BatchFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return orchestration.ParseBatch(f)
}

// batchJSON converts batch results to their JSON form.
func batchJSON(results []orchestration.JobResult) []cli.JSONResult {
	out := make([]cli.JSONResult, len(results))
	for i, res := range results {
		out[i] = cli.NewJSONResult(res.Job.Op, res.Job.Operands, res.Result, res.Duration, res.Err)
	}
	return out
}

// writeBatchFile saves the batch results to path as a JSON array.
func writeBatchFile(path string, results []orchestration.JobResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	if err := cli.WriteJSON(f, batchJSON(results)); err != nil {
		return err
	}
	return f.Close()
}

// IsHelpError checks if the error is a help flag error (-help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
