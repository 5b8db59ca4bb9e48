// Package orchestration runs batches of polynomial evaluations concurrently
// and reports on their outcome.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/polycalc/internal/cli"
	"github.com/agbru/polycalc/internal/config"
	"github.com/agbru/polycalc/internal/engine"
	apperrors "github.com/agbru/polycalc/internal/errors"
	"github.com/agbru/polycalc/internal/parallel"
	"github.com/agbru/polycalc/internal/service"
	"github.com/agbru/polycalc/internal/ui"
)

// JobResult is the outcome of one batch job.
type JobResult struct {
	Job Job
	// Result holds the produced polynomials. It is empty if Err is set.
	Result engine.Result
	// Duration is the time taken by the evaluation.
	Duration time.Duration
	// Err is the error of the job, if any.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking workers when
// the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// progressLogThreshold is the progress step between two debug log lines.
const progressLogThreshold = 0.5

// ExecuteJobs evaluates jobs concurrently, at most cfg.Workers at a time.
//
// Progress is published through an engine.ProgressSubject that feeds the
// terminal display, the debug log and the Prometheus progress gauge. A
// failing job does not stop the others.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - factory: The registry the operations are looked up in.
//   - jobs: The jobs to run.
//   - cfg: The application configuration (workers, strategy, limits).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []JobResult: The results, in job order.
//   - error: The error of the first failed job in job order, or nil.
func ExecuteJobs(ctx context.Context, factory engine.Factory, jobs []Job, cfg config.AppConfig, out io.Writer) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))
	opts := cfg.ToOptions()

	progressChan := make(chan engine.ProgressUpdate, len(jobs)*ProgressBufferMultiplier)
	subject := engine.NewProgressSubject()
	subject.Register(engine.NewChannelObserver(progressChan))
	subject.Register(engine.NewLoggingObserver(log.Logger, progressLogThreshold))
	metrics := engine.NewMetricsObserver()
	subject.Register(metrics)
	defer metrics.ResetMetrics()

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(jobs), out)

	var collector parallel.ErrorCollector
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}

	for i, job := range jobs {
		idx, job := i, job
		g.Go(func() error {
			start := time.Now()
			res, err := runJob(ctx, factory, subject, idx, job, opts)
			if err != nil {
				err = fmt.Errorf("line %d: %w", job.Line, err)
				// Failed jobs count as finished for the progress display.
				subject.Notify(idx, 1.0)
			}
			results[idx] = JobResult{Job: job, Result: res, Duration: time.Since(start), Err: err}
			collector.SetError(idx, err)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results, collector.Err()
}

func runJob(ctx context.Context, factory engine.Factory, subject *engine.ProgressSubject, idx int, job Job, opts engine.Options) (engine.Result, error) {
	op, err := factory.Get(job.Op)
	if err != nil {
		return engine.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return engine.Result{}, err
	}
	args, err := service.ParseOperands(job.Operands, 0)
	if err != nil {
		return engine.Result{}, err
	}
	return op.ApplyWithObservers(ctx, subject, idx, args, opts)
}

// AnalyzeResults prints a table of the batch outcome and returns the exit
// code of the batch.
//
// Parameters:
//   - results: The job results, in job order.
//   - cfg: The application configuration (verbose display).
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: ExitSuccess if every job succeeded, else the exit code of the
//     first failure in job order.
func AnalyzeResults(results []JobResult, cfg config.AppConfig, out io.Writer) int {
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Batch Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sLine%s\t%sOperation%s\t%sDuration%s\t%sResult%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ %v%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			successCount++
			status = fmt.Sprintf("%s%s%s", ui.ColorGreen(), resultText(res.Result, cfg.Verbose), ui.ColorReset())
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%d\t%s%s%s\t%s%s%s\t%s\n",
			res.Job.Line,
			ui.ColorBlue(), res.Job.Op, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if firstError != nil {
		fmt.Fprintf(out, "\nBatch Status: %d of %d job(s) failed.\n", len(results)-successCount, len(results))
		return apperrors.HandleEvaluationError(firstError, 0, out, cli.CLIColorProvider{})
	}
	fmt.Fprintf(out, "\nBatch Status: Success. %d job(s) evaluated.\n", successCount)
	return apperrors.ExitSuccess
}

// resultText joins the values of r with " ; ", shortening long values
// unless verbose is set.
func resultText(r engine.Result, verbose bool) string {
	const maxWidth = 60
	text := strings.Join(r.Strings(), " ; ")
	if !verbose && len(text) > maxWidth {
		text = text[:maxWidth-3] + "..."
	}
	return text
}
