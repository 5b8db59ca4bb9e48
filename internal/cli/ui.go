// Package cli renders the polycalc command line: evaluation results, batch
// progress, the interactive REPL and shell completion scripts.
package cli

//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/polycalc/internal/engine"
	"github.com/agbru/polycalc/internal/ui"
	"github.com/briandowns/spinner"
)

// FormatExecutionDuration formats d for display: microseconds below a
// millisecond, milliseconds below a second, and d.String() otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the length from which a formatted polynomial is
	// truncated on standard output.
	TruncationLimit = 400
	// DisplayEdges is the number of characters kept at each end of a
	// truncated polynomial.
	DisplayEdges = 120
	// ProgressRefreshRate is the refresh period of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return ui.GetCurrentTheme().Primary }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return ui.GetCurrentTheme().Info }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code from the current theme.
func ColorUnderline() string { return ui.GetCurrentTheme().Underline }

// Spinner abstracts the terminal spinner used by DisplayProgress.
type Spinner interface {
	// Start begins the animation.
	Start()
	// Stop halts the animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState holds the progress of each job of a batch.
type ProgressState struct {
	progresses []float64
}

// NewProgressState tracks numJobs jobs, all at 0.
func NewProgressState(numJobs int) *ProgressState {
	if numJobs < 0 {
		numJobs = 0
	}
	return &ProgressState{progresses: make([]float64, numJobs)}
}

// Update records value for the job at index. Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress of all jobs, in [0, 1].
func (ps *ProgressState) CalculateAverage() float64 {
	if len(ps.progresses) == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(len(ps.progresses))
}

// Completed returns the number of jobs at 100%.
func (ps *ProgressState) Completed() int {
	n := 0
	for _, p := range ps.progresses {
		if p >= 1.0 {
			n++
		}
	}
	return n
}

// progressBar renders progress, clamped to [0, 1], as a bar of length runes.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress renders a spinner, a progress bar and an ETA for a batch
// of numJobs jobs until progressChan is closed. It is meant to run in its
// own goroutine and calls wg.Done when it returns.
//
// Parameters:
//   - wg: Signalled when the display routine is complete.
//   - progressChan: The progress updates of the jobs.
//   - numJobs: The number of jobs contributing to the progress.
//   - out: The writer the progress is rendered to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan engine.ProgressUpdate, numJobs int, out io.Writer) {
	defer wg.Done()
	if numJobs <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressWithETA(numJobs)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "Jobs %d/%d: %s\n", state.Completed(), numJobs,
					FormatProgressBarWithETA(state.CalculateAverage(), 0, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.Index, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" Jobs %d/%d: %s", state.Completed(), numJobs,
				FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}

// resultLabels names the values of a result for display.
func resultLabels(op string, n int) []string {
	if op == "divmod" && n == 2 {
		return []string{"Quotient", "Remainder"}
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "Result"
		if n > 1 {
			labels[i] = fmt.Sprintf("Result %d", i+1)
		}
	}
	return labels
}

// truncate shortens s to its edges when it exceeds TruncationLimit.
func truncate(s string) (string, bool) {
	if len(s) <= TruncationLimit {
		return s, false
	}
	return s[:DisplayEdges] + " ... " + s[len(s)-DisplayEdges:], true
}

// DisplayResult prints the values of an evaluation.
//
// Parameters:
//   - op: The operation that produced result.
//   - result: The values to print.
//   - duration: The evaluation time.
//   - verbose: If true, long polynomials are printed in full.
//   - details: If true, the degree and term count of each value are printed.
//   - out: The output writer.
func DisplayResult(op string, result engine.Result, duration time.Duration, verbose, details bool, out io.Writer) {
	labels := resultLabels(op, len(result.Values))
	truncated := false
	for i, v := range result.Values {
		text := v.String()
		if !verbose {
			var cut bool
			text, cut = truncate(text)
			truncated = truncated || cut
		}
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n", ColorBold(), labels[i], ColorReset(), ColorGreen(), text, ColorReset())
		if details {
			fmt.Fprintf(out, "  degree %s%d%s, %s%d%s term(s)\n",
				ColorCyan(), v.Degree(), ColorReset(), ColorCyan(), v.Len(), ColorReset())
		}
	}
	if details {
		durationStr := FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Evaluation time: %s%s%s\n", ColorYellow(), durationStr, ColorReset())
	}
	if truncated {
		fmt.Fprintf(out, "(Tip: use the %s-v%s or %s-verbose%s option to display the full value)\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
	}
}
