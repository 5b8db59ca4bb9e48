package cli

import (
	"fmt"
	"time"
)

// maxETA caps displayed estimates.
const maxETA = 24 * time.Hour

// ProgressWithETA adds a time-remaining estimate to ProgressState. The rate
// of progress is exponentially smoothed so that bursts of completed jobs do
// not make the estimate jump.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	rate         float64 // progress per second
}

// NewProgressWithETA tracks numJobs jobs, starting the clock now.
func NewProgressWithETA(numJobs int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numJobs),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records value for the job at index and re-estimates.
//
// Parameters:
//   - index: The index of the job.
//   - value: The job progress, in [0, 1].
//
// Returns:
//   - progress: The average progress of all jobs.
//   - eta: The estimated time remaining, or 0 while no estimate is available.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (progress float64, eta time.Duration) {
	return p.updateAt(index, value, time.Now())
}

func (p *ProgressWithETA) updateAt(index int, value float64, now time.Time) (float64, time.Duration) {
	p.Update(index, value)
	progress := p.CalculateAverage()
	elapsed := now.Sub(p.startTime)

	if elapsed < 100*time.Millisecond || progress <= 0.001 {
		p.lastUpdate = now
		p.lastProgress = progress
		return progress, 0
	}

	if since := now.Sub(p.lastUpdate).Seconds(); since > 0.05 {
		if delta := progress - p.lastProgress; delta > 0 {
			if p.rate > 0 {
				p.rate = 0.7*p.rate + 0.3*(delta/since)
			} else {
				p.rate = progress / elapsed.Seconds()
			}
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}

	return progress, p.estimate(progress)
}

// GetETA returns the current estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	return p.estimate(p.CalculateAverage())
}

func (p *ProgressWithETA) estimate(progress float64) time.Duration {
	if p.rate <= 0 || progress >= 1.0 {
		return 0
	}
	eta := time.Duration((1.0 - progress) / p.rate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// FormatETA renders an estimate as "< 1s", "42s", "2m30s" or "1h15m".
// A non-positive estimate renders as "calculating...".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		minutes, seconds := int(eta.Minutes()), int(eta.Seconds())%60
		if seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours, minutes := int(eta.Hours()), int(eta.Minutes())%60
	if minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, width), FormatETA(eta))
}
