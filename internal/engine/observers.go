package engine

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ChannelObserver forwards progress updates to a channel.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer that sends updates to ch. The
// channel should be buffered; updates are dropped when it is full. A nil
// channel discards every update.
//
// Parameters:
//   - ch: The channel receiving ProgressUpdate values.
//
// Returns:
//   - *ChannelObserver: The new observer.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver with a non-blocking send.
func (o *ChannelObserver) Update(index int, progress float64) {
	if o.channel == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}

	select {
	case o.channel <- ProgressUpdate{Index: index, Value: progress}:
	default:
		// Channel full, the UI catches up on the next update.
	}
}

// LoggingObserver logs progress with zerolog, throttled so that only changes
// of at least threshold are written.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	lastLog   map[int]float64
	mu        sync.Mutex
}

// NewLoggingObserver creates a logging observer. A non-positive threshold
// defaults to 0.1 (10%).
//
// Parameters:
//   - logger: The zerolog logger to use.
//   - threshold: Minimum progress change that triggers a log line.
//
// Returns:
//   - *LoggingObserver: The new observer.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(index int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last := o.lastLog[index]
	shouldLog := progress >= 1.0 ||
		last == 0 && progress > 0 ||
		progress-last >= o.threshold

	if shouldLog {
		o.logger.Debug().
			Int("index", index).
			Float64("progress", progress).
			Str("percent", fmt.Sprintf("%.1f%%", progress*100)).
			Msg("progress")
		o.lastLog[index] = progress
	}
}

var progressGauge = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "polycalc_progress",
		Help: "Current progress of polynomial evaluations (0.0 to 1.0)",
	},
	[]string{"index"},
)

// MetricsObserver exports progress to a Prometheus gauge.
type MetricsObserver struct {
	gauge *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer backed by the polycalc_progress
// gauge. Every observer shares the same gauge, labelled by index.
//
// Returns:
//   - *MetricsObserver: The new observer.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{gauge: progressGauge}
}

// Update implements ProgressObserver.
func (o *MetricsObserver) Update(index int, progress float64) {
	o.gauge.WithLabelValues(strconv.Itoa(index)).Set(progress)
}

// ResetMetrics clears the gauge for every index.
func (o *MetricsObserver) ResetMetrics() {
	o.gauge.Reset()
}

// NoOpObserver discards all updates.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (o *NoOpObserver) Update(int, float64) {}
