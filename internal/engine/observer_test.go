package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestProgressSubject_RegisterUnregister(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	subject.Register(nil)
	if subject.ObserverCount() != 0 {
		t.Errorf("registering nil should not add observer, got %d", subject.ObserverCount())
	}

	a, b := NewNoOpObserver(), &recordingObserver{}
	subject.Register(a)
	subject.Register(b)
	if subject.ObserverCount() != 2 {
		t.Errorf("expected 2 observers, got %d", subject.ObserverCount())
	}

	subject.Unregister(a)
	subject.Unregister(nil)
	if subject.ObserverCount() != 1 {
		t.Errorf("expected 1 observer, got %d", subject.ObserverCount())
	}

	subject.AsProgressReporter(3)(0.5)
	if len(b.updates) != 1 || b.updates[0] != (ProgressUpdate{Index: 3, Value: 0.5}) {
		t.Errorf("updates = %v", b.updates)
	}
}

func TestChannelObserver(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 1)
	obs := NewChannelObserver(ch)
	obs.Update(1, 1.5)
	obs.Update(1, 0.2) // dropped, channel full

	got := <-ch
	if got.Value != 1.0 || got.Index != 1 {
		t.Errorf("got %v, want clamped {1 1}", got)
	}
	select {
	case u := <-ch:
		t.Errorf("unexpected update %v", u)
	default:
	}

	NewChannelObserver(nil).Update(0, 0.5)
}

func TestLoggingObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	obs := NewLoggingObserver(logger, 0.5)

	obs.Update(0, 0.1) // first update
	obs.Update(0, 0.2) // below threshold
	obs.Update(0, 1.0) // completion

	lines := strings.Count(buf.String(), "\n")
	if lines != 2 {
		t.Errorf("expected 2 log lines, got %d: %s", lines, buf.String())
	}

	if NewLoggingObserver(logger, 0).threshold != 0.1 {
		t.Error("non-positive threshold should default to 0.1")
	}
}

func TestMetricsObserver(t *testing.T) {
	t.Parallel()
	obs := NewMetricsObserver()
	obs.Update(0, 0.5)
	obs.ResetMetrics()
}
