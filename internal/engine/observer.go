package engine

import "sync"

// ProgressObserver receives progress notifications.
type ProgressObserver interface {
	// Update is called when progress changes.
	//
	// Parameters:
	//   - index: The unit of work identifier.
	//   - progress: The normalized progress value (0.0 to 1.0).
	Update(index int, progress float64)
}

// ProgressSubject fans progress notifications out to registered observers.
// It is safe for concurrent use.
type ProgressSubject struct {
	observers []ProgressObserver
	mu        sync.RWMutex
}

// NewProgressSubject creates a subject with no observers.
//
// Returns:
//   - *ProgressSubject: A new, empty subject ready to accept observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{
		observers: make([]ProgressObserver, 0),
	}
}

// Register adds an observer. Observers are notified in registration order.
//
// Parameters:
//   - observer: The observer to add. If nil, this call is a no-op.
func (s *ProgressSubject) Register(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer, keeping the order of the others.
//
// Parameters:
//   - observer: The observer to remove. Unknown or nil observers are ignored.
func (s *ProgressSubject) Unregister(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends a progress update to every registered observer, synchronously.
//
// Parameters:
//   - index: The unit of work identifier.
//   - progress: The normalized progress value (0.0 to 1.0).
func (s *ProgressSubject) Notify(index int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, observer := range s.observers {
		observer.Update(index, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsProgressReporter adapts the subject to the callback form.
//
// Parameters:
//   - index: The identifier passed to observers on every call.
//
// Returns:
//   - ProgressReporter: A function that notifies all observers under index.
func (s *ProgressSubject) AsProgressReporter(index int) ProgressReporter {
	return func(progress float64) {
		s.Notify(index, progress)
	}
}
