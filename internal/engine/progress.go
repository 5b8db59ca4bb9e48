package engine

// ProgressUpdate carries the progress of one unit of work (an operation or a
// batch) from the producer to the user interface.
type ProgressUpdate struct {
	// Index identifies the unit of work, allowing the UI to tell concurrent
	// units apart.
	Index int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback form of progress reporting.
type ProgressReporter func(progress float64)
