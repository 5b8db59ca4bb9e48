// Package parallel provides helpers for goroutines that report errors
// independently of each other.
package parallel

import "sync"

// ErrorCollector gathers the errors of indexed tasks running concurrently.
// Err returns the error of the lowest failed index, so the outcome does not
// depend on scheduling. The zero value is ready to use.
//
//	var ec parallel.ErrorCollector
//	for i, job := range jobs {
//	    i, job := i, job
//	    g.Go(func() error {
//	        ec.SetError(i, run(job))
//	        return nil
//	    })
//	}
//	_ = g.Wait()
//	if err := ec.Err(); err != nil {
//	    return err
//	}
type ErrorCollector struct {
	mu       sync.Mutex
	err      error
	index    int
	failures int
}

// SetError records err for the task at index. Nil errors are ignored.
//
// Parameters:
//   - index: The index of the task that produced err.
//   - err: The error to record (nil is ignored).
func (c *ErrorCollector) SetError(index int, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	if c.err == nil || index < c.index {
		c.err = err
		c.index = index
	}
}

// Err returns the error of the lowest failed index, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Failures returns the number of errors recorded.
func (c *ErrorCollector) Failures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

// Reset clears the collector for reuse.
func (c *ErrorCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = nil
	c.index = 0
	c.failures = 0
}
