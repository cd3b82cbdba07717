// File: internal/pipeline/deadline.go
// Author: momentics <momentics@gmail.com>
//
// Helpers for bounding shutdown pokes by api.Config.ShutdownTimeout. A
// zero deadline means wait indefinitely, matching the original loader's
// stop(), which has no timeout at all.

package pipeline

import (
	"sync"
	"time"
)

// waitWithDeadline waits for wg with no timeout if deadline is zero,
// otherwise returns false if deadline elapses before wg finishes.
// sync.WaitGroup has no native deadline support, so this races the wait
// against a timer in its own goroutine.
func waitWithDeadline(wg *sync.WaitGroup, deadline time.Time) bool {
	if deadline.IsZero() {
		wg.Wait()
		return true
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(time.Until(deadline)):
		return false
	}
}

// deadlineExceeded reports whether a non-zero deadline has passed.
func deadlineExceeded(deadline time.Time) bool {
	return !deadline.IsZero() && time.Now().After(deadline)
}
