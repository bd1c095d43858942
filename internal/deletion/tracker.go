package deletion

import (
	"log"
	"sync"
)

// ProgressTracker accepts per-instance progress. It wraps the unit of work
// it is given: the work runs first, then progress advances, whether the work
// succeeded or not. The work's error is returned unchanged.
//
// Implementations are called concurrently by the worker pool and must
// serialize their own state.
type ProgressTracker interface {
	AdvanceAndTrack(name string, work func() error) error
}

// ConsoleTracker reports progress as "done/total" log lines.
type ConsoleTracker struct {
	mu    sync.Mutex
	done  int
	total int
}

// NewConsoleTracker creates a tracker for total units of work.
func NewConsoleTracker(total int) *ConsoleTracker {
	return &ConsoleTracker{total: total}
}

// AdvanceAndTrack runs work, then advances the progress counter.
func (t *ConsoleTracker) AdvanceAndTrack(name string, work func() error) error {
	err := work()

	t.mu.Lock()
	t.done++
	done := t.done
	t.mu.Unlock()

	if err != nil {
		log.Printf("[Delete] %d/%d %s failed: %v", done, t.total, name, err)
	} else {
		log.Printf("[Delete] %d/%d %s done", done, t.total, name)
	}
	return err
}
