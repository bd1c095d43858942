package deletion

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleTracker_ReturnsWorkError(t *testing.T) {
	tracker := NewConsoleTracker(1)
	boom := errors.New("boom")

	err := tracker.AdvanceAndTrack("web/0", func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestConsoleTracker_AdvancesAfterWork(t *testing.T) {
	tracker := NewConsoleTracker(2)
	ran := false

	require.NoError(t, tracker.AdvanceAndTrack("web/0", func() error {
		// Progress must not have advanced yet while work is running.
		tracker.mu.Lock()
		assert.Equal(t, 0, tracker.done)
		tracker.mu.Unlock()
		ran = true
		return nil
	}))

	assert.True(t, ran)
	assert.Equal(t, 1, tracker.done)
}

func TestConsoleTracker_ConcurrentAdvance(t *testing.T) {
	const n = 20
	tracker := NewConsoleTracker(n)

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tracker.AdvanceAndTrack("web/0", func() error { return nil })
		}()
	}
	wg.Wait()

	assert.Equal(t, n, tracker.done)
}
