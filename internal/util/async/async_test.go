package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EmptyTaskList(t *testing.T) {
	t.Parallel()
	p := &Pool{Workers: 4}
	assert.NoError(t, p.Run(context.Background(), nil))
}

func TestRun_InvalidWorkerCount(t *testing.T) {
	t.Parallel()
	p := &Pool{}
	err := p.Run(context.Background(), []Task{{Name: "x", Func: func(context.Context) error { return nil }}})
	assert.Error(t, err)
}

func TestRun_AllTasksRunOnce(t *testing.T) {
	t.Parallel()
	var count atomic.Int32

	tasks := make([]Task, 20)
	for i := range tasks {
		tasks[i] = Task{
			Name: fmt.Sprintf("task-%d", i),
			Func: func(context.Context) error {
				count.Add(1)
				return nil
			},
		}
	}

	p := &Pool{Workers: 3}
	require.NoError(t, p.Run(context.Background(), tasks))
	assert.Equal(t, int32(20), count.Load())
}

func TestRun_RespectsWorkerBudget(t *testing.T) {
	t.Parallel()
	var running, peak atomic.Int32

	tasks := make([]Task, 12)
	for i := range tasks {
		tasks[i] = Task{
			Name: fmt.Sprintf("task-%d", i),
			Func: func(context.Context) error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return nil
			},
		}
	}

	p := &Pool{Workers: 2}
	require.NoError(t, p.Run(context.Background(), tasks))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRun_ReturnsFirstErrorWithTaskName(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	tasks := []Task{
		{Name: "ok", Func: func(context.Context) error { return nil }},
		{Name: "bad", Func: func(context.Context) error { return boom }},
	}

	p := &Pool{Workers: 1}
	err := p.Run(context.Background(), tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad")
}

func TestRun_NoNewWorkAfterFailure(t *testing.T) {
	t.Parallel()
	var started sync.Map

	tasks := []Task{
		{Name: "fails", Func: func(context.Context) error {
			started.Store("fails", true)
			return errors.New("boom")
		}},
		{Name: "second", Func: func(context.Context) error {
			started.Store("second", true)
			return nil
		}},
		{Name: "third", Func: func(context.Context) error {
			started.Store("third", true)
			return nil
		}},
	}

	// One worker makes scheduling deterministic: the failure is recorded
	// before the remaining tasks are picked up.
	p := &Pool{Workers: 1}
	err := p.Run(context.Background(), tasks)
	require.Error(t, err)

	_, ok := started.Load("second")
	assert.False(t, ok)
	_, ok = started.Load("third")
	assert.False(t, ok)
}

func TestRun_InFlightTasksFinishAfterFailure(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	var finished atomic.Bool

	tasks := []Task{
		{Name: "slow", Func: func(context.Context) error {
			<-release
			finished.Store(true)
			return nil
		}},
		{Name: "fails", Func: func(context.Context) error {
			close(release)
			return errors.New("boom")
		}},
	}

	p := &Pool{Workers: 2}
	err := p.Run(context.Background(), tasks)
	require.Error(t, err)
	assert.True(t, finished.Load())
}
