// Package async runs independent tasks concurrently under a worker budget.
package async

import (
	"context"
	"fmt"
	"sync"
)

// Task is a named unit of concurrent work.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Pool executes tasks with at most Workers running at once.
type Pool struct {
	Workers int
}

// Run schedules every task against the pool and waits for all workers to
// finish. Tasks beyond the worker budget wait for a free slot. Once a task
// has failed, queued tasks are no longer started; tasks already running are
// left to complete. The first failure is returned, wrapped with the task
// name.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}
	workers := p.Workers
	if workers <= 0 {
		return fmt.Errorf("pool requires a positive worker count, got %d", workers)
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	var (
		mu       sync.Mutex
		firstErr error
	)
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	queue := make(chan Task)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if failed() {
					// Drain the queue without starting new work.
					continue
				}
				if err := task.Func(ctx); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("%s: %w", task.Name, err)
					}
					mu.Unlock()
				}
			}
		}()
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	return firstErr
}
