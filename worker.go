package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// workerPool manages a pool of goroutines that run snapshot refreshes
// asynchronously, so API handlers can request a refresh without blocking
// on the dashboard round trip
type workerPool struct {
	workers int            // Number of active workers
	queue   chan task      // Channel for receiving refresh tasks
	wg      sync.WaitGroup // WaitGroup for graceful shutdown synchronization
	once    sync.Once      // Ensure Stop is only called once
}

// task is one queued refresh request
type task struct {
	reason string // What triggered the refresh, for logging
}

// Start initializes the worker pool by launching all worker goroutines
func (wp *workerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop gracefully shuts down the worker pool by closing queue and waiting for completion
func (wp *workerPool) Stop() {
	wp.once.Do(func() {
		close(wp.queue) // Close the task queue to signal workers to stop
		wp.wg.Wait()    // Wait for all workers to finish processing
	})
}

// worker processes refresh tasks from the queue until the channel closes.
// Failed refreshes are logged and dropped; the stale snapshot stays in
// place and the next trigger (task, timer or first-fetch gate) retries.
func (wp *workerPool) worker() {
	defer wp.wg.Done()

	for t := range wp.queue {
		// Bound each refresh so a hung dashboard cannot pin a worker
		ctx, cancel := context.WithTimeout(context.Background(), RefreshTaskTimeout)
		err := dashboardCacheInstance.refreshNow(ctx)
		cancel()

		if err != nil {
			logger.Error("Refresh task failed",
				zap.String("reason", t.reason),
				zap.Error(err),
			)
		}
	}
}

// Submit queues a refresh task without blocking; when the queue is full
// the task is dropped because a pending refresh already covers it
func (wp *workerPool) Submit(reason string) {
	select {
	case wp.queue <- task{reason: reason}:
		// Task successfully queued
	default:
		logger.Warn("Refresh queue full, task dropped", zap.String("reason", reason))
	}
}
