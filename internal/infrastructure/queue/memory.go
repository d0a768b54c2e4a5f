package queue

import (
	"context"
	"errors"
	"sync"
)

const memoryQueueDepth = 256

// MemoryQueue is an in-process job queue backed by a buffered channel.
// It is the default driver for single-binary deployments where the API
// process runs its own worker pool. Jobs do not survive a restart.
type MemoryQueue struct {
	jobs   chan Job
	mu     sync.Mutex
	closed bool
}

// NewMemoryQueue creates an in-process queue
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		jobs: make(chan Job, memoryQueueDepth),
	}
}

// Enqueue publishes a job for processing
func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return errors.New("queue is closed")
	}
	q.mu.Unlock()

	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue blocks until a job is available or the context is cancelled
func (q *MemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	select {
	case job, ok := <-q.jobs:
		if !ok {
			return Job{}, errors.New("queue is closed")
		}
		return job, nil
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

// Close stops delivery; pending jobs are drained by running consumers
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	close(q.jobs)
	return nil
}
