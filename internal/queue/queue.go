package queue

import (
	"errors"
	"sync"
	"time"

	"videoflix/internal/metrics"
)

// Errors returned by Enqueue. Both surface to the creator path as a
// dispatch failure: the video record exists but no job will run.
var (
	ErrFull   = errors.New("transcode queue is full")
	ErrClosed = errors.New("transcode queue is closed")
)

// Job identifies one video to transcode. The payload is deliberately
// just the id: the worker re-reads the record so stale job data can
// never override the catalog.
type Job struct {
	VideoID    int64
	EnqueuedAt time.Time
}

// Queue is an in-process typed job queue with a fixed capacity.
// Enqueue never blocks; a full queue is reported to the producer
// instead of stalling the request path. Each job is delivered to
// exactly one consumer.
type Queue struct {
	jobs   chan Job
	mu     sync.Mutex
	closed bool
}

// New creates a queue holding at most capacity pending jobs.
func New(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		jobs: make(chan Job, capacity),
	}
}

// Enqueue adds a job to the queue without blocking. It returns ErrFull
// when the queue is at capacity and ErrClosed after Close.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	select {
	case q.jobs <- job:
		metrics.JobsEnqueuedTotal.Inc()
		metrics.QueueDepth.Set(float64(len(q.jobs)))
		return nil
	default:
		return ErrFull
	}
}

// Jobs returns the consumer side of the queue. The channel is closed
// by Close once drained of producers; workers range over it.
func (q *Queue) Jobs() <-chan Job {
	return q.jobs
}

// Depth returns the number of jobs currently waiting.
func (q *Queue) Depth() int {
	return len(q.jobs)
}

// Close stops accepting new jobs and closes the consumer channel.
// Jobs already enqueued are still delivered. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.jobs)
}
