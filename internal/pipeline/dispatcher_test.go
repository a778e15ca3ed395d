package pipeline

import (
	"errors"
	"testing"

	"videoflix/internal/queue"
)

type recordingEnqueuer struct {
	jobs []queue.Job
	err  error
}

func (r *recordingEnqueuer) Enqueue(job queue.Job) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func TestDispatchEnqueuesSingleJob(t *testing.T) {
	enq := &recordingEnqueuer{}
	d := NewDispatcher(enq)

	if err := d.Dispatch(42); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if len(enq.jobs) != 1 {
		t.Fatalf("expected 1 enqueued job, got %d", len(enq.jobs))
	}
	job := enq.jobs[0]
	if job.VideoID != 42 {
		t.Errorf("job video ID = %d, want 42", job.VideoID)
	}
	if job.EnqueuedAt.IsZero() {
		t.Error("job enqueue time not set")
	}
}

func TestDispatchPropagatesQueueErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"full queue", queue.ErrFull},
		{"closed queue", queue.ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(&recordingEnqueuer{err: tt.err})
			err := d.Dispatch(7)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("error %v does not wrap %v", err, tt.err)
			}
		})
	}
}
