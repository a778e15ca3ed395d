package queue

import (
	"errors"
	"testing"
	"time"
)

func TestEnqueueDequeue(t *testing.T) {
	q := New(4)

	job := Job{VideoID: 7, EnqueuedAt: time.Now()}
	if err := q.Enqueue(job); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if q.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", q.Depth())
	}

	select {
	case got := <-q.Jobs():
		if got.VideoID != 7 {
			t.Errorf("dequeued VideoID = %d, want 7", got.VideoID)
		}
	default:
		t.Fatal("no job available on Jobs()")
	}
}

func TestEnqueueFull(t *testing.T) {
	q := New(2)

	for i := int64(1); i <= 2; i++ {
		if err := q.Enqueue(Job{VideoID: i}); err != nil {
			t.Fatalf("Enqueue(%d) error: %v", i, err)
		}
	}

	err := q.Enqueue(Job{VideoID: 3})
	if !errors.Is(err, ErrFull) {
		t.Errorf("Enqueue on full queue error = %v, want ErrFull", err)
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	q := New(2)
	q.Close()

	err := q.Enqueue(Job{VideoID: 1})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Enqueue after Close error = %v, want ErrClosed", err)
	}
}

func TestCloseDeliversPendingJobs(t *testing.T) {
	q := New(4)
	for i := int64(1); i <= 3; i++ {
		if err := q.Enqueue(Job{VideoID: i}); err != nil {
			t.Fatalf("Enqueue(%d) error: %v", i, err)
		}
	}
	q.Close()

	var got []int64
	for job := range q.Jobs() {
		got = append(got, job.VideoID)
	}
	if len(got) != 3 {
		t.Fatalf("received %d jobs after Close, want 3", len(got))
	}
	for i, id := range []int64{1, 2, 3} {
		if got[i] != id {
			t.Errorf("job %d = video %d, want %d", i, got[i], id)
		}
	}
}

func TestCloseIdempotent(t *testing.T) {
	q := New(1)
	q.Close()
	q.Close() // must not panic
}

func TestMinimumCapacity(t *testing.T) {
	q := New(0)
	if err := q.Enqueue(Job{VideoID: 1}); err != nil {
		t.Errorf("Enqueue on capacity-0 queue error: %v (capacity should floor at 1)", err)
	}
}
