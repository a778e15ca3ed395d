package pipeline

import (
	"fmt"
	"time"

	"videoflix/internal/logging"
	"videoflix/internal/metrics"
	"videoflix/internal/queue"
)

// Dispatcher hands newly created videos to the transcode queue. Each
// video is dispatched exactly once, immediately after its record is
// created; there is no rescan or retry path.
type Dispatcher struct {
	queue Enqueuer
}

// NewDispatcher returns a Dispatcher producing onto q.
func NewDispatcher(q Enqueuer) *Dispatcher {
	return &Dispatcher{queue: q}
}

// Dispatch enqueues a transcode job for the given video. A returned
// error means the job was not accepted (queue full or shut down); the
// video record then stays in its pending state.
func (d *Dispatcher) Dispatch(videoID int64) error {
	job := queue.Job{VideoID: videoID, EnqueuedAt: time.Now()}
	if err := d.queue.Enqueue(job); err != nil {
		metrics.DispatchFailuresTotal.Inc()
		logging.Error("Failed to dispatch transcode job for video %d: %v", videoID, err)
		return fmt.Errorf("dispatch transcode job for video %d: %w", videoID, err)
	}
	logging.Debug("Dispatched transcode job for video %d", videoID)
	return nil
}
