package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"videoflix/internal/database"
	"videoflix/internal/logging"
	"videoflix/internal/metrics"
	"videoflix/internal/playlist"
	"videoflix/internal/queue"
	"videoflix/internal/transcoder"
)

// PoolConfig carries the tunables for a worker pool.
type PoolConfig struct {
	// Workers is the number of concurrent transcode workers. Values
	// below 1 are raised to 1.
	Workers int

	// MediaRoot is the directory under which variant and master
	// playlists are written.
	MediaRoot string

	// Profiles is the resolution ladder, ascending. Defaults to
	// transcoder.DefaultProfiles when empty.
	Profiles []transcoder.Profile

	// OnFailure, when set, is called after a job's record has been
	// marked failed. Intended for alerting hooks.
	OnFailure func(job queue.Job, err error)
}

// Pool consumes transcode jobs from the queue and runs them to
// completion. Each job produces every resolution variant sequentially,
// then the master playlist, then a poster thumbnail; distinct jobs run
// concurrently across workers.
type Pool struct {
	store  VideoStore
	trans  Invoker
	thumbs Thumbnailer
	queue  *queue.Queue
	cfg    PoolConfig
	wg     sync.WaitGroup
}

// NewPool builds a Pool around the given collaborators. thumbs may be
// nil to disable poster generation.
func NewPool(store VideoStore, trans Invoker, thumbs Thumbnailer, q *queue.Queue, cfg PoolConfig) *Pool {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = transcoder.DefaultProfiles()
	}
	return &Pool{
		store:  store,
		trans:  trans,
		thumbs: thumbs,
		queue:  q,
		cfg:    cfg,
	}
}

// Start launches the worker goroutines. Workers exit when the queue is
// closed and drained, or when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	logging.Info("Starting transcode pool with %d workers", p.cfg.Workers)
	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			logging.Debug("Transcode worker %d stopping: %v", id, ctx.Err())
			return
		case job, ok := <-p.queue.Jobs():
			if !ok {
				logging.Debug("Transcode worker %d stopping: queue closed", id)
				return
			}
			metrics.QueueDepth.Set(float64(p.queue.Depth()))
			if err := p.process(ctx, job); err != nil {
				logging.Error("Transcode job for video %d failed: %v", job.VideoID, err)
				if p.cfg.OnFailure != nil {
					p.cfg.OnFailure(job, err)
				}
			}
		}
	}
}

// process runs one job end to end. On any error the video's record is
// marked failed before the error is returned, so a reader never sees a
// terminal record with work still in flight.
func (p *Pool) process(ctx context.Context, job queue.Job) error {
	metrics.TranscodeJobsInProgress.Inc()
	defer metrics.TranscodeJobsInProgress.Dec()
	start := time.Now()

	video, err := p.store.VideoByID(ctx, job.VideoID)
	if err != nil {
		// No record to mark failed; surface the mismatch as-is.
		metrics.TranscodeJobsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("resolve video %d: %w", job.VideoID, err)
	}

	if err := p.store.SetStatus(ctx, video.ID, database.StatusProcessing); err != nil {
		metrics.TranscodeJobsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("mark video %d processing: %w", video.ID, err)
	}
	logging.Info("Transcoding video %d (%q)", video.ID, video.Title)

	if err := p.run(ctx, video); err != nil {
		if statusErr := p.store.SetStatus(ctx, video.ID, database.StatusFailed); statusErr != nil {
			logging.Error("Failed to mark video %d failed: %v", video.ID, statusErr)
		}
		metrics.TranscodeJobsTotal.WithLabelValues("failed").Inc()
		return err
	}

	if err := p.store.SetStatus(ctx, video.ID, database.StatusReady); err != nil {
		metrics.TranscodeJobsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("mark video %d ready: %w", video.ID, err)
	}
	metrics.TranscodeJobsTotal.WithLabelValues("ready").Inc()
	metrics.TranscodeJobDuration.Observe(time.Since(start).Seconds())
	logging.Info("Video %d ready in %v", video.ID, time.Since(start).Round(time.Millisecond))
	return nil
}

// run produces every variant and the master playlist for one video.
func (p *Pool) run(ctx context.Context, video *database.Video) error {
	videoDir := playlist.VideoDir(p.cfg.MediaRoot, video.ID)
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		return fmt.Errorf("create video directory: %w", err)
	}

	// A master playlist left behind by an earlier run must not survive
	// a rerun that fails partway.
	if err := playlist.RemoveMaster(p.cfg.MediaRoot, video.ID); err != nil {
		return fmt.Errorf("remove stale master playlist: %w", err)
	}

	for _, profile := range p.cfg.Profiles {
		outDir := playlist.VariantDir(p.cfg.MediaRoot, video.ID, profile.Label)
		if err := p.trans.Transcode(ctx, video.OriginalFile, profile, outDir); err != nil {
			return err
		}
		logging.Debug("Video %d: %s variant done", video.ID, profile.Label)
	}

	if err := playlist.WriteMaster(p.cfg.MediaRoot, video.ID, p.cfg.Profiles); err != nil {
		return fmt.Errorf("write master playlist: %w", err)
	}

	if p.thumbs != nil {
		if path, err := p.thumbs.Generate(ctx, video.OriginalFile, video.ID); err != nil {
			logging.Warn("Poster generation for video %d failed: %v", video.ID, err)
		} else if err := p.store.SetThumbnail(ctx, video.ID, path); err != nil {
			logging.Warn("Failed to record poster for video %d: %v", video.ID, err)
		}
	}
	return nil
}
