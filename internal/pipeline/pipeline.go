package pipeline

import (
	"context"

	"videoflix/internal/database"
	"videoflix/internal/queue"
	"videoflix/internal/transcoder"
)

// VideoStore is the narrow repository view the pipeline needs: resolve
// a job to its record and persist status changes. The catalog database
// satisfies it; tests use an in-memory double.
type VideoStore interface {
	VideoByID(ctx context.Context, id int64) (*database.Video, error)
	SetStatus(ctx context.Context, id int64, status database.Status) error
	SetThumbnail(ctx context.Context, id int64, path string) error
}

// Invoker produces one resolution variant of a video.
type Invoker interface {
	Transcode(ctx context.Context, inputPath string, profile transcoder.Profile, outDir string) error
}

// Thumbnailer generates a poster image for a video and returns the
// stored path. Poster generation is best-effort; the pool logs and
// continues when it fails.
type Thumbnailer interface {
	Generate(ctx context.Context, inputPath string, videoID int64) (string, error)
}

// Enqueuer is the producer side of the job queue.
type Enqueuer interface {
	Enqueue(job queue.Job) error
}
