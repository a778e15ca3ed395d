package handlers

import (
	"context"
	"time"

	"videoflix/internal/database"
	"videoflix/internal/startup"
)

// Catalog is the video repository view the HTTP layer needs.
type Catalog interface {
	CreateVideo(ctx context.Context, v *database.Video) (int64, error)
	VideoByID(ctx context.Context, id int64) (*database.Video, error)
	ListVideos(ctx context.Context) ([]database.Video, error)
	Ping(ctx context.Context) error
}

// JobDispatcher hands a created video to the transcode pipeline.
type JobDispatcher interface {
	Dispatch(videoID int64) error
}

// DepthReporter exposes the transcode queue backlog for health
// reporting. May be nil.
type DepthReporter interface {
	Depth() int
}

type Handlers struct {
	catalog      Catalog
	dispatcher   JobDispatcher
	queue        DepthReporter
	mediaDir     string
	originalsDir string
	startTime    time.Time
}

func New(catalog Catalog, dispatcher JobDispatcher, queue DepthReporter, config *startup.Config) *Handlers {
	return &Handlers{
		catalog:      catalog,
		dispatcher:   dispatcher,
		queue:        queue,
		mediaDir:     config.MediaDir,
		originalsDir: config.OriginalsDir,
		startTime:    time.Now(),
	}
}
