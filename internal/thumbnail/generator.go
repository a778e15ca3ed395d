package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"videoflix/internal/logging"
	"videoflix/internal/metrics"
	"videoflix/internal/playlist"
)

const (
	// Seek offset for the poster frame; skips leaders and black intros.
	captureOffset = "3"

	// Output width; height follows the source aspect ratio.
	posterWidth = 640

	frameGrabTimeout = 2 * time.Minute
)

// Generator produces a poster thumbnail for a video by grabbing a
// frame with ffmpeg and resizing it.
type Generator struct {
	ffmpegPath string
	mediaRoot  string
}

// New creates a Generator writing posters under mediaRoot. ffmpegPath
// may be empty to resolve "ffmpeg" from PATH.
func New(ffmpegPath, mediaRoot string) *Generator {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Generator{
		ffmpegPath: ffmpegPath,
		mediaRoot:  mediaRoot,
	}
}

// Generate grabs a frame from inputPath, scales it to the poster
// width, and stores it as videos/{id}/thumbnail.jpg. It returns the
// path relative to the media root, which is what the catalog record
// stores.
func (g *Generator) Generate(ctx context.Context, inputPath string, videoID int64) (string, error) {
	videoDir := playlist.VideoDir(g.mediaRoot, videoID)
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		return "", fmt.Errorf("create video directory: %w", err)
	}

	frame := filepath.Join(videoDir, ".frame.jpg")
	defer func() {
		if err := os.Remove(frame); err != nil && !os.IsNotExist(err) {
			logging.Warn("failed to remove temporary frame %s: %v", frame, err)
		}
	}()

	if err := g.grabFrame(ctx, inputPath, frame); err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	img, err := imaging.Open(frame)
	if err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("decode poster frame: %w", err)
	}

	poster := imaging.Resize(img, posterWidth, 0, imaging.Lanczos)
	dest := filepath.Join(videoDir, "thumbnail.jpg")
	if err := imaging.Save(poster, dest, imaging.JPEGQuality(85)); err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("save poster: %w", err)
	}

	metrics.ThumbnailGenerationsTotal.WithLabelValues("success").Inc()

	rel, err := filepath.Rel(g.mediaRoot, dest)
	if err != nil {
		return dest, nil
	}
	return rel, nil
}

// grabFrame extracts a single frame a few seconds into the video.
func (g *Generator) grabFrame(ctx context.Context, inputPath, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, frameGrabTimeout)
	defer cancel()

	args := buildFrameArgs(inputPath, outPath)
	cmd := exec.CommandContext(ctx, g.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg frame grab: %w - %s", err, lastLine(stderr.String()))
	}
	return nil
}

// buildFrameArgs assembles the ffmpeg arguments for a single frame
// grab with overwrite enabled.
func buildFrameArgs(inputPath, outPath string) []string {
	return []string{
		"-y",
		"-ss", captureOffset,
		"-i", inputPath,
		"-frames:v", "1",
		"-q:v", "2",
		outPath,
	}
}

// lastLine returns the final non-empty line of ffmpeg's stderr, which
// is where the actionable error message lives.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
