package transcoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"videoflix/internal/logging"
	"videoflix/internal/metrics"
)

// DefaultTimeout bounds a single ffmpeg invocation. A stuck encoder
// marks the job failed instead of hanging the worker forever.
const DefaultTimeout = 30 * time.Minute

// How much captured stderr to keep on an Error.
const stderrTailBytes = 2048

// Error describes a failed transcode of one resolution variant.
type Error struct {
	Resolution string
	InputPath  string
	// ExitCode is the ffmpeg exit code, or -1 when the process could
	// not be run at all (missing input, timeout, exec failure).
	ExitCode int
	Stderr   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("transcode %s of %s failed (exit code %d)", e.Resolution, e.InputPath, e.ExitCode)
}

// Transcoder invokes ffmpeg to produce segmented HLS output at fixed
// resolution variants.
type Transcoder struct {
	ffmpegPath string
	timeout    time.Duration
}

// New creates a Transcoder. ffmpegPath may be empty to resolve
// "ffmpeg" from PATH; timeout <= 0 selects DefaultTimeout.
func New(ffmpegPath string, timeout time.Duration) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Transcoder{
		ffmpegPath: ffmpegPath,
		timeout:    timeout,
	}
}

// buildArgs assembles the fixed ffmpeg argument shape for one variant.
// The parameters are not caller-configurable per job: scale filter to
// the target size, speed-leaning preset, fixed keyframe interval and
// segment duration, and a complete VOD playlist written once all
// segments exist. -y makes reruns overwrite prior partial output.
func buildArgs(inputPath string, profile Profile, outDir string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vf", "scale=" + profile.Size,
		"-preset", "veryfast",
		"-g", "48",
		"-hls_time", "3",
		"-hls_playlist_type", "vod",
		"-hls_segment_filename", filepath.Join(outDir, "index%03d.ts"),
		filepath.Join(outDir, "index.m3u8"),
	}
}

// Transcode produces the HLS variant for one resolution profile:
// playlist and segment files under outDir. The output directory is
// created if needed; a rerun fully regenerates the files.
//
// A non-zero ffmpeg exit, a missing input file, or a timeout is
// reported as a *Error.
func (t *Transcoder) Transcode(ctx context.Context, inputPath string, profile Profile, outDir string) error {
	if _, err := os.Stat(inputPath); err != nil {
		return &Error{
			Resolution: profile.Label,
			InputPath:  inputPath,
			ExitCode:   -1,
			Stderr:     fmt.Sprintf("input file: %v", err),
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	args := buildArgs(inputPath, profile, outDir)
	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logging.Debug("Transcoding %s -> %s (%s)", inputPath, outDir, profile.Label)
	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if err != nil {
		metrics.ResolutionFailuresTotal.WithLabelValues(profile.Label).Inc()

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		detail := stderrTail(stderr.String())
		if ctx.Err() != nil {
			detail = fmt.Sprintf("%v after %v; %s", ctx.Err(), duration.Round(time.Second), detail)
		}

		return &Error{
			Resolution: profile.Label,
			InputPath:  inputPath,
			ExitCode:   exitCode,
			Stderr:     detail,
		}
	}

	metrics.ResolutionDuration.WithLabelValues(profile.Label).Observe(duration.Seconds())
	logging.Debug("Transcoded %s in %v", profile.Label, duration.Round(time.Millisecond))
	return nil
}

// stderrTail keeps the end of ffmpeg's stderr, which carries the
// actual error line; the head is mostly banner and stream info.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= stderrTailBytes {
		return s
	}
	return s[len(s)-stderrTailBytes:]
}
