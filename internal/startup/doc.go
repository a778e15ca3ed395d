// Package startup handles application initialization, configuration
// loading, and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via
// [LoadConfig]; a .env file in the working directory is applied first.
// The following environment variables are supported:
//
//   - MEDIA_DIR: Path to the media directory (default: /media)
//   - DATABASE_DIR: Path to the database directory (default: /database)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable the metrics server (default: true)
//   - QUEUE_CAPACITY: Transcode queue capacity (default: 64)
//   - TRANSCODE_TIMEOUT: Per-resolution ffmpeg timeout as Go duration (default: 30m)
//   - TRANSCODE_WORKERS: Fixed worker count, overrides the CPU-based default
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log playlist/segment requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Directory Setup
//
// The media and database directories are created if missing and must
// both be writable: uploads land under MEDIA_DIR/originals and the
// pipeline writes playlists under MEDIA_DIR/videos.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via
// [GetBuildInfo].
package startup
