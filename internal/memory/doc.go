// Package memory configures the Go runtime memory limit from
// container environment variables so the heap leaves headroom for the
// ffmpeg processes the transcode workers spawn.
package memory
