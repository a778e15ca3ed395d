// Package thumbnail generates poster images for videos.
//
// A frame is grabbed a few seconds into the source with ffmpeg, then
// resized and re-encoded as JPEG. Poster generation is best-effort:
// the worker logs and continues when it fails, since a missing poster
// never blocks playback.
package thumbnail
