// Package pipeline dispatches and executes transcode jobs. The
// Dispatcher enqueues exactly one job per created video; the Pool runs
// a fixed set of workers that consume jobs and drive each video from
// pending through processing to ready or failed, producing the variant
// playlists, the master playlist, and a poster thumbnail along the
// way.
package pipeline
