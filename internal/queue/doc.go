// Package queue provides the typed, in-process transcode job queue
// shared by the dispatcher and the worker pool.
//
// A job carries only a video id. Delivery is at-most-once per job:
// exactly one worker receives each enqueued job, and nothing re-queues
// a job automatically. The worker side tolerates duplicate dispatches
// for the same video because transcode output is regenerated
// idempotently.
package queue
