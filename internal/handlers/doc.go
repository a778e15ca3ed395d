// Package handlers implements the videoflix HTTP API.
//
// The catalog endpoints (/api/videos) list and create video records;
// creation stores the uploaded original and dispatches a transcode
// job. The streaming endpoints serve HLS artifacts from the media
// tree: the master playlist is gated on the video being ready, while
// variant playlists and segments are served whenever they exist on
// disk. Health probes and version/build info round out the surface.
package handlers
