// Package transcoder wraps the external ffmpeg binary to produce
// segmented HLS output.
//
// Each invocation transcodes one input video to one resolution
// variant: a VOD playlist plus .ts segment files in the target
// directory. Encoding parameters are fixed (scale filter, veryfast
// preset, 48-frame GOP, 3 second segments) and invocations are bounded
// by a timeout. Failures are reported as *Error values carrying the
// resolution, input path and ffmpeg exit code.
//
// FFmpeg must be installed and available in the system PATH.
package transcoder
