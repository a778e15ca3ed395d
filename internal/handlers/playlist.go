package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"videoflix/internal/database"
	"videoflix/internal/filesystem"
	"videoflix/internal/logging"
	"videoflix/internal/playlist"
	"videoflix/internal/transcoder"

	"github.com/gorilla/mux"
)

const (
	contentTypePlaylist = "application/vnd.apple.mpegurl"
	contentTypeSegment  = "video/mp2t"
)

// segmentPattern matches the segment names ffmpeg produces for our
// fixed -hls_segment_filename template.
var segmentPattern = regexp.MustCompile(`^index[0-9]{3,}\.ts$`)

// validResolutions is the set of labels in the resolution ladder.
var validResolutions = func() map[string]bool {
	m := make(map[string]bool)
	for _, label := range transcoder.Labels(transcoder.DefaultProfiles()) {
		m[label] = true
	}
	return m
}()

// serveMedia opens path with stale-handle retry and streams it with
// range support. Returns false when the file is absent or unreadable;
// callers translate that into a 404.
func serveMedia(w http.ResponseWriter, r *http.Request, path, contentType string) bool {
	info, err := filesystem.Stat(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return false
	}
	f, err := filesystem.Open(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return false
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// videoID extracts and parses the {id} route variable.
func videoID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// MasterPlaylist serves the master playlist for a video. It exists
// only once every variant has been produced, so anything but a ready
// video is a 404.
func (h *Handlers) MasterPlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := videoID(r)
	if !ok {
		writeJSONError(w, "invalid video id", http.StatusNotFound)
		return
	}

	video, err := h.catalog.VideoByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeJSONError(w, "video not found", http.StatusNotFound)
			return
		}
		logging.Error("Failed to load video %d: %v", id, err)
		writeJSONError(w, "failed to load video", http.StatusInternalServerError)
		return
	}

	if video.Status != database.StatusReady {
		writeJSONError(w, "video not ready", http.StatusNotFound)
		return
	}

	path := playlist.MasterPath(h.mediaDir, id)
	if !serveMedia(w, r, path, contentTypePlaylist) {
		// A ready record without a master playlist on disk means the
		// media tree and the catalog disagree.
		logging.Warn("Master playlist missing for ready video %d", id)
		writeJSONError(w, "video not ready", http.StatusNotFound)
	}
}

// VariantPlaylist serves one resolution's media playlist. Absence is
// always a 404, never a server error: during processing the variants
// appear one by one.
func (h *Handlers) VariantPlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := videoID(r)
	if !ok {
		writeJSONError(w, "invalid video id", http.StatusNotFound)
		return
	}

	resolution := mux.Vars(r)["resolution"]
	if !validResolutions[resolution] {
		writeJSONError(w, "unknown resolution", http.StatusNotFound)
		return
	}

	path := playlist.VariantPlaylistPath(h.mediaDir, id, resolution)
	if !serveMedia(w, r, path, contentTypePlaylist) {
		writeJSONError(w, "playlist not found", http.StatusNotFound)
	}
}

// Segment serves one MPEG-TS segment from a variant directory.
// Segment names are validated against the fixed template so route
// input never reaches the filesystem unchecked.
func (h *Handlers) Segment(w http.ResponseWriter, r *http.Request) {
	id, ok := videoID(r)
	if !ok {
		writeJSONError(w, "invalid video id", http.StatusNotFound)
		return
	}

	vars := mux.Vars(r)
	resolution := vars["resolution"]
	segment := vars["segment"]

	if !validResolutions[resolution] || !segmentPattern.MatchString(segment) {
		writeJSONError(w, "segment not found", http.StatusNotFound)
		return
	}

	path := playlist.SegmentPath(h.mediaDir, id, resolution, segment)
	if !serveMedia(w, r, path, contentTypeSegment) {
		writeJSONError(w, "segment not found", http.StatusNotFound)
	}
}
