package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"videoflix/internal/database"
	"videoflix/internal/logging"
)

const (
	// maxUploadSize bounds a single upload request body.
	maxUploadSize = 2 << 30 // 2 GiB

	// multipartMemory is how much of the form is held in memory
	// before spilling to disk.
	multipartMemory = 32 << 20
)

// ListVideos returns the full catalog, newest first.
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.catalog.ListVideos(r.Context())
	if err != nil {
		logging.Error("Failed to list videos: %v", err)
		writeJSONError(w, "failed to list videos", http.StatusInternalServerError)
		return
	}
	if videos == nil {
		videos = []database.Video{}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, videos)
}

// CreateVideo accepts a multipart upload (title, description,
// category, file), stores the original, inserts the catalog record and
// dispatches a transcode job. When dispatch fails the record still
// exists in pending state; the response carries its id so the client
// is not left guessing.
func (h *Handlers) CreateVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeJSONError(w, "title is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	originalPath, err := h.saveOriginal(file, header.Filename)
	if err != nil {
		logging.Error("Failed to store uploaded file: %v", err)
		writeJSONError(w, "failed to store upload", http.StatusInternalServerError)
		return
	}

	record := &database.Video{
		Title:        title,
		Description:  strings.TrimSpace(r.FormValue("description")),
		Category:     strings.TrimSpace(r.FormValue("category")),
		OriginalFile: originalPath,
	}

	id, err := h.catalog.CreateVideo(r.Context(), record)
	if err != nil {
		logging.Error("Failed to create video record: %v", err)
		if rmErr := os.Remove(originalPath); rmErr != nil {
			logging.Warn("Failed to remove orphaned upload %s: %v", originalPath, rmErr)
		}
		writeJSONError(w, "failed to create video", http.StatusInternalServerError)
		return
	}

	if err := h.dispatcher.Dispatch(id); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, map[string]interface{}{
			"error": "video stored but transcoding could not be scheduled",
			"id":    id,
		})
		return
	}

	created, err := h.catalog.VideoByID(r.Context(), id)
	if err != nil {
		// The record exists; fall back to what we know.
		created = record
		created.ID = id
		created.Status = database.StatusPending
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, created)
}

// saveOriginal streams the upload into the originals directory under a
// unique name derived from the client filename.
func (h *Handlers) saveOriginal(src io.Reader, clientName string) (string, error) {
	base := filepath.Base(clientName)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload"
	}
	// Keep the extension, which ffmpeg uses as a container hint.
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	dst, err := os.CreateTemp(h.originalsDir, sanitizeFilename(name)+"-*"+sanitizeFilename(ext))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Chmod(0o644); err != nil {
		logging.Warn("Failed to chmod upload %s: %v", dst.Name(), err)
	}
	return dst.Name(), nil
}

// sanitizeFilename keeps a conservative character set so client input
// never influences path semantics.
func sanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
