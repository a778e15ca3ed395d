package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the API router. Middleware is layered on top by the
// caller.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/videos", h.ListVideos).Methods(http.MethodGet)
	r.HandleFunc("/api/videos", h.CreateVideo).Methods(http.MethodPost)

	// Master before variant: the master playlist lives directly in
	// the video directory.
	r.HandleFunc("/api/video/{id}/index.m3u8", h.MasterPlaylist).Methods(http.MethodGet)
	r.HandleFunc("/api/video/{id}/{resolution}/index.m3u8", h.VariantPlaylist).Methods(http.MethodGet)
	r.HandleFunc("/api/video/{id}/{resolution}/{segment}", h.Segment).Methods(http.MethodGet)

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)

	return r
}
