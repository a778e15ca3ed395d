package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"videoflix/internal/database"
	"videoflix/internal/startup"
)

type fakeCatalog struct {
	mu        sync.Mutex
	nextID    int64
	videos    map[int64]*database.Video
	listErr   error
	createErr error
	pingErr   error
}

func newFakeCatalog(videos ...*database.Video) *fakeCatalog {
	c := &fakeCatalog{videos: make(map[int64]*database.Video)}
	for _, v := range videos {
		c.videos[v.ID] = v
		if v.ID > c.nextID {
			c.nextID = v.ID
		}
	}
	return c
}

func (c *fakeCatalog) CreateVideo(_ context.Context, v *database.Video) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.createErr != nil {
		return 0, c.createErr
	}
	c.nextID++
	stored := *v
	stored.ID = c.nextID
	stored.Status = database.StatusPending
	stored.CreatedAt = time.Now().UTC()
	c.videos[stored.ID] = &stored
	return stored.ID, nil
}

func (c *fakeCatalog) VideoByID(_ context.Context, id int64) (*database.Video, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.videos[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (c *fakeCatalog) ListVideos(context.Context) ([]database.Video, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listErr != nil {
		return nil, c.listErr
	}
	var out []database.Video
	for _, v := range c.videos {
		out = append(out, *v)
	}
	return out, nil
}

func (c *fakeCatalog) Ping(context.Context) error {
	return c.pingErr
}

type fakeDispatcher struct {
	mu         sync.Mutex
	dispatched []int64
	err        error
}

func (d *fakeDispatcher) Dispatch(videoID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.dispatched = append(d.dispatched, videoID)
	return nil
}

// newTestHandlers wires a Handlers instance over a temp media tree.
func newTestHandlers(t *testing.T, catalog *fakeCatalog, dispatcher *fakeDispatcher) (*Handlers, string) {
	t.Helper()
	root := t.TempDir()
	config := &startup.Config{
		MediaDir:     root,
		OriginalsDir: filepath.Join(root, "originals"),
	}
	if err := os.MkdirAll(config.OriginalsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return New(catalog, dispatcher, nil, config), root
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{"healthy", nil, http.StatusOK, statusHealthy},
		{"database down", errors.New("locked"), http.StatusServiceUnavailable, statusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.pingErr = tt.pingErr
			h, _ := newTestHandlers(t, catalog, &fakeDispatcher{})

			req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("health status = %q, want %q", resp.Status, tt.wantStatus)
			}
		})
	}
}

func TestReadinessCheck(t *testing.T) {
	catalog := newFakeCatalog()
	h, _ := newTestHandlers(t, catalog, &fakeDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", w.Code)
	}

	catalog.pingErr = errors.New("down")
	w = httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("not-ready status = %d, want 503", w.Code)
	}
}

func TestLivenessCheck(t *testing.T) {
	h, _ := newTestHandlers(t, newFakeCatalog(), &fakeDispatcher{})

	req := httptest.NewRequest(http.MethodHead, "/livez", http.NoBody)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Error("HEAD response must have no body")
	}
}

func TestGetVersion(t *testing.T) {
	h, _ := newTestHandlers(t, newFakeCatalog(), &fakeDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/version", http.NoBody)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var info startup.BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.GoVersion == "" {
		t.Error("expected GoVersion in build info")
	}
}
