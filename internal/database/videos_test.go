package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "videoflix.db")
	d, err := New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})
	return d
}

func TestCreateAndGetVideo(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	id, err := d.CreateVideo(ctx, &Video{
		Title:        "Big Buck Bunny",
		Description:  "A large rabbit deals with three bullies.",
		Category:     "animation",
		OriginalFile: "/media/originals/1.mp4",
	})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}
	if id == 0 {
		t.Fatal("CreateVideo() returned id 0")
	}

	v, err := d.VideoByID(ctx, id)
	if err != nil {
		t.Fatalf("VideoByID() error: %v", err)
	}

	if v.Title != "Big Buck Bunny" {
		t.Errorf("Title = %q, want %q", v.Title, "Big Buck Bunny")
	}
	if v.Status != StatusPending {
		t.Errorf("new video status = %q, want %q", v.Status, StatusPending)
	}
	if v.OriginalFile != "/media/originals/1.mp4" {
		t.Errorf("OriginalFile = %q", v.OriginalFile)
	}
	if v.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestVideoByIDNotFound(t *testing.T) {
	d := newTestDatabase(t)

	_, err := d.VideoByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("VideoByID(999) error = %v, want ErrNotFound", err)
	}
}

func TestSetStatus(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	id, err := d.CreateVideo(ctx, &Video{Title: "clip", OriginalFile: "/in.mp4"})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}

	for _, status := range []Status{StatusProcessing, StatusReady} {
		if err := d.SetStatus(ctx, id, status); err != nil {
			t.Fatalf("SetStatus(%s) error: %v", status, err)
		}
		v, err := d.VideoByID(ctx, id)
		if err != nil {
			t.Fatalf("VideoByID() error: %v", err)
		}
		if v.Status != status {
			t.Errorf("status = %q, want %q", v.Status, status)
		}
	}
}

func TestSetStatusRejectsPending(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	id, err := d.CreateVideo(ctx, &Video{Title: "clip", OriginalFile: "/in.mp4"})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}
	if err := d.SetStatus(ctx, id, StatusProcessing); err != nil {
		t.Fatalf("SetStatus(processing) error: %v", err)
	}

	if err := d.SetStatus(ctx, id, StatusPending); err == nil {
		t.Error("SetStatus(pending) succeeded, want error")
	}

	v, err := d.VideoByID(ctx, id)
	if err != nil {
		t.Fatalf("VideoByID() error: %v", err)
	}
	if v.Status != StatusProcessing {
		t.Errorf("status after rejected transition = %q, want processing", v.Status)
	}
}

func TestSetStatusInvalid(t *testing.T) {
	d := newTestDatabase(t)

	if err := d.SetStatus(context.Background(), 1, Status("exploded")); err == nil {
		t.Error("SetStatus with invalid status succeeded, want error")
	}
}

func TestSetStatusNotFound(t *testing.T) {
	d := newTestDatabase(t)

	err := d.SetStatus(context.Background(), 42, StatusProcessing)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SetStatus on missing video error = %v, want ErrNotFound", err)
	}
}

func TestSetThumbnail(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	id, err := d.CreateVideo(ctx, &Video{Title: "clip", OriginalFile: "/in.mp4"})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}

	if err := d.SetThumbnail(ctx, id, "videos/1/thumbnail.jpg"); err != nil {
		t.Fatalf("SetThumbnail() error: %v", err)
	}

	v, err := d.VideoByID(ctx, id)
	if err != nil {
		t.Fatalf("VideoByID() error: %v", err)
	}
	if v.Thumbnail != "videos/1/thumbnail.jpg" {
		t.Errorf("Thumbnail = %q", v.Thumbnail)
	}
}

func TestListVideosOrder(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	var ids []int64
	for _, title := range []string{"first", "second", "third"} {
		id, err := d.CreateVideo(ctx, &Video{Title: title, OriginalFile: "/in.mp4"})
		if err != nil {
			t.Fatalf("CreateVideo(%s) error: %v", title, err)
		}
		ids = append(ids, id)
	}

	videos, err := d.ListVideos(ctx)
	if err != nil {
		t.Fatalf("ListVideos() error: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("ListVideos() returned %d videos, want 3", len(videos))
	}

	// Newest first; creation timestamps may collide within a second,
	// so ordering falls back to descending id.
	if videos[0].ID != ids[2] || videos[2].ID != ids[0] {
		t.Errorf("ListVideos() order = [%d %d %d], want [%d %d %d]",
			videos[0].ID, videos[1].ID, videos[2].ID, ids[2], ids[1], ids[0])
	}
}

func TestStatusValid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusReady, true},
		{StatusFailed, true},
		{Status(""), false},
		{Status("done"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.valid {
				t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.valid)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() || StatusProcessing.Terminal() {
		t.Error("pending/processing must not be terminal")
	}
	if !StatusReady.Terminal() || !StatusFailed.Terminal() {
		t.Error("ready/failed must be terminal")
	}
}
