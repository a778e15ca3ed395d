package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no video record matches the given id.
var ErrNotFound = errors.New("video not found")

// CreateVideo inserts a new video record and returns its assigned id.
// The record starts in status pending; the caller is responsible for
// dispatching a transcode job afterwards.
func (d *Database) CreateVideo(ctx context.Context, v *Video) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_video", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := d.db.ExecContext(ctx, `
		INSERT INTO videos (title, description, thumbnail, category, original_file, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.Title, v.Description, v.Thumbnail, v.Category, v.OriginalFile, string(StatusPending),
	)
	if err != nil {
		return 0, fmt.Errorf("insert video: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("video insert id: %w", err)
	}
	return id, nil
}

// VideoByID retrieves a single video record.
func (d *Database) VideoByID(ctx context.Context, id int64) (*Video, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("video_by_id", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v Video
	var createdAt int64
	var status string

	err = d.db.QueryRowContext(ctx, `
		SELECT id, created_at, title, description, thumbnail, category, original_file, status
		FROM videos WHERE id = ?`, id,
	).Scan(&v.ID, &createdAt, &v.Title, &v.Description, &v.Thumbnail, &v.Category, &v.OriginalFile, &status)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select video %d: %w", id, err)
	}

	v.CreatedAt = time.Unix(createdAt, 0).UTC()
	v.Status = Status(status)
	return &v, nil
}

// ListVideos returns all video records ordered by creation time,
// newest first.
func (d *Database) ListVideos(ctx context.Context) ([]Video, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_videos", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, created_at, title, description, thumbnail, category, original_file, status
		FROM videos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		var v Video
		var createdAt int64
		var status string
		if err = rows.Scan(&v.ID, &createdAt, &v.Title, &v.Description, &v.Thumbnail, &v.Category, &v.OriginalFile, &status); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		v.CreatedAt = time.Unix(createdAt, 0).UTC()
		v.Status = Status(status)
		videos = append(videos, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// SetStatus persists a new processing status for the given video.
//
// Transitions back to pending are rejected: once a job picks a record
// up, the only way forward is a terminal status, and re-processing
// must go through a fresh job.
func (d *Database) SetStatus(ctx context.Context, id int64, status Status) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("set_status", start, err) }()

	if !status.Valid() {
		err = fmt.Errorf("invalid video status %q", status)
		return err
	}
	if status == StatusPending {
		err = fmt.Errorf("video %d: cannot transition back to pending", id)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := d.db.ExecContext(ctx,
		"UPDATE videos SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("update status for video %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status for video %d: %w", id, err)
	}
	if affected == 0 {
		err = ErrNotFound
		return fmt.Errorf("update status for video %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetThumbnail records the poster thumbnail path for the given video.
func (d *Database) SetThumbnail(ctx context.Context, id int64, path string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("set_thumbnail", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := d.db.ExecContext(ctx,
		"UPDATE videos SET thumbnail = ? WHERE id = ?", path, id)
	if err != nil {
		return fmt.Errorf("update thumbnail for video %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update thumbnail for video %d: %w", id, err)
	}
	if affected == 0 {
		err = ErrNotFound
		return fmt.Errorf("update thumbnail for video %d: %w", id, ErrNotFound)
	}
	return nil
}
