package database

import "time"

// Status is the processing state of a video record.
//
// Transitions are monotonic for a single job attempt:
// pending -> processing -> ready|failed. A record never returns to
// pending; re-processing starts a fresh job against the same record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReady, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s is a terminal status. No automatic
// transition occurs after a terminal status is written.
func (s Status) Terminal() bool {
	return s == StatusReady || s == StatusFailed
}

// Video is a catalog video record. The transcoding pipeline mutates
// only the Status and Thumbnail fields; everything else is owned by
// the upload/catalog path.
type Video struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Category     string    `json:"category"`
	OriginalFile string    `json:"-"`
	Status       Status    `json:"status"`
}
