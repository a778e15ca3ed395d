package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"videoflix/internal/transcoder"
)

// PlaylistName is the filename of every playlist, master and variant
// alike. Players resolve variant references relative to the master, so
// the name is part of the external contract.
const PlaylistName = "index.m3u8"

// VideoDir returns the output directory for one video:
// {root}/videos/{id}.
func VideoDir(root string, videoID int64) string {
	return filepath.Join(root, "videos", strconv.FormatInt(videoID, 10))
}

// VariantDir returns the directory holding one resolution variant:
// {root}/videos/{id}/{label}.
func VariantDir(root string, videoID int64, label string) string {
	return filepath.Join(VideoDir(root, videoID), label)
}

// VariantPlaylistPath returns the path of one variant playlist.
func VariantPlaylistPath(root string, videoID int64, label string) string {
	return filepath.Join(VariantDir(root, videoID, label), PlaylistName)
}

// SegmentPath returns the path of one MPEG-TS segment inside a
// variant directory.
func SegmentPath(root string, videoID int64, label, segment string) string {
	return filepath.Join(VariantDir(root, videoID, label), segment)
}

// MasterPath returns the path of the master playlist for one video.
func MasterPath(root string, videoID int64) string {
	return filepath.Join(VideoDir(root, videoID), PlaylistName)
}

// ComposeMaster renders the master playlist content for the given
// profiles: the #EXTM3U header followed by one stream-info line and
// one relative variant reference per profile, in profile order.
func ComposeMaster(profiles []transcoder.Profile) string {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, p := range profiles {
		fmt.Fprintf(&b, "#EXT-X-STREAM-INF:BANDWIDTH=%d,RESOLUTION=%s\n", p.Bandwidth, p.Size)
		fmt.Fprintf(&b, "%s/%s\n", p.Label, PlaylistName)
	}
	return b.String()
}

// WriteMaster writes the master playlist for one video after
// confirming every variant playlist exists. A missing variant playlist
// is an error and nothing is written: the absence of a master playlist
// is how an incomplete job is recognized.
func WriteMaster(root string, videoID int64, profiles []transcoder.Profile) error {
	for _, p := range profiles {
		variant := VariantPlaylistPath(root, videoID, p.Label)
		if _, err := os.Stat(variant); err != nil {
			return fmt.Errorf("variant playlist %s: %w", variant, err)
		}
	}

	master := MasterPath(root, videoID)
	if err := os.WriteFile(master, []byte(ComposeMaster(profiles)), 0o644); err != nil {
		return fmt.Errorf("write master playlist %s: %w", master, err)
	}
	return nil
}

// RemoveMaster deletes a prior master playlist if one exists. The
// worker calls this before regenerating a video so that a failed rerun
// never leaves a stale master behind.
func RemoveMaster(root string, videoID int64) error {
	err := os.Remove(MasterPath(root, videoID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove master playlist for video %d: %w", videoID, err)
	}
	return nil
}
