package model

import "github.com/google/uuid"

// Default values used when engine metadata is incomplete
const (
	DefaultTitle         = "Unknown"
	DefaultDuration      = "00:00"
	DefaultPlaylistTitle = "Unknown Playlist"
)

// FormatOption is one entry of a quality picker
type FormatOption struct {
	Label          string // human readable, e.g. "1080p (4.2Mbps)"
	FormatSelector string // opaque engine selector
}

// MediaItemInfo is the normalized view of a single video
type MediaItemInfo struct {
	ID              string
	Title           string
	DurationDisplay string
	DurationSeconds int
	SourceURL       string
	VideoFormats    []FormatOption
	AudioFormats    []FormatOption
	Selected        bool
}

// NewMediaItemInfo creates an item with a fresh identifier, selected by default
func NewMediaItemInfo(title, sourceURL string, durationSeconds int) *MediaItemInfo {
	if title == "" {
		title = DefaultTitle
	}
	display := DefaultDuration
	if durationSeconds > 0 {
		display = FormatDuration(durationSeconds)
	}
	return &MediaItemInfo{
		ID:              uuid.NewString(),
		Title:           title,
		DurationDisplay: display,
		DurationSeconds: durationSeconds,
		SourceURL:       sourceURL,
		Selected:        true,
	}
}

// SetSelected toggles the item for download
func (m *MediaItemInfo) SetSelected(selected bool) {
	m.Selected = selected
}

// PlaylistBatch is the final payload of a playlist probe
type PlaylistBatch struct {
	PlaylistTitle string
	Items         []*MediaItemInfo
}

// SelectedItems returns the items currently marked for download
func SelectedItems(items []*MediaItemInfo) []*MediaItemInfo {
	var selected []*MediaItemInfo
	for _, item := range items {
		if item != nil && item.Selected {
			selected = append(selected, item)
		}
	}
	return selected
}

// SelectionSummary returns the number of selected items and their total duration in seconds
func SelectionSummary(items []*MediaItemInfo) (count int, seconds int) {
	for _, item := range SelectedItems(items) {
		count++
		if item.DurationSeconds > 0 {
			seconds += item.DurationSeconds
		} else {
			seconds += ParseDuration(item.DurationDisplay)
		}
	}
	return count, seconds
}
