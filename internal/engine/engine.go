package engine

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/ytget/yt-fetcher/internal/model"
)

// Sentinel errors
var (
	ErrUnsupported = errors.New("operation not supported by this backend")
	ErrNotPlaylist = errors.New("not a playlist")
)

// Progress statuses reported by the engine
const (
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
	StatusError       = "error"
)

// Engine extracts metadata and downloads media.
type Engine interface {
	// Probe returns metadata for a single item or a playlist, or nil when the
	// engine produced no result.
	Probe(ctx context.Context, locator string, opts model.Options) (*RawInfo, error)

	// Download transfers the media selected by opts.FormatSelector into
	// opts.OutputTemplate, calling hook zero or more times.
	Download(ctx context.Context, locator string, opts model.Options, hook ProgressHook) error
}

// ProgressSample is one progress callback from the engine
type ProgressSample struct {
	Status             string
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
	Filename           string
}

// Total returns TotalBytes, falling back to the estimate
func (s ProgressSample) Total() int64 {
	if s.TotalBytes > 0 {
		return s.TotalBytes
	}
	return s.TotalBytesEstimate
}

// ProgressHook receives download samples on the calling goroutine
type ProgressHook func(ProgressSample)

// RawFormat is one stream descriptor as reported by the engine
type RawFormat struct {
	FormatID *string  `json:"format_id"`
	Ext      *string  `json:"ext"`
	VCodec   *string  `json:"vcodec"`
	ACodec   *string  `json:"acodec"`
	Height   *float64 `json:"height"`
	VBR      *float64 `json:"vbr"`
	ABR      *float64 `json:"abr"`
}

// RawInfo is the metadata for an item or a playlist.
// Entries is nil when the result has no playlist-entries field; individual
// entries may be nil when the engine skipped them.
type RawInfo struct {
	ID             string       `json:"id"`
	Type           string       `json:"_type"`
	Title          *string      `json:"title"`
	Duration       *float64     `json:"duration"`
	DurationString *string      `json:"duration_string"`
	WebpageURL     *string      `json:"webpage_url"`
	URL            *string      `json:"url"`
	PlaylistCount  *int         `json:"playlist_count"`
	Formats        []*RawFormat `json:"formats"`
	Entries        []*RawInfo   `json:"entries"`
}

// IsPlaylist reports whether the result carries an entries field
func (r *RawInfo) IsPlaylist() bool {
	return r != nil && r.Entries != nil
}

// ParseInfo decodes the engine's single-JSON output. Empty or "null" output
// yields a nil result without error.
func ParseInfo(data []byte) (*RawInfo, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var info RawInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, errors.Wrap(err, "decode engine metadata")
	}
	return &info, nil
}

// String helpers for optional fields

// StringValue returns *s or "" for nil
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FloatValue returns *f or 0 for nil
func FloatValue(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
