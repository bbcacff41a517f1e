package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ytget/ytdlp/v2"
	"github.com/ytget/ytdlp/v2/client"

	"github.com/ytget/yt-fetcher/internal/model"
	"github.com/ytget/yt-fetcher/internal/platform"
)

// Native backend defaults
const (
	DefaultNativeTimeout = 60 * time.Second
	DefaultNativeRetries = 3
	DefaultUserAgent     = "yt-fetcher/1.0"
)

// Playlist title constants
const (
	MinPrefixLength = 10
	PlaylistSuffix  = " Playlist"
)

// NativeConfig configures the HTTP client of the native backend
type NativeConfig struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// playlistEntry is the subset of a listed playlist item we keep
type playlistEntry struct {
	VideoID string
	Title   string
}

type playlistFetcher func(ctx context.Context, playlistID string) ([]playlistEntry, error)

// Native lists playlists in-process. It cannot probe single items or download.
type Native struct {
	timeout time.Duration
	fetch   playlistFetcher
	logger  *slog.Logger
}

// NewNative creates the in-process playlist backend
func NewNative(cfg NativeConfig, logger *slog.Logger) *Native {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultNativeTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultNativeRetries
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := client.NewWith(client.Config{Timeout: cfg.Timeout, Retries: cfg.Retries, UserAgent: cfg.UserAgent})
	fetch := func(ctx context.Context, playlistID string) ([]playlistEntry, error) {
		items, err := ytdlp.New().WithHTTPClient(c.HTTPClient).GetPlaylistItemsAll(ctx, playlistID, 0)
		if err != nil {
			return nil, err
		}
		entries := make([]playlistEntry, 0, len(items))
		for _, it := range items {
			entries = append(entries, playlistEntry{VideoID: it.VideoID, Title: it.Title})
		}
		return entries, nil
	}

	return &Native{
		timeout: cfg.Timeout,
		fetch:   fetch,
		logger:  logger.With("engine", "native"),
	}
}

// Probe implements Engine for playlist locators only
func (n *Native) Probe(ctx context.Context, locator string, opts model.Options) (*RawInfo, error) {
	playlistID, err := platform.ExtractPlaylistID(locator)
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupported, "native probe %s: %v", locator, err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	items, err := n.fetch(ctx, playlistID)
	if err != nil {
		return nil, errors.Wrapf(err, "list playlist %s", playlistID)
	}
	n.logger.Debug("playlist listed", "playlist_id", playlistID, "count", len(items))

	return playlistInfo(playlistID, items), nil
}

// Download implements Engine; the native backend never downloads
func (n *Native) Download(ctx context.Context, locator string, opts model.Options, hook ProgressHook) error {
	return errors.Wrap(ErrUnsupported, "native download")
}

// playlistInfo builds the flat playlist document yt-dlp would return
func playlistInfo(playlistID string, items []playlistEntry) *RawInfo {
	entries := make([]*RawInfo, 0, len(items))
	titles := make([]string, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			entries = append(entries, nil)
			continue
		}
		title := it.Title
		videoURL := platform.VideoURL(it.VideoID)
		entries = append(entries, &RawInfo{
			ID:    it.VideoID,
			Type:  "url",
			Title: &title,
			URL:   &videoURL,
		})
		titles = append(titles, it.Title)
	}

	title := playlistTitle(playlistID, titles)
	count := len(entries)
	return &RawInfo{
		ID:            playlistID,
		Type:          "playlist",
		Title:         &title,
		PlaylistCount: &count,
		Entries:       entries,
	}
}

// playlistTitle guesses a title from the shared prefix of the first two videos
func playlistTitle(playlistID string, titles []string) string {
	if len(titles) == 0 {
		return fmt.Sprintf("Playlist %s", playlistID)
	}
	if len(titles) > 1 {
		prefix := commonPrefix(titles[0], titles[1])
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return titles[0] + PlaylistSuffix
}

// commonPrefix finds the common prefix between two strings on rune boundaries
func commonPrefix(s1, s2 string) string {
	r1, r2 := []rune(s1), []rune(s2)
	n := min(len(r1), len(r2))
	for i := 0; i < n; i++ {
		if r1[i] != r2[i] {
			return string(r1[:i])
		}
	}
	return string(r1[:n])
}
