package info

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ytget/yt-fetcher/internal/dispatch"
	"github.com/ytget/yt-fetcher/internal/engine"
	"github.com/ytget/yt-fetcher/internal/model"
)

// Progress messages
const (
	MsgFetchingItem     = "Fetching video info"
	MsgItemFetched      = "Video info fetched"
	MsgPlaylistFetched  = "Playlist info fetched"
	msgPlaylistHeader   = "Playlist: %s - Total videos: %d"
	msgPlaylistEntry    = "Fetching video info (%d/%d)"
	msgPlaylistEntryBad = "Could not fetch video info (%d/%d)"
)

// Playlist progress bounds
const (
	playlistHeaderPercent = 10
	playlistSpanPercent   = 90
	percentTotal          = 100
)

// DefaultOptions are the probe options used unless overridden
func DefaultOptions() model.Options {
	return model.Options{
		IgnoreErrors:   true,
		Quiet:          true,
		NoWarnings:     true,
		ListFlat:       true,
		FormatSelector: BestQualitySelector,
	}
}

// Service starts metadata probes as background tasks
type Service struct {
	submitter dispatch.Submitter
	engine    engine.Engine
	logger    *slog.Logger

	mu      sync.RWMutex
	options model.Options
}

// NewService creates a probe service
func NewService(submitter dispatch.Submitter, eng engine.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		submitter: submitter,
		engine:    eng,
		logger:    logger.With("component", "info"),
		options:   DefaultOptions(),
	}
}

// SetOptions replaces the base probe options
func (s *Service) SetOptions(opts model.Options) {
	s.mu.Lock()
	s.options = opts.Clone()
	s.mu.Unlock()
}

func (s *Service) baseOptions() model.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options.Clone()
}

// ProbeItem fetches metadata for a single video. The locator is treated as a
// single item even when it also names a playlist.
func (s *Service) ProbeItem(locator string, subs ...dispatch.Subscriber) (*dispatch.Handle, error) {
	opts := s.baseOptions()
	opts.NoPlaylist = true
	job := model.NewJobDescriptor(locator, model.ModeProbe, opts)
	return s.submit(dispatch.NewTask(job, s.probeItem(job)), subs)
}

// ProbePlaylist fetches the flat entry list of a playlist
func (s *Service) ProbePlaylist(locator string, subs ...dispatch.Subscriber) (*dispatch.Handle, error) {
	opts := s.baseOptions()
	opts.NoPlaylist = false
	job := model.NewJobDescriptor(locator, model.ModeProbe, opts)
	return s.submit(dispatch.NewTask(job, s.probePlaylist(job)), subs)
}

func (s *Service) submit(task *dispatch.Task, subs []dispatch.Subscriber) (*dispatch.Handle, error) {
	for _, sub := range subs {
		if err := task.Subscribe(sub); err != nil {
			return nil, err
		}
	}
	handle, err := s.submitter.Submit(task)
	if err != nil {
		return nil, fmt.Errorf("submit probe: %w", err)
	}
	return handle, nil
}

func (s *Service) probeItem(job model.JobDescriptor) dispatch.Func {
	return func(ctx context.Context, emit *dispatch.Emitter) error {
		emit.Progress(model.ProgressEvent{Message: MsgFetchingItem, Current: 0, Total: percentTotal})

		raw, err := s.engine.Probe(ctx, job.Locator(), job.Options())
		if err != nil {
			return err
		}
		if raw == nil {
			return ErrNoMetadata
		}

		item, err := BuildItem(raw, job.Locator())
		if err != nil {
			return fmt.Errorf("process video info: %w", err)
		}

		emit.Progress(model.ProgressEvent{
			Message: MsgItemFetched,
			Current: percentTotal,
			Total:   percentTotal,
			Item:    item,
		})
		return nil
	}
}

func (s *Service) probePlaylist(job model.JobDescriptor) dispatch.Func {
	return func(ctx context.Context, emit *dispatch.Emitter) error {
		logger := emit.Logger()

		raw, err := s.engine.Probe(ctx, job.Locator(), job.Options())
		if err != nil {
			return err
		}
		if raw == nil {
			return ErrNoMetadata
		}
		if !raw.IsPlaylist() {
			return engine.ErrNotPlaylist
		}

		title := engine.StringValue(raw.Title)
		if title == "" {
			title = model.DefaultPlaylistTitle
		}
		total := len(raw.Entries)
		emit.Progress(model.ProgressEvent{
			Message: fmt.Sprintf(msgPlaylistHeader, title, total),
			Current: playlistHeaderPercent,
			Total:   percentTotal,
		})

		batch := &model.PlaylistBatch{PlaylistTitle: title}
		for i, entry := range raw.Entries {
			if entry == nil {
				continue
			}
			percent := PlaylistPercent(i, total)

			item, err := BuildItem(entry, "")
			if err != nil {
				logger.Warn("skipping playlist entry", "index", i, "error", err)
				emit.Progress(model.ProgressEvent{
					Message: fmt.Sprintf(msgPlaylistEntryBad, i+1, total),
					Current: percent,
					Total:   percentTotal,
				})
				continue
			}

			batch.Items = append(batch.Items, item)
			emit.Progress(model.ProgressEvent{
				Message: fmt.Sprintf(msgPlaylistEntry, i+1, total),
				Current: percent,
				Total:   percentTotal,
				Item:    item,
			})
		}

		emit.Progress(model.ProgressEvent{
			Message: MsgPlaylistFetched,
			Current: percentTotal,
			Total:   percentTotal,
			Batch:   batch,
		})
		logger.Info("playlist probed", "title", title, "entries", total, "items", len(batch.Items))
		return nil
	}
}

// PlaylistPercent is the progress value after handling entry i of total
func PlaylistPercent(i, total int) int64 {
	if total <= 0 {
		return percentTotal
	}
	return int64(playlistHeaderPercent + (i+1)*playlistSpanPercent/total)
}
