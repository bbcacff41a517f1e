package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/yt-fetcher/internal/dispatch"
	"github.com/ytget/yt-fetcher/internal/engine"
	"github.com/ytget/yt-fetcher/internal/info"
	"github.com/ytget/yt-fetcher/internal/model"
	"github.com/ytget/yt-fetcher/internal/platform"
)

// MediaKind selects between keeping the video and extracting audio
type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindAudio MediaKind = "audio"
)

// Defaults for Preferences
const (
	DefaultAudioCodec       = "mp3"
	DefaultAudioQuality     = "192"
	DefaultVideoContainer   = "mp4"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"

	extTemplate = ".%(ext)s"
)

// ErrNothingSelected is returned when no item is selected for download
var ErrNothingSelected = errors.New("no items selected")

// Choice is what the user picked for a batch download
type Choice struct {
	Kind           MediaKind
	FormatSelector string
}

// IsAudio reports whether the choice extracts audio
func (c Choice) IsAudio() bool {
	return c.Kind == KindAudio
}

// Preferences configure post-processing and naming of downloads
type Preferences struct {
	AudioCodec        string
	AudioQuality      string
	VideoContainer    string
	FilenameTemplate  string
	RestrictFilenames bool
}

// DefaultPreferences returns mp3/192 audio and mp4 video
func DefaultPreferences() Preferences {
	return Preferences{
		AudioCodec:       DefaultAudioCodec,
		AudioQuality:     DefaultAudioQuality,
		VideoContainer:   DefaultVideoContainer,
		FilenameTemplate: DefaultFilenameTemplate,
	}
}

// Service handles download operations
type Service struct {
	submitter dispatch.Submitter
	engine    engine.Engine
	logger    *slog.Logger

	mu    sync.RWMutex
	prefs Preferences
}

// NewService creates a new download service
func NewService(submitter dispatch.Submitter, eng engine.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		submitter: submitter,
		engine:    eng,
		logger:    logger.With("component", "download"),
		prefs:     DefaultPreferences(),
	}
}

// SetPreferences applies to tasks submitted afterwards
func (s *Service) SetPreferences(prefs Preferences) {
	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
}

func (s *Service) preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// DownloadItem downloads one locator. A selector mentioning audio extracts
// audio, anything else is remuxed into the video container.
func (s *Service) DownloadItem(locator, selector, outputDir string, subs ...dispatch.Subscriber) (*dispatch.Handle, error) {
	choice := Choice{Kind: KindVideo, FormatSelector: selector}
	if strings.Contains(strings.ToLower(selector), "audio") {
		choice.Kind = KindAudio
	}
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return s.submit(locator, "", "", choice, outputDir, subs)
}

// DownloadSelected starts one task per selected item. Tasks run concurrently
// and finish in any order. Items without a source URL are skipped.
func (s *Service) DownloadSelected(items []*model.MediaItemInfo, choice Choice, outputDir string, subs ...dispatch.Subscriber) ([]*dispatch.Handle, error) {
	selected := model.SelectedItems(items)
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	handles := make([]*dispatch.Handle, 0, len(selected))
	for _, item := range selected {
		if item.SourceURL == "" {
			s.logger.Warn("skipping item without URL", "item_id", item.ID, "title", item.Title)
			continue
		}
		h, err := s.submit(item.SourceURL, item.Title, item.ID, choice, outputDir, subs)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}

	s.logger.Info("downloads queued", "count", len(handles), "kind", choice.Kind, "dir", outputDir)
	return handles, nil
}

func (s *Service) submit(locator, title, itemID string, choice Choice, outputDir string, subs []dispatch.Subscriber) (*dispatch.Handle, error) {
	prefs := s.preferences()
	opts := buildOptions(choice, outputTemplate(outputDir, title, prefs), prefs)
	job := model.NewJobDescriptor(locator, model.ModeDownload, opts)

	task := dispatch.NewTask(job, s.downloadTask(job)).WithItemID(itemID)
	for _, sub := range subs {
		if err := task.Subscribe(sub); err != nil {
			return nil, err
		}
	}

	h, err := s.submitter.Submit(task)
	if err != nil {
		return nil, fmt.Errorf("submit download: %w", err)
	}
	return h, nil
}

// buildOptions maps a choice onto engine options
func buildOptions(choice Choice, output string, prefs Preferences) model.Options {
	opts := model.Options{
		Quiet:             true,
		NoWarnings:        true,
		NoPlaylist:        true,
		FormatSelector:    choice.FormatSelector,
		OutputTemplate:    output,
		RestrictFilenames: prefs.RestrictFilenames,
	}

	if choice.IsAudio() {
		if opts.FormatSelector == "" {
			opts.FormatSelector = info.BestAudioSelector
		}
		opts.PostProcessors = []model.PostProcessorSpec{{
			Kind:    model.PostProcessExtractAudio,
			Codec:   orDefault(prefs.AudioCodec, DefaultAudioCodec),
			Quality: orDefault(prefs.AudioQuality, DefaultAudioQuality),
		}}
		return opts
	}

	if opts.FormatSelector == "" {
		opts.FormatSelector = info.BestQualitySelector
	}
	opts.PostProcessors = []model.PostProcessorSpec{{
		Kind:  model.PostProcessRemuxVideo,
		Codec: orDefault(prefs.VideoContainer, DefaultVideoContainer),
	}}
	return opts
}

// outputTemplate names the file after the known title when the default
// template is in use, otherwise lets the engine expand the template
func outputTemplate(dir, title string, prefs Preferences) string {
	name := orDefault(prefs.FilenameTemplate, DefaultFilenameTemplate)
	if name == DefaultFilenameTemplate && title != "" && title != model.DefaultTitle {
		// % starts a template field
		name = strings.ReplaceAll(platform.SanitizeFilename(title), "%", "%%") + extTemplate
	}
	return filepath.Join(dir, name)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// downloadTask runs the engine once. A failure is returned as is and becomes
// the task's error event; resubmitting is up to the caller.
func (s *Service) downloadTask(job model.JobDescriptor) dispatch.Func {
	return func(ctx context.Context, emit *dispatch.Emitter) error {
		logger := emit.Logger().With("url", job.Locator())
		logger.Info("download started", "output", job.Options().OutputTemplate)

		tracker := NewTracker()
		err := s.engine.Download(ctx, job.Locator(), job.Options(), func(sample engine.ProgressSample) {
			relay(emit, tracker, sample)
		})
		if err != nil {
			logger.Warn("download failed", "error", err)
			return err
		}

		logger.Info("download finished")
		return nil
	}
}

// relay forwards downloading samples as progress events
func relay(emit *dispatch.Emitter, tracker *Tracker, sample engine.ProgressSample) {
	if sample.Status != engine.StatusDownloading {
		return
	}

	total := sample.Total()
	stats := tracker.Update(sample.Filename, sample.DownloadedBytes, total)

	var name string
	if sample.Filename != "" {
		name = filepath.Base(sample.Filename)
	}

	emit.Progress(model.ProgressEvent{
		Message:  name,
		Current:  sample.DownloadedBytes,
		Total:    total,
		Transfer: &stats,
	})
}
