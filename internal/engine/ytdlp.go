package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/pkg/errors"

	"github.com/ytget/yt-fetcher/internal/model"
)

// DefaultProgressInterval is how often yt-dlp progress is sampled
const DefaultProgressInterval = 500 * time.Millisecond

// YTDLP drives the yt-dlp executable
type YTDLP struct {
	logger           *slog.Logger
	progressInterval time.Duration
}

// NewYTDLP creates a yt-dlp backed engine
func NewYTDLP(logger *slog.Logger) *YTDLP {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &YTDLP{
		logger:           logger.With("engine", "yt-dlp"),
		progressInterval: DefaultProgressInterval,
	}
}

// SetProgressInterval changes how often download progress is reported
func (y *YTDLP) SetProgressInterval(d time.Duration) {
	if d > 0 {
		y.progressInterval = d
	}
}

// Install makes sure a yt-dlp executable is available, downloading it if needed
func Install(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return errors.Wrap(err, "install yt-dlp")
	}
	return nil
}

// command maps Options onto a yt-dlp command line
func (y *YTDLP) command(opts model.Options) *ytdlp.Command {
	dl := ytdlp.New()

	if opts.IgnoreErrors {
		dl = dl.IgnoreErrors()
	}
	if opts.Quiet {
		dl = dl.Quiet()
	}
	if opts.NoWarnings {
		dl = dl.NoWarnings()
	}
	if opts.ListFlat {
		dl = dl.FlatPlaylist()
	}
	if opts.NoPlaylist {
		dl = dl.NoPlaylist()
	}
	if opts.FormatSelector != "" {
		dl = dl.Format(opts.FormatSelector)
	}
	if opts.OutputTemplate != "" {
		dl = dl.Output(opts.OutputTemplate)
	}
	if opts.RestrictFilenames {
		dl = dl.RestrictFilenames()
	}

	for _, pp := range opts.PostProcessors {
		switch pp.Kind {
		case model.PostProcessExtractAudio:
			dl = dl.ExtractAudio()
			if pp.Codec != "" {
				dl = dl.AudioFormat(pp.Codec)
			}
			if pp.Quality != "" {
				dl = dl.AudioQuality(pp.Quality)
			}
		case model.PostProcessRemuxVideo:
			if pp.Codec != "" {
				dl = dl.RemuxVideo(pp.Codec)
			}
		default:
			y.logger.Warn("ignoring unknown post-processor", "kind", pp.Kind)
		}
	}

	return dl
}

// Probe implements Engine
func (y *YTDLP) Probe(ctx context.Context, locator string, opts model.Options) (*RawInfo, error) {
	dl := y.command(opts).SkipDownload().DumpSingleJSON()

	res, err := dl.Run(ctx, locator)
	if err != nil {
		// with ignore-errors yt-dlp exits non-zero when some entries failed
		// but still prints the playlist document
		if opts.IgnoreErrors && res != nil && strings.TrimSpace(res.Stdout) != "" {
			y.logger.Warn("probe finished with errors, using partial result", "url", locator, "error", err)
			return ParseInfo([]byte(res.Stdout))
		}
		return nil, errors.Wrapf(err, "yt-dlp probe %s", locator)
	}

	return ParseInfo([]byte(res.Stdout))
}

// Download implements Engine
func (y *YTDLP) Download(ctx context.Context, locator string, opts model.Options, hook ProgressHook) error {
	dl := y.command(opts)

	if hook != nil {
		dl.ProgressFunc(y.progressInterval, func(update ytdlp.ProgressUpdate) {
			hook(sampleFromUpdate(update))
		})
	}

	if _, err := dl.Run(ctx, locator); err != nil {
		return errors.Wrapf(err, "yt-dlp download %s", locator)
	}
	return nil
}

// sampleFromUpdate converts a go-ytdlp progress update
func sampleFromUpdate(update ytdlp.ProgressUpdate) ProgressSample {
	return ProgressSample{
		Status:          string(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Filename:        update.Filename,
	}
}
