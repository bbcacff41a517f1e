package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/ytget/yt-fetcher/internal/model"
	"github.com/ytget/yt-fetcher/internal/platform"
)

// Backend names accepted by settings
const (
	BackendYTDLP  = "ytdlp"
	BackendHybrid = "hybrid"
)

// Router sends flat playlist probes to a dedicated lister and everything else
// to the primary engine. A failed listing falls back to the primary engine.
type Router struct {
	primary   Engine
	playlists Engine
	logger    *slog.Logger
}

// NewRouter creates a routing engine; playlists may be nil
func NewRouter(primary, playlists Engine, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Router{primary: primary, playlists: playlists, logger: logger}
}

// New builds the engine for a backend name
func New(backend string, logger *slog.Logger) Engine {
	primary := NewYTDLP(logger)
	if backend == BackendHybrid {
		return NewRouter(primary, NewNative(NativeConfig{}, logger), logger)
	}
	return primary
}

// Probe implements Engine
func (r *Router) Probe(ctx context.Context, locator string, opts model.Options) (*RawInfo, error) {
	if r.playlists != nil && opts.ListFlat && !opts.NoPlaylist && platform.IsPlaylistURL(locator) {
		info, err := r.playlists.Probe(ctx, locator, opts)
		if err == nil && info != nil {
			return info, nil
		}
		r.logger.Warn("playlist lister failed, falling back", "url", locator, "error", err)
	}
	return r.primary.Probe(ctx, locator, opts)
}

// Download implements Engine
func (r *Router) Download(ctx context.Context, locator string, opts model.Options, hook ProgressHook) error {
	return r.primary.Download(ctx, locator, opts, hook)
}
