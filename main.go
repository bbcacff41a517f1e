package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-fetcher/internal/config"
	"github.com/ytget/yt-fetcher/internal/dispatch"
	"github.com/ytget/yt-fetcher/internal/download"
	"github.com/ytget/yt-fetcher/internal/engine"
	"github.com/ytget/yt-fetcher/internal/info"
	"github.com/ytget/yt-fetcher/internal/platform"
	"github.com/ytget/yt-fetcher/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-fetcher"
	AppName = "YT Fetcher"
	LogFile = "yt-fetcher.log"

	installTimeout  = 2 * time.Minute
	shutdownTimeout = 5 * time.Second
)

func main() {
	logger, closeLog := newLogger()
	defer closeLog()

	logger.Info("starting", "app", AppName, "version", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myApp.SetIcon(ui.LoadAppIcon(""))

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.Warn("failed to ensure downloads dir", "error", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), installTimeout)
		defer cancel()
		if err := engine.Install(ctx); err != nil {
			logger.Warn("yt-dlp is not available", "error", err)
		}
	}()

	eng := engine.New(settings.GetEngineBackend(), logger)
	dispatcher := dispatch.New(settings.GetMaxWorkers(), logger)

	infoSvc := info.NewService(dispatcher, eng, logger)
	downloadSvc := download.NewService(dispatcher, eng, logger)

	ui.NewRootUI(myWindow, settings, infoSvc, downloadSvc, logger)

	myWindow.ShowAndRun()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := dispatcher.Close(ctx); err != nil {
		logger.Warn("tasks still running at exit", "error", err)
	}
}

// newLogger logs to stderr and to a per-run file in the user cache directory
func newLogger() (*slog.Logger, func()) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	if dir, err := os.UserCacheDir(); err == nil {
		dir = filepath.Join(dir, "yt-fetcher")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			if f, err := os.Create(filepath.Join(dir, LogFile)); err == nil {
				w = io.MultiWriter(os.Stderr, f)
				closeFn = func() { _ = f.Close() }
			}
		}
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})), closeFn
}
