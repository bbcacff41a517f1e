// Command yt-fetcher probes a video or playlist and downloads it without the
// desktop UI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"github.com/ytget/yt-fetcher/internal/config"
	"github.com/ytget/yt-fetcher/internal/dispatch"
	"github.com/ytget/yt-fetcher/internal/download"
	"github.com/ytget/yt-fetcher/internal/engine"
	"github.com/ytget/yt-fetcher/internal/info"
	"github.com/ytget/yt-fetcher/internal/model"
	"github.com/ytget/yt-fetcher/internal/platform"
)

const (
	describeInterval = 200 * time.Millisecond
	closeTimeout     = 5 * time.Second
)

type options struct {
	url       string
	out       string
	kind      string
	format    string
	workers   int
	backend   string
	playlist  bool
	probeOnly bool
	verbose   bool
}

// prober starts metadata probes
type prober interface {
	ProbeItem(locator string, subs ...dispatch.Subscriber) (*dispatch.Handle, error)
	ProbePlaylist(locator string, subs ...dispatch.Subscriber) (*dispatch.Handle, error)
}

func main() {
	var o options
	flag.StringVar(&o.url, "url", "", "video or playlist URL")
	flag.StringVar(&o.out, "out", config.DefaultDownloadDirectory(), "download directory")
	flag.StringVar(&o.kind, "kind", string(download.KindVideo), "media kind: video or audio")
	flag.StringVar(&o.format, "format", "", "format selector, empty for best")
	flag.IntVar(&o.workers, "workers", config.DefaultMaxWorkers(), "parallel downloads")
	flag.StringVar(&o.backend, "backend", config.DefaultEngineBackend, "extraction backend: ytdlp or hybrid")
	flag.BoolVar(&o.playlist, "playlist", false, "treat the URL as a playlist even without a list parameter")
	flag.BoolVar(&o.probeOnly, "probe", false, "list items and formats without downloading")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.Parse()

	if o.url == "" && flag.NArg() > 0 {
		o.url = flag.Arg(0)
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(o, engine.New(o.backend, logger), logger, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run probes o.url and downloads what it finds; a non-nil error means a
// non-zero exit status
func run(o options, eng engine.Engine, logger *slog.Logger, stdout, stderr io.Writer) error {
	if err := platform.ValidateLocator(o.url); err != nil {
		return err
	}

	kind := download.MediaKind(strings.ToLower(o.kind))
	if kind != download.KindVideo && kind != download.KindAudio {
		return fmt.Errorf("unknown kind %q", o.kind)
	}

	d := dispatch.New(o.workers, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		_ = d.Close(ctx)
	}()

	items, err := collectItems(info.NewService(d, eng, logger), o, stderr)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return info.ErrNoMetadata
	}

	printItems(stdout, items)
	if o.probeOnly {
		return nil
	}

	if err := platform.CreateDirectoryIfNotExists(o.out); err != nil {
		return err
	}

	svc := download.NewService(d, eng, logger)
	res, err := fetch(svc, items, download.Choice{Kind: kind, FormatSelector: o.format}, o.out, stderr)
	if err != nil {
		return err
	}
	if len(res.failed) > 0 {
		for _, msg := range res.failed {
			fmt.Fprintln(stderr, "failed:", msg)
		}
		return fmt.Errorf("%d of %d downloads failed", len(res.failed), res.started)
	}
	return nil
}

// itemSet keeps probed items in order, once per item ID
type itemSet struct {
	items []*model.MediaItemInfo
	seen  map[string]bool
}

func (s *itemSet) add(items ...*model.MediaItemInfo) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, item := range items {
		if item == nil || s.seen[item.ID] {
			continue
		}
		s.seen[item.ID] = true
		s.items = append(s.items, item)
	}
}

// collectItems runs one metadata task and collects the items it reports. A
// playlist batch replaces the items gathered from per-entry events.
func collectItems(svc prober, o options, stderr io.Writer) ([]*model.MediaItemInfo, error) {
	events := make(chan model.Event, 16)
	sub := dispatch.ChannelSubscriber(events)

	start := svc.ProbeItem
	if o.playlist || platform.IsPlaylistURL(o.url) {
		start = svc.ProbePlaylist
	}
	if _, err := start(o.url, sub); err != nil {
		return nil, err
	}

	var (
		set     itemSet
		lastErr string
	)
	for ev := range events {
		switch ev.Kind {
		case model.EventProgress:
			fmt.Fprintf(stderr, "[%3d%%] %s\n", ev.Progress.Percent(), ev.Progress.Message)
			if b := ev.Progress.Batch; b != nil {
				set = itemSet{}
				set.add(b.Items...)
			} else {
				set.add(ev.Progress.Item)
			}
		case model.EventError:
			lastErr = ev.Message
		case model.EventFinished:
			if len(set.items) == 0 && lastErr != "" {
				return nil, errors.New(lastErr)
			}
			return set.items, nil
		}
	}
	return set.items, nil
}

func printItems(w io.Writer, items []*model.MediaItemInfo) {
	for i, item := range items {
		fmt.Fprintf(w, "%3d. %s [%s]\n", i+1, item.Title, item.DurationDisplay)
		for _, f := range item.VideoFormats {
			fmt.Fprintf(w, "       video %-24s %s\n", f.Label, f.FormatSelector)
		}
		for _, f := range item.AudioFormats {
			fmt.Fprintf(w, "       audio %-24s %s\n", f.Label, f.FormatSelector)
		}
	}
	count, seconds := model.SelectionSummary(items)
	fmt.Fprintf(w, "%d item(s), %s total\n", count, model.FormatDuration(seconds))
}

// fetchResult counts what happened to the submitted downloads
type fetchResult struct {
	started  int
	finished int
	failed   []string
}

// fetch downloads every selected item and draws one bar over the finished
// count. It returns once every submitted task has finished.
func fetch(svc download.Downloader, items []*model.MediaItemInfo, choice download.Choice, dir string, stderr io.Writer) (fetchResult, error) {
	events := make(chan model.Event, 64)

	handles, err := svc.DownloadSelected(items, choice, dir, dispatch.ChannelSubscriber(events))
	res := fetchResult{started: len(handles)}
	if err != nil && len(handles) == 0 {
		return res, err
	}

	bar := progressbar.NewOptions(len(handles),
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
	)
	describe := rate.Sometimes{Interval: describeInterval}

	for res.finished < res.started {
		ev := <-events
		switch ev.Kind {
		case model.EventProgress:
			if ts := ev.Progress.Transfer; ts != nil {
				describe.Do(func() {
					bar.Describe(fmt.Sprintf("%s %.1f%% %s ETA %s", ev.Progress.Message, ts.Percent, ts.SpeedString(), ts.ETAString()))
				})
			}
		case model.EventError:
			res.failed = append(res.failed, ev.Message)
		case model.EventFinished:
			res.finished++
			_ = bar.Add(1)
		}
	}
	_ = bar.Finish()
	fmt.Fprintln(stderr)

	return res, err
}
