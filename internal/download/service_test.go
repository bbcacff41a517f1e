package download

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/yt-fetcher/internal/dispatch"
	"github.com/ytget/yt-fetcher/internal/engine"
	"github.com/ytget/yt-fetcher/internal/info"
	"github.com/ytget/yt-fetcher/internal/model"
)

// scriptedEngine replays samples and returns err for the first failures calls
type scriptedEngine struct {
	mu       sync.Mutex
	samples  []engine.ProgressSample
	failures int
	err      error
	calls    []string
	opts     []model.Options
}

func (e *scriptedEngine) Probe(ctx context.Context, locator string, opts model.Options) (*engine.RawInfo, error) {
	return nil, engine.ErrUnsupported
}

func (e *scriptedEngine) Download(ctx context.Context, locator string, opts model.Options, hook engine.ProgressHook) error {
	e.mu.Lock()
	e.calls = append(e.calls, locator)
	e.opts = append(e.opts, opts)
	fail := len(e.calls) <= e.failures
	e.mu.Unlock()

	for _, s := range e.samples {
		hook(s)
	}
	if fail {
		return e.err
	}
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recorder) subscriber() dispatch.Subscriber {
	return func(ev model.Event) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	}
}

func (r *recorder) snapshot() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.events...)
}

func newTestService(t *testing.T, eng engine.Engine) *Service {
	t.Helper()
	d := dispatch.New(4, nil)
	t.Cleanup(func() { d.Close(context.Background()) })

	return NewService(d, eng, nil)
}

func wait(t *testing.T, handles ...*dispatch.Handle) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, h := range handles {
		if err := h.Wait(ctx); err != nil {
			t.Fatalf("task %s did not finish: %v", h.ID(), err)
		}
	}
}

func TestDownloadItem_RelaysDownloadingSamples(t *testing.T) {
	eng := &scriptedEngine{samples: []engine.ProgressSample{
		{Status: engine.StatusDownloading, DownloadedBytes: 0, TotalBytes: 1000, Filename: "/out/a.mp4"},
		{Status: engine.StatusDownloading, DownloadedBytes: 500, TotalBytesEstimate: 1000, Filename: "/out/a.mp4"},
		{Status: engine.StatusFinished, DownloadedBytes: 1000, TotalBytes: 1000, Filename: "/out/a.mp4"},
	}}
	svc := newTestService(t, eng)
	rec := &recorder{}

	h, err := svc.DownloadItem("https://www.youtube.com/watch?v=a", "22", t.TempDir(), rec.subscriber())
	if err != nil {
		t.Fatalf("DownloadItem failed: %v", err)
	}
	wait(t, h)

	events := rec.snapshot()
	if len(events) != 3 {
		t.Fatalf("Expected 2 progress + finished, got %d: %v", len(events), events)
	}
	for i, expect := range []int64{0, 500} {
		p := events[i].Progress
		if p.Message != "a.mp4" {
			t.Errorf("Expected basename message, got %q", p.Message)
		}
		if p.Current != expect || p.Total != 1000 {
			t.Errorf("Expected %d/1000, got %d/%d", expect, p.Current, p.Total)
		}
		if p.Transfer == nil {
			t.Fatal("Expected transfer stats")
		}
	}
	if events[1].Progress.Transfer.Percent != 50 {
		t.Errorf("Expected 50%%, got %v", events[1].Progress.Transfer.Percent)
	}
	if events[2].Kind != model.EventFinished {
		t.Errorf("Expected finished last, got %v", events[2].Kind)
	}
	if h.Status() != model.TaskStatusCompleted {
		t.Errorf("Expected completed, got %s", h.Status())
	}
}

func TestDownloadItem_FailureIsReportedOnce(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		samples  []engine.ProgressSample
		progress int
	}{
		{"fails before any bytes", 1, nil, 0},
		{"fails mid transfer", 1, []engine.ProgressSample{
			{Status: engine.StatusDownloading, DownloadedBytes: 100, TotalBytes: 1000, Filename: "/out/a.mp4"},
			{Status: engine.StatusDownloading, DownloadedBytes: 400, TotalBytes: 1000, Filename: "/out/a.mp4"},
		}, 2},
		{"would fail again", 2, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &scriptedEngine{failures: tt.failures, samples: tt.samples, err: errors.New("HTTP Error 403: Forbidden")}
			svc := newTestService(t, eng)
			rec := &recorder{}

			h, err := svc.DownloadItem("https://www.youtube.com/watch?v=a", "18", t.TempDir(), rec.subscriber())
			if err != nil {
				t.Fatalf("DownloadItem failed: %v", err)
			}
			wait(t, h)

			if len(eng.calls) != 1 {
				t.Errorf("Expected exactly 1 engine call, got %d", len(eng.calls))
			}

			events := rec.snapshot()
			if len(events) != tt.progress+2 {
				t.Fatalf("Expected %d progress + error + finished, got %v", tt.progress, events)
			}
			var last int64
			for _, ev := range events[:tt.progress] {
				if ev.Kind != model.EventProgress || ev.Progress.Current < last {
					t.Errorf("Expected monotonic progress, got %v", ev)
				}
				last = ev.Progress.Current
			}
			errEv, finEv := events[tt.progress], events[tt.progress+1]
			if errEv.Kind != model.EventError || errEv.Message != "HTTP Error 403: Forbidden" {
				t.Errorf("Unexpected error event: %v", errEv)
			}
			if finEv.Kind != model.EventFinished {
				t.Errorf("Expected finished last, got %v", finEv)
			}
			if h.Status() != model.TaskStatusError {
				t.Errorf("Expected error status, got %s", h.Status())
			}
		})
	}
}

func TestDownloadItem_PostProcessing(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		expect   model.PostProcessorSpec
	}{
		{"audio selector extracts", "bestaudio/best", model.PostProcessorSpec{Kind: model.PostProcessExtractAudio, Codec: "mp3", Quality: "192"}},
		{"format id remuxes", "137+140", model.PostProcessorSpec{Kind: model.PostProcessRemuxVideo, Codec: "mp4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &scriptedEngine{}
			svc := newTestService(t, eng)
			dir := t.TempDir()

			h, err := svc.DownloadItem("https://www.youtube.com/watch?v=a", tt.selector, dir)
			if err != nil {
				t.Fatalf("DownloadItem failed: %v", err)
			}
			wait(t, h)

			opts := eng.opts[0]
			if len(opts.PostProcessors) != 1 || opts.PostProcessors[0] != tt.expect {
				t.Errorf("Expected %+v, got %+v", tt.expect, opts.PostProcessors)
			}
			if opts.FormatSelector != tt.selector {
				t.Errorf("Expected selector %q, got %q", tt.selector, opts.FormatSelector)
			}
			if opts.OutputTemplate != filepath.Join(dir, DefaultFilenameTemplate) {
				t.Errorf("Unexpected output template %q", opts.OutputTemplate)
			}
		})
	}
}

func TestDownloadSelected(t *testing.T) {
	eng := &scriptedEngine{}
	svc := newTestService(t, eng)
	dir := t.TempDir()

	a := model.NewMediaItemInfo("A/B: part 1", "https://www.youtube.com/watch?v=a", 10)
	b := model.NewMediaItemInfo("B", "https://www.youtube.com/watch?v=b", 10)
	b.SetSelected(false)
	c := model.NewMediaItemInfo("C", "https://www.youtube.com/watch?v=c", 10)
	noURL := model.NewMediaItemInfo("D", "", 10)

	rec := &recorder{}
	handles, err := svc.DownloadSelected([]*model.MediaItemInfo{a, b, c, noURL}, Choice{Kind: KindAudio}, dir, rec.subscriber())
	if err != nil {
		t.Fatalf("DownloadSelected failed: %v", err)
	}
	if len(handles) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(handles))
	}
	wait(t, handles...)

	calls := append([]string(nil), eng.calls...)
	sort.Strings(calls)
	if strings.Join(calls, ",") != "https://www.youtube.com/watch?v=a,https://www.youtube.com/watch?v=c" {
		t.Errorf("Unexpected calls %v", calls)
	}

	itemIDs := map[string]bool{}
	for _, h := range handles {
		itemIDs[h.ItemID()] = true
	}
	if !itemIDs[a.ID] || !itemIDs[c.ID] {
		t.Errorf("Expected handles tagged with item IDs, got %v", itemIDs)
	}

	finished := 0
	for _, ev := range rec.snapshot() {
		if ev.Kind == model.EventFinished {
			finished++
		}
	}
	if finished != 2 {
		t.Errorf("Expected 2 finished events, got %d", finished)
	}

	templates := map[string]bool{}
	for _, opts := range eng.opts {
		if opts.FormatSelector != info.BestAudioSelector {
			t.Errorf("Expected default audio selector, got %q", opts.FormatSelector)
		}
		templates[opts.OutputTemplate] = true
	}
	for _, expect := range []string{filepath.Join(dir, "A_B_ part 1.%(ext)s"), filepath.Join(dir, "C.%(ext)s")} {
		if !templates[expect] {
			t.Errorf("Expected output template %q, got %v", expect, templates)
		}
	}
}

func TestDownloadSelected_NothingSelected(t *testing.T) {
	svc := newTestService(t, &scriptedEngine{})
	item := model.NewMediaItemInfo("A", "https://www.youtube.com/watch?v=a", 10)
	item.SetSelected(false)

	_, err := svc.DownloadSelected([]*model.MediaItemInfo{item}, Choice{Kind: KindVideo}, t.TempDir())
	if !errors.Is(err, ErrNothingSelected) {
		t.Errorf("Expected ErrNothingSelected, got %v", err)
	}
}

func TestOutputTemplate(t *testing.T) {
	prefs := DefaultPreferences()

	tests := []struct {
		name   string
		title  string
		prefs  Preferences
		expect string
	}{
		{"unknown title uses engine template", "", prefs, filepath.Join("/dl", "%(title)s.%(ext)s")},
		{"default title uses engine template", model.DefaultTitle, prefs, filepath.Join("/dl", "%(title)s.%(ext)s")},
		{"known title is sanitized", "AC/DC: Live", prefs, filepath.Join("/dl", "AC_DC_ Live.%(ext)s")},
		{"percent escaped", "100% Pure", prefs, filepath.Join("/dl", "100%% Pure.%(ext)s")},
		{"custom template wins", "Song", Preferences{FilenameTemplate: "%(id)s.%(ext)s"}, filepath.Join("/dl", "%(id)s.%(ext)s")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputTemplate("/dl", tt.title, tt.prefs); got != tt.expect {
				t.Errorf("Expected %q, got %q", tt.expect, got)
			}
		})
	}
}
