package ui

import (
	"errors"
	"sync"

	"github.com/ytget/yt-fetcher/internal/download"
	"github.com/ytget/yt-fetcher/internal/model"
)

// RowState is the download state shown next to an item
type RowState int

const (
	RowReady RowState = iota
	RowQueued
	RowDownloading
	RowCompleted
	RowFailed
)

// IsActive reports whether the row waits for a download to end
func (s RowState) IsActive() bool {
	return s == RowQueued || s == RowDownloading
}

// RowView is the render state of one item
type RowView struct {
	Item     *model.MediaItemInfo
	Selected bool
	State    RowState
	Percent  float64 // 0 to 100
	Error    string
}

// ViewState is a snapshot of everything the window renders
type ViewState struct {
	Rows          []RowView
	PlaylistTitle string
	Status        string
	Progress      float64 // 0 to 1
	Speed         string
	ETA           string
	Summary       string
	Fetching      bool
	Downloading   bool
}

// Presenter folds task events into view state. Events arrive on worker
// goroutines; the window reads snapshots on the UI goroutine.
type Presenter struct {
	mu  sync.Mutex
	loc *Localization

	rows          []*RowView
	index         map[string]int
	playlistTitle string

	status   string
	progress float64
	speed    string
	eta      string
	fetching bool
	failed   bool

	// events carrying an older generation belong to a replaced list
	probeGen    int
	downloadGen int
}

// NewPresenter creates an empty presenter
func NewPresenter(loc *Localization) *Presenter {
	return &Presenter{
		loc:    loc,
		index:  make(map[string]int),
		status: loc.GetText(KeyReady),
		speed:  DashPlaceholder,
		eta:    DashPlaceholder,
	}
}

// ErrBusy is returned by BeginProbe while downloads are running
var ErrBusy = errors.New("downloads are still running")

// BeginProbe clears previous results before a new fetch and returns the
// generation to pass to ApplyProbeEvent. The list cannot be replaced while
// any of its rows is downloading.
func (p *Presenter) BeginProbe() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.downloadingLocked() {
		return 0, ErrBusy
	}

	p.probeGen++
	p.downloadGen++
	p.rows = nil
	p.index = make(map[string]int)
	p.playlistTitle = ""
	p.status = p.loc.GetText(KeyFetchingInfo)
	p.progress = 0
	p.fetching = true
	p.failed = false
	return p.probeGen, nil
}

// ApplyProbeEvent handles an event from the probe started as gen; events of
// earlier probes are dropped
func (p *Presenter) ApplyProbeEvent(gen int, ev model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.probeGen {
		return
	}

	switch ev.Kind {
	case model.EventProgress:
		pe := ev.Progress
		p.status = pe.Message
		p.progress = float64(pe.Percent()) / 100
		if pe.Item != nil {
			p.addRow(pe.Item)
		}
		if pe.Batch != nil {
			p.playlistTitle = pe.Batch.PlaylistTitle
			for _, item := range pe.Batch.Items {
				p.addRow(item)
			}
			p.status = p.loc.GetText(KeyInfoReady)
		}
	case model.EventError:
		p.failed = true
		p.status = p.loc.Format(KeyError, ev.Message)
	case model.EventFinished:
		p.fetching = false
		if !p.failed {
			p.status = p.loc.GetText(KeyFetchCompleted)
			p.progress = 1
		}
	}
}

// addRow appends item unless it is already listed; mu must be held
func (p *Presenter) addRow(item *model.MediaItemInfo) {
	if _, ok := p.index[item.ID]; ok {
		return
	}
	p.index[item.ID] = len(p.rows)
	p.rows = append(p.rows, &RowView{Item: item})
}

// SetSelected toggles the item at row i
func (p *Presenter) SetSelected(i int, selected bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= 0 && i < len(p.rows) {
		p.rows[i].Item.SetSelected(selected)
	}
}

// Items returns the listed items in display order
func (p *Presenter) Items() []*model.MediaItemInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := make([]*model.MediaItemInfo, len(p.rows))
	for i, r := range p.rows {
		items[i] = r.Item
	}
	return items
}

// QualityOptions returns the options of the first item for kind
func (p *Presenter) QualityOptions(kind download.MediaKind) []model.FormatOption {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.rows) == 0 {
		return nil
	}
	first := p.rows[0].Item
	if kind == download.KindAudio {
		return first.AudioFormats
	}
	return first.VideoFormats
}

// BeginDownloads marks the selected downloadable items as queued and returns
// the generation to pass to ApplyDownloadEvent
func (p *Presenter) BeginDownloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.rows {
		if r.Item.Selected && r.Item.SourceURL != "" {
			r.State = RowQueued
			r.Percent = 0
			r.Error = ""
		}
	}
	p.progress = 0
	p.speed = DashPlaceholder
	p.eta = DashPlaceholder
	return p.downloadGen
}

// AbortDownloads resets queued rows whose task was never submitted.
// submitted holds the item IDs of tasks that did start.
func (p *Presenter) AbortDownloads(submitted []string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	running := make(map[string]bool, len(submitted))
	for _, id := range submitted {
		running[id] = true
	}
	for _, r := range p.rows {
		if r.State == RowQueued && !running[r.Item.ID] {
			r.State = RowReady
		}
	}
	p.status = p.loc.Format(KeyError, err.Error())
}

// ApplyDownloadEvent handles an event from a download started as gen;
// events for a list that has since been replaced are dropped
func (p *Presenter) ApplyDownloadEvent(gen int, ev model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.downloadGen {
		return
	}

	row := p.row(ev.ItemID)

	switch ev.Kind {
	case model.EventProgress:
		stats := ev.Progress.Transfer
		if stats == nil {
			return
		}
		p.progress = stats.Percent / 100
		p.status = p.loc.Format(KeyDownloading, ev.Progress.Message, stats.Percent)
		p.speed = stats.SpeedString()
		p.eta = stats.ETAString()
		if row != nil {
			row.State = RowDownloading
			row.Percent = stats.Percent
		}
	case model.EventError:
		p.status = p.loc.Format(KeyError, ev.Message)
		if row != nil {
			row.State = RowFailed
			row.Error = ev.Message
		}
	case model.EventFinished:
		if row != nil && row.State != RowFailed {
			row.State = RowCompleted
			row.Percent = 100
		}
		if !p.downloadingLocked() {
			p.status = p.loc.GetText(KeyAllCompleted)
			p.progress = 1
			p.eta = DashPlaceholder
		}
	}
}

func (p *Presenter) row(itemID string) *RowView {
	if i, ok := p.index[itemID]; ok {
		return p.rows[i]
	}
	return nil
}

func (p *Presenter) downloadingLocked() bool {
	for _, r := range p.rows {
		if r.State.IsActive() {
			return true
		}
	}
	return false
}

// SelectionSummary returns the selected count and duration line
func (p *Presenter) SelectionSummary() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summaryLocked()
}

func (p *Presenter) summaryLocked() string {
	items := make([]*model.MediaItemInfo, len(p.rows))
	for i, r := range p.rows {
		items[i] = r.Item
	}
	count, seconds := model.SelectionSummary(items)
	return p.loc.Format(KeySelectionSummary, count, model.FormatDuration(seconds))
}

// Snapshot copies the current state for rendering
func (p *Presenter) Snapshot() ViewState {
	p.mu.Lock()
	defer p.mu.Unlock()

	rows := make([]RowView, len(p.rows))
	for i, r := range p.rows {
		rows[i] = *r
		rows[i].Selected = r.Item.Selected
	}
	return ViewState{
		Rows:          rows,
		PlaylistTitle: p.playlistTitle,
		Status:        p.status,
		Progress:      p.progress,
		Speed:         p.speed,
		ETA:           p.eta,
		Summary:       p.summaryLocked(),
		Fetching:      p.fetching,
		Downloading:   p.downloadingLocked(),
	}
}
