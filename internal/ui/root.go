package ui

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/time/rate"

	"github.com/ytget/yt-fetcher/internal/config"
	"github.com/ytget/yt-fetcher/internal/dispatch"
	"github.com/ytget/yt-fetcher/internal/download"
	"github.com/ytget/yt-fetcher/internal/model"
	"github.com/ytget/yt-fetcher/internal/platform"
)

// Prober starts metadata probes
type Prober interface {
	ProbeItem(locator string, subs ...dispatch.Subscriber) (*dispatch.Handle, error)
	ProbePlaylist(locator string, subs ...dispatch.Subscriber) (*dispatch.Handle, error)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	presenter    *Presenter
	prober       Prober
	downloader   download.Downloader
	logger       *slog.Logger

	urlEntry      *widget.Entry
	fetchBtn      *widget.Button
	settingsBtn   *widget.Button
	kindLabel     *widget.Label
	kindSelect    *widget.Select
	qualityLabel  *widget.Label
	qualitySelect *widget.Select
	dirEntry      *widget.Entry
	browseBtn     *widget.Button
	openBtn       *widget.Button
	downloadBtn   *widget.Button
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	speedLabel    *widget.Label
	etaLabel      *widget.Label
	summaryLabel  *widget.Label
	items         *PlaylistGroup

	// options currently offered by qualitySelect
	qualityOptions []model.FormatOption

	// transfer progress arrives far faster than it can be drawn
	redraw rate.Sometimes
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, prober Prober, downloader download.Downloader, logger *slog.Logger) *RootUI {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		presenter:    NewPresenter(localization),
		prober:       prober,
		downloader:   downloader,
		logger:       logger.With("component", "ui"),
		redraw:       rate.Sometimes{Interval: RedrawInterval},
	}

	downloader.SetPreferences(settings.DownloadPreferences())

	ui.setupUI()
	ui.render()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	text := ui.localization.GetText

	ui.window.SetTitle(text(KeyAppTitle))

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onFetchClick() }

	ui.fetchBtn = widget.NewButton(text(KeyFetch), ui.onFetchClick)
	ui.fetchBtn.Importance = widget.HighImportance

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	ui.summaryLabel = widget.NewLabel("")

	ui.items = NewPlaylistGroup(ui.localization, ui.onToggleItem)

	ui.kindLabel = widget.NewLabel(text(KeyFormat))
	ui.kindSelect = widget.NewSelect(ui.kindOptions(), func(string) { ui.onKindChanged() })
	ui.kindSelect.SetSelectedIndex(ui.kindIndex(ui.settings.GetMediaKind()))

	ui.qualityLabel = widget.NewLabel(text(KeyQuality))
	ui.qualitySelect = widget.NewSelect(nil, nil)

	ui.dirEntry = widget.NewEntry()
	ui.dirEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.browseBtn = widget.NewButton(IconFolder, ui.onBrowseDirectory)
	ui.openBtn = widget.NewButton(text(KeyOpenFolder), ui.onOpenFolder)

	ui.downloadBtn = widget.NewButton(text(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis
	ui.speedLabel = widget.NewLabel("")
	ui.etaLabel = widget.NewLabel("")

	urlRow := container.NewBorder(nil, nil, ui.settingsBtn, ui.fetchBtn, ui.urlEntry)
	top := container.NewVBox(urlRow, ui.summaryLabel)

	optionsRow := container.NewBorder(nil, nil,
		container.NewHBox(ui.kindLabel, ui.kindSelect, ui.qualityLabel), nil,
		ui.qualitySelect)
	dirRow := container.NewBorder(nil, nil, nil, container.NewHBox(ui.browseBtn, ui.openBtn), ui.dirEntry)
	transferRow := container.NewGridWithColumns(2, ui.speedLabel, ui.etaLabel)

	bottom := container.NewVBox(
		optionsRow,
		dirRow,
		ui.downloadBtn,
		ui.progressBar,
		transferRow,
		ui.statusLabel,
	)

	ui.window.SetContent(container.NewBorder(top, bottom, nil, nil, ui.items.Container()))
}

func (ui *RootUI) kindOptions() []string {
	return []string{
		IconVideo + " " + ui.localization.GetText(KeyKindVideo),
		IconMusic + " " + ui.localization.GetText(KeyKindAudio),
	}
}

func (ui *RootUI) kindIndex(kind download.MediaKind) int {
	if kind == download.KindAudio {
		return 1
	}
	return 0
}

// selectedKind maps the format picker onto a media kind
func (ui *RootUI) selectedKind() download.MediaKind {
	if ui.kindSelect.SelectedIndex() == 1 {
		return download.KindAudio
	}
	return download.KindVideo
}

// refreshUITexts re-applies localized texts after a language change
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText

	ui.window.SetTitle(text(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	ui.fetchBtn.SetText(text(KeyFetch))
	ui.openBtn.SetText(text(KeyOpenFolder))
	ui.downloadBtn.SetText(text(KeyDownload))
	ui.kindLabel.SetText(text(KeyFormat))
	ui.qualityLabel.SetText(text(KeyQuality))

	index := ui.kindSelect.SelectedIndex()
	ui.kindSelect.Options = ui.kindOptions()
	ui.kindSelect.SetSelectedIndex(index)

	ui.qualityOptions = nil
	ui.render()
}

// onFetchClick validates the URL and starts a probe
func (ui *RootUI) onFetchClick() {
	locator := strings.TrimSpace(ui.urlEntry.Text)
	if locator == "" {
		ui.showError(ui.localization.GetText(KeyPleaseEnterURL))
		return
	}
	if err := platform.ValidateLocator(locator); err != nil {
		ui.showError(ui.localization.GetText(KeyInvalidURL))
		return
	}

	gen, err := ui.presenter.BeginProbe()
	if errors.Is(err, ErrBusy) {
		ui.showError(ui.localization.GetText(KeyDownloadsRunning))
		return
	}
	ui.qualityOptions = nil
	ui.render()

	onEvent := func(ev model.Event) {
		ui.presenter.ApplyProbeEvent(gen, ev)
		ui.scheduleRender(ev.Kind != model.EventProgress || ev.Progress.HasPayload())
	}

	probe := ui.prober.ProbeItem
	if platform.IsPlaylistURL(locator) {
		probe = ui.prober.ProbePlaylist
	}

	h, err := probe(locator, onEvent)
	if err != nil {
		ui.logger.Error("failed to start probe", "url", locator, "error", err)
		ui.presenter.ApplyProbeEvent(gen, model.Event{Kind: model.EventError, Message: err.Error()})
		ui.presenter.ApplyProbeEvent(gen, model.Event{Kind: model.EventFinished})
		ui.render()
		return
	}
	ui.logger.Info("probe started", "url", locator, "task_id", h.ID())
}

// downloadSubscriber returns the event handler for downloads started as
// gen; it runs on a worker goroutine
func (ui *RootUI) downloadSubscriber(gen int) dispatch.Subscriber {
	return func(ev model.Event) {
		ui.presenter.ApplyDownloadEvent(gen, ev)
		if ev.Kind == model.EventError {
			ui.logger.Warn("download failed", "item_id", ev.ItemID, "error", ev.Message)
		}
		ui.scheduleRender(ev.Kind != model.EventProgress)
	}
}

// scheduleRender marshals a redraw onto the UI goroutine. Plain progress
// redraws are throttled; everything else is drawn immediately.
func (ui *RootUI) scheduleRender(force bool) {
	if force {
		fyne.Do(ui.render)
		return
	}
	ui.redraw.Do(func() {
		fyne.Do(ui.render)
	})
}

// render copies presenter state into the widgets; UI goroutine only
func (ui *RootUI) render() {
	state := ui.presenter.Snapshot()

	ui.items.SetRows(state.PlaylistTitle, state.Rows)
	ui.summaryLabel.SetText(state.Summary)
	ui.statusLabel.SetText(state.Status)
	ui.progressBar.SetValue(state.Progress)
	ui.speedLabel.SetText(ui.localization.Format(KeySpeed, state.Speed))
	ui.etaLabel.SetText(ui.localization.Format(KeyETA, state.ETA))

	if state.Fetching || state.Downloading {
		ui.fetchBtn.Disable()
	} else {
		ui.fetchBtn.Enable()
	}
	if state.Fetching || state.Downloading || len(state.Rows) == 0 {
		ui.downloadBtn.Disable()
	} else {
		ui.downloadBtn.Enable()
	}

	ui.updateQualityOptions()
}

// updateQualityOptions fills the quality picker from the first listed item
func (ui *RootUI) updateQualityOptions() {
	options := ui.presenter.QualityOptions(ui.selectedKind())
	if sameOptions(options, ui.qualityOptions) && len(ui.qualitySelect.Options) > 0 {
		return
	}
	ui.qualityOptions = options

	if len(options) == 0 {
		ui.qualitySelect.Options = []string{ui.localization.GetText(KeyNoQuality)}
		ui.qualitySelect.SetSelectedIndex(0)
		ui.qualitySelect.Disable()
		return
	}

	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	ui.qualitySelect.Options = labels
	ui.qualitySelect.SetSelectedIndex(0)
	ui.qualitySelect.Enable()
}

func sameOptions(a, b []model.FormatOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (ui *RootUI) onKindChanged() {
	ui.settings.SetMediaKind(ui.selectedKind())
	if ui.qualitySelect == nil {
		return
	}
	ui.qualityOptions = nil
	ui.updateQualityOptions()
}

func (ui *RootUI) onToggleItem(index int, selected bool) {
	ui.presenter.SetSelected(index, selected)
	ui.summaryLabel.SetText(ui.presenter.SelectionSummary())
}

// selectedFormat returns the selector behind the quality picker
func (ui *RootUI) selectedFormat() string {
	i := ui.qualitySelect.SelectedIndex()
	if i < 0 || i >= len(ui.qualityOptions) {
		return ""
	}
	return ui.qualityOptions[i].FormatSelector
}

// onDownloadClick starts one download per selected item
func (ui *RootUI) onDownloadClick() {
	items := ui.presenter.Items()
	if len(items) == 0 {
		ui.showError(ui.localization.GetText(KeyFetchFirst))
		return
	}

	dir := strings.TrimSpace(ui.dirEntry.Text)
	if dir == "" {
		ui.showError(ui.localization.GetText(KeySelectDirectory))
		return
	}

	if len(model.SelectedItems(items)) == 0 {
		ui.showError(ui.localization.GetText(KeySelectAtLeastOne))
		return
	}

	ui.settings.SetDownloadDirectory(dir)
	ui.downloader.SetPreferences(ui.settings.DownloadPreferences())

	choice := download.Choice{Kind: ui.selectedKind(), FormatSelector: ui.selectedFormat()}

	gen := ui.presenter.BeginDownloads()
	ui.render()

	handles, err := ui.downloader.DownloadSelected(items, choice, dir, ui.downloadSubscriber(gen))
	if err != nil {
		ui.logger.Error("failed to start downloads", "submitted", len(handles), "error", err)
		submitted := make([]string, len(handles))
		for i, h := range handles {
			submitted[i] = h.ItemID()
		}
		ui.presenter.AbortDownloads(submitted, err)
		ui.render()
		return
	}
	ui.logger.Info("downloads started", "count", len(handles), "kind", choice.Kind, "format", choice.FormatSelector)
}

// onBrowseDirectory handles directory browsing
func (ui *RootUI) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.dirEntry.SetText(uri.Path())
		ui.settings.SetDownloadDirectory(uri.Path())
	}, ui.window)
}

// onOpenFolder reveals the download directory in the file manager
func (ui *RootUI) onOpenFolder() {
	dir := strings.TrimSpace(ui.dirEntry.Text)
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		ui.showError(err.Error())
		return
	}
	if err := platform.OpenFolder(dir); err != nil {
		ui.logger.Error("failed to open folder", "dir", dir, "error", err)
		ui.showError(err.Error())
	}
}

// onShowSettings opens the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

func (ui *RootUI) onSettingsSaved() {
	ui.downloader.SetPreferences(ui.settings.DownloadPreferences())
	ui.dirEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
}

func (ui *RootUI) showError(message string) {
	dialog.ShowError(errors.New(message), ui.window)
}
