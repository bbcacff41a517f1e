package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-fetcher/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry  *widget.Entry
	maxWorkersEntry   *widget.Entry
	audioCodecSelect  *widget.Select
	audioQualitySel   *widget.Select
	containerSelect   *widget.Select
	filenameEntry     *widget.Entry
	restrictCheck     *widget.Check
	backendSelect     *widget.Select
	languageSelect    *widget.Select
	initialMaxWorkers int
	initialBackend    string
}

// NewSettingsDialog creates a new settings dialog; onSaved runs after a save
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxWorkersEntry = widget.NewEntry()
	sd.maxWorkersEntry.SetPlaceHolder(strconv.Itoa(config.MinWorkers) + "-" + strconv.Itoa(config.MaxWorkers))

	sd.audioCodecSelect = widget.NewSelect(config.AudioCodecs, nil)
	sd.audioQualitySel = widget.NewSelect(config.AudioQualities, nil)
	sd.containerSelect = widget.NewSelect(config.VideoContainers, nil)
	sd.backendSelect = widget.NewSelect(config.EngineBackends, nil)

	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder(config.DefaultFilenameTemplate)

	sd.restrictCheck = widget.NewCheck(text(KeyRestrictFilenames), nil)

	languageCodes := make([]string, 0)
	for code := range sd.settings.GetLanguageOptions() {
		languageCodes = append(languageCodes, code)
	}
	sort.Strings(languageCodes)
	sd.languageSelect = widget.NewSelect(languageCodes, nil)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(text(KeyMaxWorkers), sd.maxWorkersEntry),
		widget.NewFormItem(text(KeyAudioCodec), sd.audioCodecSelect),
		widget.NewFormItem(text(KeyAudioQuality), sd.audioQualitySel),
		widget.NewFormItem(text(KeyVideoContainer), sd.containerSelect),
		widget.NewFormItem(text(KeyFilenameTemplate), sd.filenameEntry),
		widget.NewFormItem("", sd.restrictCheck),
		widget.NewFormItem(text(KeyEngineBackend), sd.backendSelect),
		widget.NewFormItem(text(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.initialMaxWorkers = sd.settings.GetMaxWorkers()
	sd.initialBackend = sd.settings.GetEngineBackend()

	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxWorkersEntry.SetText(strconv.Itoa(sd.initialMaxWorkers))
	sd.audioCodecSelect.SetSelected(sd.settings.GetAudioCodec())
	sd.audioQualitySel.SetSelected(sd.settings.GetAudioQuality())
	sd.containerSelect.SetSelected(sd.settings.GetVideoContainer())
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.restrictCheck.SetChecked(sd.settings.GetRestrictFilenames())
	sd.backendSelect.SetSelected(sd.settings.GetEngineBackend())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	restartNeeded := false
	if n, err := strconv.Atoi(sd.maxWorkersEntry.Text); err == nil {
		sd.settings.SetMaxWorkers(n)
		restartNeeded = sd.settings.GetMaxWorkers() != sd.initialMaxWorkers
	}

	sd.settings.SetAudioCodec(sd.audioCodecSelect.Selected)
	sd.settings.SetAudioQuality(sd.audioQualitySel.Selected)
	sd.settings.SetVideoContainer(sd.containerSelect.Selected)
	sd.settings.SetFilenameTemplate(sd.filenameEntry.Text)
	sd.settings.SetRestrictFilenames(sd.restrictCheck.Checked)

	if sd.backendSelect.Selected != "" {
		sd.settings.SetEngineBackend(sd.backendSelect.Selected)
		restartNeeded = restartNeeded || sd.backendSelect.Selected != sd.initialBackend
	}
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	message := sd.localization.GetText(KeySettingsSaved)
	if restartNeeded {
		message += "\n" + sd.localization.GetText(KeyRestartRequired)
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), message, sd.window)
}
