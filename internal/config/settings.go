package config

import (
	"os"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-fetcher/internal/download"
	"github.com/ytget/yt-fetcher/internal/engine"
	"github.com/ytget/yt-fetcher/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir       = "download_directory"
	KeyMaxWorkers        = "max_workers"
	KeyMediaKind         = "media_kind"
	KeyAudioCodec        = "audio_codec"
	KeyAudioQuality      = "audio_quality"
	KeyVideoContainer    = "video_container"
	KeyFilenameTemplate  = "filename_template"
	KeyRestrictFilenames = "restrict_filenames"
	KeyEngineBackend     = "engine_backend"
	KeyLanguage          = "app_language"
)

// Default values
const (
	DefaultMediaKind         = download.KindVideo
	DefaultAudioCodec        = download.DefaultAudioCodec
	DefaultAudioQuality      = download.DefaultAudioQuality
	DefaultVideoContainer    = download.DefaultVideoContainer
	DefaultFilenameTemplate  = download.DefaultFilenameTemplate
	DefaultRestrictFilenames = false
	DefaultEngineBackend     = engine.BackendYTDLP
	DefaultLanguage          = "system"

	MinWorkers = 1
	MaxWorkers = 32
)

// Audio codecs and video containers offered in settings
var (
	AudioCodecs     = []string{"mp3", "m4a", "opus", "flac", "wav"}
	AudioQualities  = []string{"128", "192", "256", "320"}
	VideoContainers = []string{"mp4", "mkv", "webm"}
	EngineBackends  = []string{engine.BackendYTDLP, engine.BackendHybrid}
)

// DefaultMaxWorkers is one worker per CPU, clamped to the allowed range
func DefaultMaxWorkers() int {
	return clampWorkers(runtime.NumCPU())
}

// DefaultDownloadDirectory returns ~/Downloads, or a temp directory when the
// home directory is unknown
func DefaultDownloadDirectory() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "downloads")
	}
	return dir
}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

func (s *Settings) prefs() fyne.Preferences {
	return s.app.Preferences()
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.prefs().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		dir = DefaultDownloadDirectory()
		s.SetDownloadDirectory(dir)
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.prefs().SetString(KeyDownloadDir, dir)
}

// GetMaxWorkers returns the size of the background worker pool
func (s *Settings) GetMaxWorkers() int {
	value := s.prefs().Int(KeyMaxWorkers)
	if value <= 0 {
		value = DefaultMaxWorkers()
		s.SetMaxWorkers(value)
	}
	return value
}

// SetMaxWorkers sets the worker pool size, clamped to 1..32
func (s *Settings) SetMaxWorkers(count int) {
	s.prefs().SetInt(KeyMaxWorkers, clampWorkers(count))
}

func clampWorkers(count int) int {
	if count < MinWorkers {
		return MinWorkers
	}
	if count > MaxWorkers {
		return MaxWorkers
	}
	return count
}

// GetMediaKind returns the last chosen media kind
func (s *Settings) GetMediaKind() download.MediaKind {
	switch kind := download.MediaKind(s.prefs().String(KeyMediaKind)); kind {
	case download.KindVideo, download.KindAudio:
		return kind
	default:
		return DefaultMediaKind
	}
}

// SetMediaKind remembers the media kind
func (s *Settings) SetMediaKind(kind download.MediaKind) {
	s.prefs().SetString(KeyMediaKind, string(kind))
}

// GetAudioCodec returns the codec used for audio extraction
func (s *Settings) GetAudioCodec() string {
	return s.prefs().StringWithFallback(KeyAudioCodec, DefaultAudioCodec)
}

// SetAudioCodec sets the codec used for audio extraction
func (s *Settings) SetAudioCodec(codec string) {
	s.prefs().SetString(KeyAudioCodec, orDefault(codec, DefaultAudioCodec))
}

// GetAudioQuality returns the audio bitrate in kbps
func (s *Settings) GetAudioQuality() string {
	return s.prefs().StringWithFallback(KeyAudioQuality, DefaultAudioQuality)
}

// SetAudioQuality sets the audio bitrate in kbps
func (s *Settings) SetAudioQuality(quality string) {
	s.prefs().SetString(KeyAudioQuality, orDefault(quality, DefaultAudioQuality))
}

// GetVideoContainer returns the container videos are remuxed into
func (s *Settings) GetVideoContainer() string {
	return s.prefs().StringWithFallback(KeyVideoContainer, DefaultVideoContainer)
}

// SetVideoContainer sets the container videos are remuxed into
func (s *Settings) SetVideoContainer(container string) {
	s.prefs().SetString(KeyVideoContainer, orDefault(container, DefaultVideoContainer))
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.prefs().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(DefaultFilenameTemplate)
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	s.prefs().SetString(KeyFilenameTemplate, orDefault(template, DefaultFilenameTemplate))
}

// GetRestrictFilenames reports whether filenames are limited to ASCII
func (s *Settings) GetRestrictFilenames() bool {
	return s.prefs().BoolWithFallback(KeyRestrictFilenames, DefaultRestrictFilenames)
}

// SetRestrictFilenames sets whether filenames are limited to ASCII
func (s *Settings) SetRestrictFilenames(restrict bool) {
	s.prefs().SetBool(KeyRestrictFilenames, restrict)
}

// GetEngineBackend returns the extraction backend name
func (s *Settings) GetEngineBackend() string {
	backend := s.prefs().String(KeyEngineBackend)
	for _, b := range EngineBackends {
		if b == backend {
			return backend
		}
	}
	return DefaultEngineBackend
}

// SetEngineBackend sets the extraction backend name
func (s *Settings) SetEngineBackend(backend string) {
	s.prefs().SetString(KeyEngineBackend, backend)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.prefs().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"tr":     "Türkçe",
	}
}

// DownloadPreferences collects the settings the download service needs
func (s *Settings) DownloadPreferences() download.Preferences {
	prefs := download.DefaultPreferences()
	prefs.AudioCodec = s.GetAudioCodec()
	prefs.AudioQuality = s.GetAudioQuality()
	prefs.VideoContainer = s.GetVideoContainer()
	prefs.FilenameTemplate = s.GetFilenameTemplate()
	prefs.RestrictFilenames = s.GetRestrictFilenames()
	return prefs
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
