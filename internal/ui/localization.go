package ui

import (
	"fmt"
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFetch             = "fetch"
	KeyDownload          = "download"
	KeyOpenFolder        = "open_folder"
	KeySettings          = "settings"
	KeyEnterURL          = "enter_url"
	KeyFormat            = "format"
	KeyQuality           = "quality"
	KeyKindVideo         = "kind_video"
	KeyKindAudio         = "kind_audio"
	KeyNoQuality         = "no_quality"
	KeyDownloadDirectory = "download_directory"
	KeyBrowse            = "browse"
	KeyReady             = "ready"
	KeyFetchingInfo      = "fetching_info"
	KeyInfoReady         = "info_ready"
	KeyFetchCompleted    = "fetch_completed"
	KeyDownloading       = "downloading"
	KeyQueued            = "queued"
	KeyCompleted         = "completed"
	KeyFailed            = "failed"
	KeyAllCompleted      = "all_completed"
	KeyError             = "error"
	KeySpeed             = "speed"
	KeyETA               = "eta"
	KeyTotalVideos       = "total_videos"
	KeySelectionSummary  = "selection_summary"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyFetchFirst        = "fetch_first"
	KeySelectDirectory   = "select_directory"
	KeySelectAtLeastOne  = "select_at_least_one"
	KeyLanguage          = "language"
	KeyMaxWorkers        = "max_workers"
	KeyAudioCodec        = "audio_codec"
	KeyAudioQuality      = "audio_quality"
	KeyVideoContainer    = "video_container"
	KeyFilenameTemplate  = "filename_template"
	KeyRestrictFilenames = "restrict_filenames"
	KeyEngineBackend     = "engine_backend"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeyRestartRequired   = "restart_required"
	KeyDownloadsRunning  = "downloads_running"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage derives a language code from the POSIX locale variables
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			if code, _, _ := strings.Cut(v, "_"); len(code) >= 2 {
				return strings.ToLower(code[:2])
			}
		}
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts["en"][key]; found {
		return text
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key used as a format string
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YouTube Video Downloader",
		KeyFetch:             "Get Info",
		KeyDownload:          "Download",
		KeyOpenFolder:        "Open Folder",
		KeySettings:          "Settings",
		KeyEnterURL:          "Video or playlist URL",
		KeyFormat:            "Format:",
		KeyQuality:           "Quality:",
		KeyKindVideo:         "Video",
		KeyKindAudio:         "Audio",
		KeyNoQuality:         "No quality options found",
		KeyDownloadDirectory: "Download Directory",
		KeyBrowse:            "Browse",
		KeyReady:             "Ready",
		KeyFetchingInfo:      "Fetching info...",
		KeyInfoReady:         "Video info received. Ready to download.",
		KeyFetchCompleted:    "Info fetch completed.",
		KeyDownloading:       "Downloading: %s - %.1f%%",
		KeyQueued:            "Downloading",
		KeyCompleted:         "Completed",
		KeyFailed:            "Error",
		KeyAllCompleted:      "Download completed",
		KeyError:             "Error: %s",
		KeySpeed:             "Download Speed: %s",
		KeyETA:               "Estimated Time: %s",
		KeyTotalVideos:       "Total videos: %d",
		KeySelectionSummary:  "Selected videos: %d | Selected duration: %s",
		KeyPleaseEnterURL:    "Please enter a URL.",
		KeyInvalidURL:        "Please enter a valid URL.",
		KeyFetchFirst:        "Please fetch a video or playlist first.",
		KeySelectDirectory:   "Please choose a download location.",
		KeySelectAtLeastOne:  "Please select at least one video.",
		KeyLanguage:          "Language",
		KeyMaxWorkers:        "Parallel Tasks",
		KeyAudioCodec:        "Audio Codec",
		KeyAudioQuality:      "Audio Quality (kbps)",
		KeyVideoContainer:    "Video Container",
		KeyFilenameTemplate:  "Filename Template",
		KeyRestrictFilenames: "ASCII-only filenames",
		KeyEngineBackend:     "Extraction Backend",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyRestartRequired:   "Parallel task and backend changes apply after restart.",
		KeyDownloadsRunning:  "Please wait for the running downloads to finish.",
	}

	l.texts["tr"] = map[string]string{
		KeyAppTitle:          "YouTube Video İndirici",
		KeyFetch:             "Bilgi Al",
		KeyDownload:          "İndir",
		KeyOpenFolder:        "Klasörü Aç",
		KeySettings:          "Ayarlar",
		KeyEnterURL:          "Video veya playlist URL'si",
		KeyFormat:            "Format:",
		KeyQuality:           "Kalite:",
		KeyKindVideo:         "Video",
		KeyKindAudio:         "Ses",
		KeyNoQuality:         "Kalite seçeneği bulunamadı",
		KeyDownloadDirectory: "İndirme Konumu",
		KeyBrowse:            "Gözat",
		KeyReady:             "Hazır",
		KeyFetchingInfo:      "Bilgiler alınıyor...",
		KeyInfoReady:         "Video bilgileri alındı. İndirilmeye hazır.",
		KeyFetchCompleted:    "Bilgi alma işlemi tamamlandı.",
		KeyDownloading:       "İndiriliyor: %s - %%%.1f",
		KeyQueued:            "İndiriliyor",
		KeyCompleted:         "Tamamlandı",
		KeyFailed:            "Hata",
		KeyAllCompleted:      "İndirme tamamlandı",
		KeyError:             "Hata: %s",
		KeySpeed:             "İndirme Hızı: %s",
		KeyETA:               "Tahmini Süre: %s",
		KeyTotalVideos:       "Toplam video sayısı: %d",
		KeySelectionSummary:  "Seçili video sayısı: %d | Seçili video süresi: %s",
		KeyPleaseEnterURL:    "Lütfen bir URL girin.",
		KeyInvalidURL:        "Lütfen geçerli bir URL girin.",
		KeyFetchFirst:        "Lütfen önce bir video veya playlist seçin.",
		KeySelectDirectory:   "Lütfen bir indirme konumu seçin.",
		KeySelectAtLeastOne:  "Lütfen en az bir video seçin.",
		KeyLanguage:          "Dil",
		KeyMaxWorkers:        "Paralel Görev",
		KeyAudioCodec:        "Ses Kodeği",
		KeyAudioQuality:      "Ses Kalitesi (kbps)",
		KeyVideoContainer:    "Video Kapsayıcı",
		KeyFilenameTemplate:  "Dosya Adı Şablonu",
		KeyRestrictFilenames: "Yalnızca ASCII dosya adları",
		KeyEngineBackend:     "Çıkarma Motoru",
		KeySave:              "Kaydet",
		KeyCancel:            "İptal",
		KeySettingsSaved:     "Ayarlar kaydedildi!",
		KeyRestartRequired:   "Paralel görev ve motor değişiklikleri yeniden başlatmadan sonra geçerli olur.",
		KeyDownloadsRunning:  "Lütfen devam eden indirmelerin bitmesini bekleyin.",
	}
}
