package download

import (
	"github.com/ytget/yt-fetcher/internal/dispatch"
	"github.com/ytget/yt-fetcher/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	// DownloadItem downloads a single locator with an explicit format selector
	DownloadItem(locator, selector, outputDir string, subs ...dispatch.Subscriber) (*dispatch.Handle, error)

	// DownloadSelected starts one task per selected item
	DownloadSelected(items []*model.MediaItemInfo, choice Choice, outputDir string, subs ...dispatch.Subscriber) ([]*dispatch.Handle, error)

	// SetPreferences configures post-processing and naming for new tasks
	SetPreferences(prefs Preferences)
}

var _ Downloader = (*Service)(nil)
