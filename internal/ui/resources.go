package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppIconFile is looked up next to the working directory at startup
const AppIconFile = "yt-fetcher.png"

// LoadAppIcon loads the window icon from path, falling back to the
// theme's download icon when the file is missing or unreadable.
func LoadAppIcon(path string) fyne.Resource {
	if path == "" {
		path = AppIconFile
	}
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil || len(res.Content()) == 0 {
		return theme.DownloadIcon()
	}
	return res
}
