package platform

import (
	"fmt"
	"net/url"
	"strings"
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// IsPlaylistURL checks if the locator carries a playlist parameter
func IsPlaylistURL(locator string) bool {
	return strings.Contains(locator, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from a URL. Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(locator string) (string, error) {
	if !IsPlaylistURL(locator) {
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}

	if u, err := url.Parse(locator); err == nil {
		if id := u.Query().Get("list"); id != "" {
			return id, nil
		}
	}

	// Fallback for inputs url.Parse rejects
	parts := strings.SplitN(locator, PlaylistParam, 2)
	id := parts[1]
	if idx := strings.Index(id, ParamSeparator); idx >= 0 {
		id = id[:idx]
	}
	if id == "" {
		return "", fmt.Errorf("empty playlist ID")
	}
	return id, nil
}

// VideoURL builds a watch URL from a video ID
func VideoURL(videoID string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, videoID)
}

// ValidateLocator rejects input that cannot be a URL
func ValidateLocator(locator string) error {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return fmt.Errorf("empty URL")
	}
	u, err := url.Parse(locator)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", locator, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", locator)
	}
	return nil
}
