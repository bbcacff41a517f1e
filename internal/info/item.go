package info

import (
	"errors"
	"fmt"

	"github.com/ytget/yt-fetcher/internal/engine"
	"github.com/ytget/yt-fetcher/internal/model"
)

// ErrNoMetadata is returned when the engine produced no result
var ErrNoMetadata = errors.New("video info could not be retrieved")

// BuildItem normalizes one engine record. Missing fields get defaults; a
// record without any URL cannot be downloaded and is rejected.
func BuildItem(raw *engine.RawInfo, fallbackLocator string) (*model.MediaItemInfo, error) {
	if raw == nil {
		return nil, ErrNoMetadata
	}

	source := firstNonEmpty(engine.StringValue(raw.WebpageURL), engine.StringValue(raw.URL), fallbackLocator)
	if source == "" {
		return nil, fmt.Errorf("entry %q has no URL", raw.ID)
	}

	seconds := int(engine.FloatValue(raw.Duration))
	item := model.NewMediaItemInfo(engine.StringValue(raw.Title), source, seconds)
	if seconds <= 0 {
		if ds := engine.StringValue(raw.DurationString); ds != "" {
			item.DurationDisplay = ds
			item.DurationSeconds = model.ParseDuration(ds)
		}
	}

	item.VideoFormats, item.AudioFormats = NormalizeFormats(raw.Formats)
	return item, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
