package download

import (
	"time"

	"github.com/ytget/yt-fetcher/internal/model"
)

// Tracker derives transfer statistics for one download attempt. Speed is the
// average over the whole transfer so far.
type Tracker struct {
	start time.Time
	now   func() time.Time
}

// NewTracker starts tracking now
func NewTracker() *Tracker {
	return newTracker(time.Now)
}

func newTracker(now func() time.Time) *Tracker {
	return &Tracker{start: now(), now: now}
}

// Update returns statistics for downloaded of total bytes. total <= 0 means
// the size is unknown.
func (t *Tracker) Update(filename string, downloaded, total int64) model.TransferStats {
	stats := model.TransferStats{
		Filename:   filename,
		Downloaded: downloaded,
		Total:      total,
	}

	if total > 0 {
		stats.Percent = float64(downloaded) / float64(total) * 100
	}

	elapsed := t.now().Sub(t.start).Seconds()
	if elapsed > 0 {
		stats.BytesPerSecond = float64(downloaded) / elapsed
	}

	if stats.BytesPerSecond > 0 && total > downloaded {
		remaining := float64(total-downloaded) / stats.BytesPerSecond
		stats.ETA = time.Duration(remaining * float64(time.Second))
	}

	return stats
}
