package model

import (
	"fmt"
	"time"
)

// EventKind discriminates the Event union
type EventKind int

const (
	EventProgress EventKind = iota
	EventError
	EventFinished
)

// String returns a short name for logs
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventError:
		return "error"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ProgressEvent reports task advancement. At most one payload is set.
type ProgressEvent struct {
	Message string
	Current int64
	Total   int64

	Item     *MediaItemInfo
	Batch    *PlaylistBatch
	Transfer *TransferStats
}

// HasPayload reports whether any payload is attached
func (p ProgressEvent) HasPayload() bool {
	return p.Item != nil || p.Batch != nil || p.Transfer != nil
}

// Percent returns Current/Total as 0..100, or 0 when Total is unknown
func (p ProgressEvent) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(p.Current * 100 / p.Total)
}

// Event is what a task emits: Progress, Error or Finished
type Event struct {
	TaskID   string
	ItemID   string // set by download tasks to correlate with the probed item
	Kind     EventKind
	Progress ProgressEvent // valid for EventProgress
	Message  string        // valid for EventError
}

// String implements fmt.Stringer for logging
func (e Event) String() string {
	switch e.Kind {
	case EventProgress:
		return fmt.Sprintf("%s progress %d/%d %q", e.TaskID, e.Progress.Current, e.Progress.Total, e.Progress.Message)
	case EventError:
		return fmt.Sprintf("%s error %q", e.TaskID, e.Message)
	default:
		return fmt.Sprintf("%s %s", e.TaskID, e.Kind)
	}
}

// TransferStats is the human-unit view of a download sample
type TransferStats struct {
	Filename       string
	Downloaded     int64
	Total          int64
	Percent        float64 // 0 to 100
	BytesPerSecond float64
	ETA            time.Duration // zero when unknown
}

// SpeedString returns speed formatted like "1.5 MB/s"
func (ts *TransferStats) SpeedString() string {
	return FormatBytes(ts.BytesPerSecond) + "/s"
}

// ETAString returns ETA formatted as mm:ss or hh:mm:ss, or "—" if unknown
func (ts *TransferStats) ETAString() string {
	return FormatETA(int(ts.ETA.Seconds()))
}
