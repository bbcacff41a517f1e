package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconMusic    = "🎵"
	IconVideo    = "🎬"
	IconError    = "❌"
	IconDone     = "✔"
)

// Text fragments
const (
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	WindowWidth  float32 = 900
	WindowHeight float32 = 640

	RowMinHeight     float32 = 44
	DurationWidth    float32 = 72
	StatusLabelWidth float32 = 110
	ProgressWidth    float32 = 120

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 480
)

// Redraw throttling for transfer progress
const (
	RedrawInterval = 100 * time.Millisecond
)
