// Package ui contains the Fyne-based desktop user interface. Task events are
// folded into view state by Presenter on worker goroutines; widgets are only
// touched inside fyne.Do. All UI strings are localized via Localization.
package ui
