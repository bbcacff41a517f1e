package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// TaskRow renders one listed item: selection, title, duration, download state
type TaskRow struct {
	widget.BaseWidget

	localization *Localization

	check         *widget.Check
	titleLabel    *widget.Label
	durationLabel *widget.Label
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar

	onToggled func(bool)
}

// NewTaskRow creates an empty row
func NewTaskRow(localization *Localization) *TaskRow {
	tr := &TaskRow{localization: localization}
	tr.createUI()
	tr.ExtendBaseWidget(tr)
	return tr
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.check = widget.NewCheck("", func(checked bool) {
		if tr.onToggled != nil {
			tr.onToggled(checked)
		}
	})

	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.durationLabel = widget.NewLabel(DashPlaceholder)
	tr.durationLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing

	tr.progressBar = widget.NewProgressBar()
	tr.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, int(tr.progressBar.Value*100))
	}
}

// CreateRenderer implements fyne.Widget
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	right := container.NewHBox(
		fixedWidth(tr.durationLabel, DurationWidth),
		fixedWidth(tr.progressBar, ProgressWidth),
		fixedWidth(tr.statusLabel, StatusLabelWidth),
	)
	row := container.NewBorder(nil, nil, tr.check, right, tr.titleLabel)
	return widget.NewSimpleRenderer(row)
}

// Update binds the row to view. The toggle callback is detached while the
// check is updated so recycled rows do not report stale changes.
func (tr *TaskRow) Update(view RowView, onToggled func(bool)) {
	tr.onToggled = nil
	tr.check.SetChecked(view.Selected)
	tr.onToggled = onToggled

	tr.titleLabel.SetText(view.Item.Title)
	tr.durationLabel.SetText(view.Item.DurationDisplay)
	tr.statusLabel.Importance = rowImportance(view.State)
	tr.statusLabel.SetText(tr.statusText(view))
	tr.progressBar.SetValue(view.Percent / 100)

	if view.State.IsActive() {
		tr.check.Disable()
	} else {
		tr.check.Enable()
	}
}

func (tr *TaskRow) statusText(view RowView) string {
	switch view.State {
	case RowQueued, RowDownloading:
		return tr.localization.GetText(KeyQueued)
	case RowCompleted:
		return IconDone + " " + tr.localization.GetText(KeyCompleted)
	case RowFailed:
		return IconError + " " + tr.localization.GetText(KeyFailed)
	default:
		return tr.localization.GetText(KeyReady)
	}
}

// fixedWidth keeps obj at least width wide
func fixedWidth(obj fyne.CanvasObject, width float32) fyne.CanvasObject {
	return container.New(layout.NewGridWrapLayout(fyne.NewSize(width, RowMinHeight)), obj)
}
