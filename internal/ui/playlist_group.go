package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PlaylistGroup lists the probed items with their selection and download state
type PlaylistGroup struct {
	localization *Localization

	rows []RowView

	titleLabel *widget.Label
	list       *widget.List
	container  *fyne.Container

	onToggle func(index int, selected bool)
}

// NewPlaylistGroup creates the item list
func NewPlaylistGroup(localization *Localization, onToggle func(index int, selected bool)) *PlaylistGroup {
	pg := &PlaylistGroup{
		localization: localization,
		onToggle:     onToggle,
	}
	pg.createUI()
	return pg
}

// createUI creates the user interface for the playlist group
func (pg *PlaylistGroup) createUI() {
	pg.titleLabel = widget.NewLabel("")
	pg.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	pg.titleLabel.Hide()

	pg.list = widget.NewList(
		func() int {
			return len(pg.rows)
		},
		func() fyne.CanvasObject {
			return NewTaskRow(pg.localization)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			pg.updateRow(id, obj)
		},
	)

	pg.container = container.NewBorder(pg.titleLabel, nil, nil, nil, pg.list)
}

func (pg *PlaylistGroup) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	row, ok := obj.(*TaskRow)
	if !ok || id < 0 || id >= len(pg.rows) {
		return
	}
	index := id
	row.Update(pg.rows[id], func(selected bool) {
		if pg.onToggle != nil {
			pg.onToggle(index, selected)
		}
	})
}

// Container returns the root canvas object
func (pg *PlaylistGroup) Container() *fyne.Container {
	return pg.container
}

// SetRows replaces the displayed rows; call on the UI goroutine
func (pg *PlaylistGroup) SetRows(title string, rows []RowView) {
	pg.rows = rows
	if title != "" {
		pg.titleLabel.SetText(title)
		pg.titleLabel.Show()
	} else {
		pg.titleLabel.Hide()
	}
	pg.list.Refresh()
}
