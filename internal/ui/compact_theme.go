package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// compactSizes shrink the default theme so long playlists fit on screen
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         3,
	theme.SizeNameInnerPadding:    6,
	theme.SizeNameLineSpacing:     2,
	theme.SizeNameScrollBar:       12,
	theme.SizeNameText:            13,
	theme.SizeNameHeadingText:     16,
	theme.SizeNameSubHeadingText:  13,
	theme.SizeNameCaptionText:     10,
	theme.SizeNameInputRadius:     3,
	theme.SizeNameSelectionRadius: 2,
}

// stateColors tint row states; both variants share them
var stateColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameSuccess: color.NRGBA{R: 46, G: 160, B: 67, A: 255},
	theme.ColorNameError:   color.NRGBA{R: 198, G: 40, B: 40, A: 255},
	theme.ColorNameWarning: color.NRGBA{R: 245, G: 166, B: 35, A: 255},
	theme.ColorNamePrimary: color.NRGBA{R: 204, G: 0, B: 0, A: 255},
}

// CompactTheme is the default theme with tighter spacing and a red accent
type CompactTheme struct {
	fyne.Theme
}

// NewCompactTheme creates the application theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{Theme: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := stateColors[name]; ok {
		return c
	}
	return t.Theme.Color(name, variant)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := compactSizes[name]; ok {
		return s
	}
	return t.Theme.Size(name)
}

// rowImportance maps a row state onto label importance for coloring
func rowImportance(state RowState) widget.Importance {
	switch state {
	case RowCompleted:
		return widget.SuccessImportance
	case RowFailed:
		return widget.DangerImportance
	case RowQueued, RowDownloading:
		return widget.WarningImportance
	default:
		return widget.MediumImportance
	}
}
