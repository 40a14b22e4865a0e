package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/stepx/internal/models"
)

var styles = NewPalette("#184C78", "#04B575", "#FF0000", "#FFA500", "#626262")

// tierStyles colors the difficulty badge per tier.
var tierStyles = map[models.Tier]lipgloss.Style{
	models.TierAbsolute:     NewStyle("#2ECC71"),
	models.TierBeginner:     NewStyle("#27AE60"),
	models.TierImprover:     NewStyle("#F1C40F"),
	models.TierIntermediate: NewStyle("#E67E22"),
	models.TierAdvanced:     NewStyle("#E74C3C"),
	models.TierUnknown:      NewStyle("#95A5A6"),
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// tierBadge renders the dance's difficulty level in its tier color.
func tierBadge(d models.Dance) string {
	style, ok := tierStyles[d.Tier()]
	if !ok {
		style = tierStyles[models.TierUnknown]
	}
	return style.Render(d.DifficultyLevel)
}
