package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/streamgrid/internal/view"
)

var styles = NewStylesheet("#9146FF", "#04B575", "#FF5F56", "#FFA500", "#626262")

// boxWidth is the outer width of one grid cell, borders included.
const boxWidth = 26

// Stylesheet is a simple set of named [lipgloss.Style] fields for the chrome around the grid.
type Stylesheet struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewStylesheet(t, s, e, w, h string) *Stylesheet {
	return &Stylesheet{
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

// BoxStyle returns the style of a grid cell painted with c. The selected cell
// gets a thick border in the foreground color.
func BoxStyle(c view.ColorPair, selected bool) lipgloss.Style {
	border := lipgloss.RoundedBorder()
	borderColor := lipgloss.Color(c.Background)
	if selected {
		border = lipgloss.ThickBorder()
		borderColor = lipgloss.Color(c.Foreground)
	}

	style := lipgloss.NewStyle().
		Width(boxWidth-2).
		Padding(0, 1).
		Border(border).
		BorderForeground(borderColor)

	if c.Foreground != "" {
		style = style.Foreground(lipgloss.Color(c.Foreground))
	}
	if c.Background != "" {
		style = style.Background(lipgloss.Color(c.Background))
	}
	return style
}
