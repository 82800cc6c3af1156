package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/streamgrid/internal/view"
)

// columns returns how many cells fit across width.
func columns(width int) int {
	if width <= 0 {
		return 4
	}
	return max(1, width/boxWidth)
}

// renderCell draws one grid cell. Fillers are blank cells of the same width.
func renderCell(it view.DisplayItem, selected, expanded bool) string {
	if it.Kind == view.KindFiller {
		return lipgloss.NewStyle().Width(boxWidth).Render("")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(it.Kind == view.KindLive).Render(it.Label))

	if expanded {
		for _, d := range it.Details {
			b.WriteString("\n")
			b.WriteString(d.Heading + ": " + d.Value)
		}
	}

	return BoxStyle(it.Colors, selected).Render(b.String())
}

// renderGrid lays items out in rows of [columns] cells, highlighting the selected channel.
func renderGrid(items []view.DisplayItem, selected string, expanded map[string]bool, width int) string {
	cols := columns(width)

	var rows []string
	for i := 0; i < len(items); i += cols {
		end := min(i+cols, len(items))

		cells := make([]string, 0, end-i)
		for _, it := range items[i:end] {
			isSelected := it.IsReal() && it.Name == selected
			cells = append(cells, renderCell(it, isSelected, it.Toggleable && expanded[it.Name]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
