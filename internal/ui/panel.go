package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines in the current theme's border.
func Panel(lines []string) string {
	return lipgloss.NewStyle().
		Border(Current().Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Table renders rows under headers. Rows for which dim returns true are drawn
// in the Done style.
func Table(headers []string, rows [][]string, dim func(row int) bool) string {
	t := Current()
	return table.New().
		Border(t.Border).
		BorderStyle(t.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(t.Title)
			case dim != nil && row >= 0 && row < len(rows) && dim(row):
				return base.Inherit(t.Done)
			default:
				return base
			}
		}).
		String()
}

// Truncate shortens s to at most n runes, ending in "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
