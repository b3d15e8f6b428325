package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and borders.
// All UI helpers pull from the current theme.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected                                lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOK, SymFail           string

	Border lipgloss.Border
}

var current = classic()

// Themes lists the names SetTheme understands.
func Themes() []string { return []string{"classic", "neon", "mono"} }

// SetTheme switches the current theme; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

// Current returns the active theme.
func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		SymDone:      "✔",
		SymPending:   "•",
		SymOK:        "✔",
		SymFail:      "✖",
		Border:       lipgloss.RoundedBorder(),
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	t.Border = lipgloss.ThickBorder()
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:         "mono",
		Title:        plain,
		Muted:        plain,
		Accent:       plain,
		Success:      plain,
		Error:        plain,
		Pending:      plain,
		Done:         plain,
		Selected:     plain,
		BoxUnchecked: "[ ]",
		BoxChecked:   "[x]",
		SymDone:      "x",
		SymPending:   "-",
		SymOK:        "ok:",
		SymFail:      "error:",
		Border: lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
			Middle: "+", MiddleLeft: "+", MiddleRight: "+", MiddleTop: "+", MiddleBottom: "+",
		},
	}
}
