package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldCategory
	fieldPriority
	fieldCount
)

// Lines taken by the form box, border included.
const formHeight = fieldCount + 4

var fieldLabels = [fieldCount]string{"Title", "Description", "Due date", "Category", "Priority"}

// today is swapped out in tests.
var today = func() string { return time.Now().Format("2006-01-02") }

// form collects a new task. Text fields use textinput; category and
// priority cycle through their fixed choices with left/right.
type form struct {
	inputs   [fieldDue + 1]textinput.Model
	category int
	priority int
	focus    int
	err      string
}

func newForm() form {
	var f form
	placeholders := [...]string{"What needs doing?", "optional", "YYYY-MM-DD"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Placeholder = placeholders[i]
		f.inputs[i] = ti
	}
	f.reset()
	return f
}

// reset clears the form; the due date starts at today.
func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[fieldDue].SetValue(today())
	f.category = 0
	f.priority = 1
	f.focus = fieldTitle
	f.err = ""
}

func (f *form) focusCurrent() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	if f.focus < len(f.inputs) {
		return f.inputs[f.focus].Focus()
	}
	return nil
}

func (f *form) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.focusCurrent()
}

func (f form) values() (title, description, due string, category model.Category, priority string) {
	return f.inputs[fieldTitle].Value(),
		f.inputs[fieldDescription].Value(),
		f.inputs[fieldDue].Value(),
		model.Categories()[f.category],
		string(model.Priorities()[f.priority])
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		case "left", "right":
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			switch f.focus {
			case fieldCategory:
				n := len(model.Categories())
				f.category = (f.category + step + n) % n
				return f, nil
			case fieldPriority:
				n := len(model.Priorities())
				f.priority = (f.priority + step + n) % n
				return f, nil
			}
		}
	}
	if f.focus >= len(f.inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) view() string {
	t := ui.Current()
	lines := []string{t.Title.Render("Add new task")}
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i] + ":"
		var value string
		switch i {
		case fieldCategory:
			value = "‹ " + model.Categories()[f.category].String() + " ›"
		case fieldPriority:
			value = "‹ " + string(model.Priorities()[f.priority]) + " ›"
		default:
			value = f.inputs[i].View()
		}
		marker := "  "
		if i == f.focus {
			marker = t.Accent.Render(">") + " "
		}
		lines = append(lines, marker+padRight(label, 13)+value)
	}
	if f.err != "" {
		lines = append(lines, t.Error.Render(f.err))
	} else {
		lines = append(lines, t.Muted.Render("tab move · ←/→ choose · enter save · esc cancel"))
	}
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
