// Package tui is the interactive Bubble Tea front end over app.App.
// Every key action calls the App directly, so each change is saved at once.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

// listItem adapts an app.Row to bubbles/list.Item.
type listItem struct {
	row app.Row
}

func (i listItem) Done() bool          { return i.row.Status == model.StatusCompleted }
func (i listItem) Title() string       { return i.row.Title }
func (i listItem) Description() string { return i.row.Description }
func (i listItem) FilterValue() string { return i.row.Title }

// itemDelegate renders each task on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	title := ui.Truncate(it.Title(), 48)
	if it.Done() {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}
	meta := t.Muted.Render(fmt.Sprintf("%s · %s · %s", it.row.DueDate, it.row.Category, it.row.Priority))

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, box, title, meta)
}

type keyMap struct {
	Add, Complete, Delete, Quit key.Binding
}

var keys = keyMap{
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Complete: key.NewBinding(key.WithKeys("c", " "), key.WithHelp("c/space", "complete")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model for the task list.
type Model struct {
	app  *app.App
	list list.Model

	adding bool
	form   form

	status    string
	statusErr bool

	width, height int
}

// New builds the model around a, which should already be loaded.
func New(a *app.App) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Delete, keys.Quit}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	m := Model{
		app:    a,
		list:   l,
		form:   newForm(),
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(a *app.App) error {
	_, err := tea.NewProgram(New(a), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Add):
			m.adding = true
			m.form.reset()
			m.resize()
			return m, m.form.focusCurrent()
		case key.Matches(msg, keys.Complete):
			m.report(m.app.MarkTaskAsCompleted(m.list.Index()), "marked completed")
			m.refresh()
			return m, nil
		case key.Matches(msg, keys.Delete):
			m.report(m.app.DeleteTask(m.list.Index()), "deleted")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.adding = false
			m.resize()
			return m, nil
		case "enter":
			title, description, due, category, priority := m.form.values()
			if err := m.app.AddTask(title, description, due, category, priority); err != nil {
				m.form.err = err.Error()
				return m, nil
			}
			m.adding = false
			m.report(nil, "added")
			m.refresh()
			m.list.Select(len(m.list.Items()) - 1)
			m.resize()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// report sets the status line from a mutation result and the save state.
func (m *Model) report(err error, okMsg string) {
	switch {
	case err != nil:
		m.status, m.statusErr = err.Error(), true
	case !m.app.Synced() && m.app.SaveErr() != nil:
		m.status, m.statusErr = okMsg+", but not saved: "+m.app.SaveErr().Error(), true
	default:
		m.status, m.statusErr = okMsg, false
	}
}

func (m *Model) refresh() {
	rows := m.app.GetAllTasks()
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, listItem{row: r})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m *Model) resize() {
	chrome := 5
	if m.adding {
		chrome += formHeight
	}
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) header() string {
	t := ui.Current()
	done, pending := m.app.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}

func (m Model) View() string {
	t := ui.Current()
	parts := []string{m.header(), ""}
	if len(m.list.Items()) == 0 {
		parts = append(parts, t.Muted.Render("no tasks yet, press a to add one"))
	}
	parts = append(parts, m.list.View())
	if m.adding {
		parts = append(parts, m.form.view())
	}
	if m.status != "" {
		style := t.Success
		if m.statusErr {
			style = t.Error
		}
		parts = append(parts, style.Render(m.status))
	}
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(strings.Join(parts, "\n"))
}
