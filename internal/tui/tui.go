// Package tui is the full-screen task list: a bubbles list over the store,
// with inline add.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasktools/internal/model"
	"github.com/idilsaglam/tasktools/internal/store/taskfile"
	"github.com/idilsaglam/tasktools/internal/ui"
)

// listItem adapts a task to bubbles/list.Item, keeping its store index.
type listItem struct {
	index int
	task  model.Task
}

func (i listItem) FilterValue() string { return i.task.Description }

// itemDelegate renders each task on a single line.
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := d.theme.Muted.Render(d.theme.BoxUnchecked)
	text := it.task.Description
	if it.task.Completed {
		box = d.theme.Success.Render(d.theme.BoxChecked)
		text = d.theme.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%d %s %s", prefix, it.index, box, text)
}

var (
	completeBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "complete"))
	removeBind   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	addBind      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	quitBind     = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "save & quit"))
)

type modelTUI struct {
	store   *taskfile.Store
	theme   ui.Theme
	list    list.Model
	changed bool

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	width, height int
}

func newModel(store *taskfile.Store, theme ui.Theme) modelTUI {
	l := list.New(nil, itemDelegate{theme: theme}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.Title
	l.Styles.HelpStyle = theme.Muted
	l.Styles.PaginationStyle = theme.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	extra := func() []key.Binding { return []key.Binding{completeBind, removeBind, addBind, quitBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task description..."
	ti.CharLimit = 200

	m := modelTUI{store: store, theme: theme, list: l, ti: ti, width: 80, height: 24}
	m.refresh(0)
	return m
}

// refresh rebuilds the list from the store and selects sel.
func (m *modelTUI) refresh(sel int) {
	tasks := m.store.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for i, t := range tasks {
		items = append(items, listItem{index: i, task: t})
	}
	m.list.SetItems(items)
	if sel >= len(items) {
		sel = len(items) - 1
	}
	if sel >= 0 {
		m.list.Select(sel)
	}
	m.list.Title = m.theme.Summary(m.store.Stats())
}

func (m modelTUI) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, quitBind) && !(km.Type == tea.KeyEsc && m.list.FilterState() == list.FilterApplied):
		return m, tea.Quit
	case key.Matches(km, completeBind):
		if it, ok := m.selected(); ok && !it.task.Completed {
			if err := m.store.Complete(uint64(it.index)); err == nil {
				m.changed = true
				m.refresh(m.list.Index())
			}
		}
		return m, nil
	case key.Matches(km, removeBind):
		if it, ok := m.selected(); ok {
			if err := m.store.Remove(uint64(it.index)); err == nil {
				m.changed = true
				m.refresh(m.list.Index())
			}
		}
		return m, nil
	case key.Matches(km, addBind):
		m.adding = true
		m.addErr = ""
		m.ti.SetValue("")
		m.resize()
		cmd := m.ti.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			desc := strings.TrimSpace(m.ti.Value())
			if desc == "" {
				m.addErr = "Description cannot be empty"
				return m, nil
			}
			m.store.Add(desc)
			m.changed = true
			m.stopAdding()
			m.refresh(m.store.Len() - 1)
			return m, nil
		case tea.KeyEsc:
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *modelTUI) stopAdding() {
	m.adding = false
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *modelTUI) resize() {
	h := m.height - 4
	if m.adding {
		h -= 3
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m modelTUI) View() string {
	content := m.list.View()
	if m.adding {
		title := "Add task"
		if m.addErr != "" {
			title += ": " + m.theme.Error.Render(m.addErr)
		}
		bar := m.theme.Frame.Render(title + "\n" + m.ti.View())
		content = lipgloss.JoinVertical(lipgloss.Left, content, bar)
	}
	return m.theme.Panel([]string{content})
}

// Run starts the list view and saves the store on quit if anything changed.
func Run(store *taskfile.Store, theme ui.Theme, opts ...tea.ProgramOption) error {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	p := tea.NewProgram(newModel(store, theme), opts...)
	final, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := final.(modelTUI)
	if !ok || !fm.changed {
		return nil
	}
	return store.Save()
}
