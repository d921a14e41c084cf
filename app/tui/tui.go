// Package tui renders the task list in the terminal and turns key presses
// into task list actions.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandroc0sta/TaskManagerApp/app/client"
	"github.com/sandroc0sta/TaskManagerApp/app/models"
)

const defaultTimeout = 10 * time.Second

// listItem adapts a task to bubbles/list.Item.
type listItem models.Task

func (i listItem) FilterValue() string { return i.Title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	box, title := mutedStyle.Render(boxUnchecked), it.Title
	if it.IsDone {
		box, title = successStyle.Render(boxChecked), doneStyle.Render(it.Title)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, title)
}

// Messages carrying the outcome of each network action.
type (
	loadedMsg  struct{ err error }
	addedMsg   struct{ err error }
	toggledMsg struct{ err error }
	deletedMsg struct{ err error }
)

type keyMap struct {
	add, toggle, remove, reload, quit key.Binding
}

var keys = keyMap{
	add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the bubbletea model for the task client.
type Model struct {
	tasks   *client.TaskList
	timeout time.Duration

	list   list.Model
	input  textinput.Model
	adding bool
	err    error
}

// New builds a Model around tasks. Nothing is fetched until Init runs.
func New(tasks *client.TaskList) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.Title = "Tasks"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetStatusBarItemName("task", "tasks")
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown")
	extra := func() []key.Binding {
		return []key.Binding{keys.add, keys.toggle, keys.remove, keys.reload}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task title..."
	ti.CharLimit = 200

	return Model{
		tasks:   tasks,
		timeout: defaultTimeout,
		list:    l,
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd { return m.load() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-2, msg.Height-6)
		return m, nil

	case loadedMsg:
		return m.settle(msg.err), nil
	case addedMsg:
		return m.settle(msg.err), nil
	case toggledMsg:
		return m.settle(msg.err), nil
	case deletedMsg:
		return m.settle(msg.err), nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.add):
			m.adding = true
			m.input.Reset()
			return m, m.input.Focus()
		case key.Matches(msg, keys.toggle):
			if it, ok := m.list.SelectedItem().(listItem); ok {
				return m, m.toggle(it.ID)
			}
			return m, nil
		case key.Matches(msg, keys.remove):
			if it, ok := m.list.SelectedItem().(listItem); ok {
				return m, m.remove(it.ID)
			}
			return m, nil
		case key.Matches(msg, keys.reload):
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		title := m.input.Value()
		m.input.Reset()
		m.input.Blur()
		m.adding = false
		return m, m.add(title)
	case tea.KeyEsc:
		m.input.Reset()
		m.input.Blur()
		m.adding = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		content += "\n" + inputBoxStyle.Render("Add task\n"+m.input.View())
	}
	return content + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	if m.err != nil {
		return errorStyle.Render("✖ " + m.err.Error())
	}

	tasks := m.tasks.Tasks()
	done := 0
	for _, t := range tasks {
		if t.IsDone {
			done++
		}
	}
	return fmt.Sprintf("%s %d  %s %d  %s",
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(tasks)-done,
		mutedStyle.Render(progressBar(done, len(tasks), 20)),
	)
}

// Err returns the error of the most recent action, if any.
func (m Model) Err() error { return m.err }

// settle records the outcome of an action and redraws the list.
func (m Model) settle(err error) Model {
	m.err = err
	return m.refresh()
}

func (m Model) refresh() Model {
	tasks := m.tasks.Tasks()
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = listItem(t)
	}
	m.list.SetItems(items)
	return m
}

func (m Model) load() tea.Cmd {
	tasks, timeout := m.tasks, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loadedMsg{err: tasks.Load(ctx)}
	}
}

func (m Model) add(title string) tea.Cmd {
	tasks, timeout := m.tasks, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := tasks.Add(ctx, title)
		return addedMsg{err: err}
	}
}

func (m Model) toggle(id int64) tea.Cmd {
	tasks, timeout := m.tasks, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return toggledMsg{err: tasks.Toggle(ctx, id)}
	}
}

func (m Model) remove(id int64) tea.Cmd {
	tasks, timeout := m.tasks, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return deletedMsg{err: tasks.Delete(ctx, id)}
	}
}
