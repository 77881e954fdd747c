// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasks-go/internal/task"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	onlyIncomplete bool
	output         io.Writer
}

// WithIncompleteOnly starts the TUI showing only tasks not yet completed.
func WithIncompleteOnly(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.onlyIncomplete = enabled
	}
}

// WithOutput sets the terminal the TUI renders to. Defaults to os.Stdout.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// RunTUI starts the interactive task list over store.
// All store calls happen on the bubbletea update loop.
func RunTUI(ctx context.Context, store *task.Store, opts ...TUIOption) error {
	c := &tuiConfig{output: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.output) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store)
	model.onlyIncomplete = c.onlyIncomplete
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(c.output))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type tuiModel struct {
	store          *task.Store
	cursor         int // position in the visible entries
	onlyIncomplete bool
	showHelp       bool
	adding         bool
	input          []rune
	message        string
}

func newTUIModel(store *task.Store) *tuiModel {
	return &tuiModel{store: store}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.adding {
		return m.updateInput(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "c", "enter", " ":
		m.completeSelected()
	case "d", "x":
		m.removeSelected()
	case "a":
		m.adding = true
		m.input = m.input[:0]
		m.message = ""
	case "i":
		m.onlyIncomplete = !m.onlyIncomplete
		m.message = ""
		m.clampCursor()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// updateInput handles keys while a new task description is being typed.
func (m *tuiModel) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.adding = false
		m.input = m.input[:0]
	case tea.KeyEnter:
		m.adding = false
		t, err := m.store.Add(string(m.input))
		m.input = m.input[:0]
		if err != nil {
			m.message = rejection(err)
			return m, nil
		}
		m.message = "Task added: " + t.String()
		m.saveStatus()
		if entries := m.visible(); len(entries) > 0 {
			m.cursor = len(entries) - 1
		}
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

func (m *tuiModel) visible() []task.Entry {
	if m.onlyIncomplete {
		return m.store.ListIncomplete()
	}
	return m.store.List()
}

func (m *tuiModel) selected() (task.Entry, bool) {
	entries := m.visible()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return task.Entry{}, false
	}
	return entries[m.cursor], true
}

func (m *tuiModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) completeSelected() {
	entry, ok := m.selected()
	if !ok {
		m.message = "No tasks found."
		return
	}
	t, err := m.store.Complete(entry.Index)
	if err != nil {
		m.message = rejection(err)
		return
	}
	m.message = fmt.Sprintf("Task %d marked as completed: %s", entry.Index, t)
	m.saveStatus()
	m.clampCursor()
}

func (m *tuiModel) removeSelected() {
	entry, ok := m.selected()
	if !ok {
		m.message = "No tasks found."
		return
	}
	t, err := m.store.Remove(entry.Index)
	if err != nil {
		m.message = rejection(err)
		return
	}
	m.message = "Task removed: " + t.String()
	m.saveStatus()
	m.clampCursor()
}

// saveStatus replaces the message when the last save failed.
func (m *tuiModel) saveStatus() {
	if err := m.store.LastSaveErr(); err != nil {
		m.message = "Error saving tasks: " + err.Error()
	}
}

func rejection(err error) string {
	var ve *task.ValidationError
	if errors.As(err, &ve) {
		return "Error: " + ve.Err.Error()
	}
	return "Error: " + err.Error()
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.store.Path())
		return b.String()
	}

	if m.onlyIncomplete {
		b.WriteString("Filter: in progress (i to show all)\n\n")
	}

	writeTasks(&b, m.visible(), m.cursor, m.store.Len())

	if m.adding {
		b.WriteString("New task: " + string(m.input) + "_\n\n")
	} else if m.message != "" {
		b.WriteString(messageStyle.Render(m.message) + "\n\n")
	}

	writeFooter(&b, m.store.Path())
	return b.String()
}

func writeTitle(b *strings.Builder) {
	title := "Tasks"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeTasks(b *strings.Builder, entries []task.Entry, cursor, total int) {
	if total == 0 {
		b.WriteString("  No tasks found. Press a to add one.\n\n")
		return
	}
	if len(entries) == 0 {
		b.WriteString("  All tasks completed.\n\n")
		return
	}
	for i, e := range entries {
		line := fmt.Sprintf("  %d. %s", e.Index, e.Task)
		switch {
		case i == cursor:
			line = selectedStyle.Render(fmt.Sprintf("> %d. %s", e.Index, e.Task))
		case e.Task.Completed:
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  a            Add a task (enter to save, esc to cancel)\n")
	b.WriteString("  c, enter     Mark selected task completed\n")
	b.WriteString("  d, x         Remove selected task\n")
	b.WriteString("  i            Toggle in-progress filter\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder, path string) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | %s\n", path))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
