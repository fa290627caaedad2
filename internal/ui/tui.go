// Package ui provides the interactive terminal menu.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/nebula/internal/logging"
	"github.com/nibzard/nebula/internal/output"
	"github.com/nibzard/nebula/internal/snapshot"
	"github.com/nibzard/nebula/internal/todo"
)

// Options configures the menu session.
type Options struct {
	// Path is the task file written by the Save entry.
	Path string

	// ConfirmRemove asks before a task is removed.
	ConfirmRemove bool

	// Color enables colored status labels.
	Color bool

	// Message is shown in the status line when the session starts.
	Message string

	// Logger receives store and save events. Nil discards them.
	Logger *log.Logger
}

// Run starts the menu on the terminal and blocks until the user quits.
// The store is mutated in place; nothing is written unless the user saves.
func Run(ctx context.Context, store *todo.Store, opts Options) error {
	m := newModel(store, opts)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeMenu mode = iota
	modeList
	modeAddTitle
	modeAddDescription
	modeAddStatus
	modePickRemove
	modeConfirmRemove
	modePickUpdate
	modeUpdateStatus
	modeConfirmQuit
)

type menuItem struct {
	key   string
	title string
	sub   string
	right string
}

var menuItems = []menuItem{
	{"1", "Add task", "Create a new task (auto-ID)", "default"},
	{"2", "List tasks", "Table with colored status", "view"},
	{"3", "Remove task", "Delete by ID", "danger"},
	{"4", "Save (JSON)", "Write the task file (pretty JSON)", "persist"},
	{"5", "Update status", "Change Todo/InProgress/Done by ID", "edit"},
	{"6", "Exit", "Close program", "quit"},
}

type model struct {
	store *todo.Store
	opts  Options
	log   *log.Logger

	mode    mode
	input   []rune
	cursor  int
	message string
	dirty   bool

	draftTitle       string
	draftDescription string
	pickID           int
	quitting         bool
}

func newModel(store *todo.Store, opts Options) *model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &model{
		store:   store,
		opts:    opts,
		log:     logger,
		message: opts.Message,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeMenu:
		return m.updateMenu(key)
	case modeList:
		m.mode = modeMenu
	case modeAddTitle:
		m.updateAddTitle(key)
	case modeAddDescription:
		m.updateAddDescription(key)
	case modeAddStatus:
		m.updateAddStatus(key)
	case modePickRemove, modePickUpdate:
		m.updatePick(key)
	case modeConfirmRemove:
		m.updateConfirmRemove(key)
	case modeUpdateStatus:
		m.updateStatus(key)
	case modeConfirmQuit:
		switch key.String() {
		case "y", "Y", "enter":
			m.quitting = true
			return m, tea.Quit
		case "n", "N", "esc":
			m.mode = modeMenu
		}
	}
	return m, nil
}

func (m *model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "1":
		m.message = ""
		m.input = nil
		m.mode = modeAddTitle
	case "2":
		m.message = ""
		m.mode = modeList
	case "3":
		m.startPick(modePickRemove)
	case "4":
		m.save()
	case "5":
		m.startPick(modePickUpdate)
	case "6", "esc":
		m.mode = modeConfirmQuit
	}
	return m, nil
}

func (m *model) startPick(next mode) {
	if m.store.Len() == 0 {
		m.message = "No tasks available."
		return
	}
	m.message = ""
	m.cursor = 0
	m.mode = next
}

// editInput applies a key to the text buffer. It returns true when the key
// was consumed as text editing.
func (m *model) editInput(key tea.KeyMsg) bool {
	switch key.Type {
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
		return true
	case tea.KeySpace:
		m.input = append(m.input, ' ')
		return true
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return true
	}
	return false
}

func (m *model) cancel() {
	m.input = nil
	m.mode = modeMenu
	m.message = "Cancelled."
}

func (m *model) updateAddTitle(key tea.KeyMsg) {
	if m.editInput(key) {
		return
	}
	switch key.Type {
	case tea.KeyEsc:
		m.cancel()
	case tea.KeyEnter:
		title := strings.TrimSpace(string(m.input))
		if title == "" {
			m.message = "Title cannot be empty"
			return
		}
		m.draftTitle = title
		m.message = ""
		m.input = nil
		m.mode = modeAddDescription
	}
}

func (m *model) updateAddDescription(key tea.KeyMsg) {
	if m.editInput(key) {
		return
	}
	switch key.Type {
	case tea.KeyEsc:
		m.cancel()
	case tea.KeyEnter:
		m.draftDescription = strings.TrimSpace(string(m.input))
		m.input = nil
		m.cursor = 0
		m.mode = modeAddStatus
	}
}

func (m *model) updateAddStatus(key tea.KeyMsg) {
	statuses := todo.Statuses()
	switch key.String() {
	case "up", "k":
		m.cursor = wrap(m.cursor-1, len(statuses))
	case "down", "j":
		m.cursor = wrap(m.cursor+1, len(statuses))
	case "esc":
		m.cancel()
	case "enter":
		m.mode = modeMenu
		task := m.store.Add(m.draftTitle, m.draftDescription)
		m.dirty = true
		if status := statuses[m.cursor]; status != task.Status {
			if err := m.store.UpdateStatus(task.ID, status); err != nil {
				m.message = "Task not found."
				return
			}
		}
		m.log.Debug("task added", "id", task.ID, "status", statuses[m.cursor])
		m.message = "Task added successfully."
	}
}

func (m *model) updatePick(key tea.KeyMsg) {
	tasks := m.store.List()
	switch key.String() {
	case "up", "k":
		m.cursor = wrap(m.cursor-1, len(tasks))
	case "down", "j":
		m.cursor = wrap(m.cursor+1, len(tasks))
	case "esc":
		m.cancel()
	case "enter":
		if len(tasks) == 0 {
			m.mode = modeMenu
			return
		}
		task := tasks[m.cursor]
		m.pickID = task.ID
		if m.mode == modePickUpdate {
			m.cursor = statusIndex(task.Status)
			m.mode = modeUpdateStatus
			return
		}
		if m.opts.ConfirmRemove {
			m.mode = modeConfirmRemove
			return
		}
		m.remove()
	}
}

func (m *model) updateConfirmRemove(key tea.KeyMsg) {
	switch key.String() {
	case "y", "Y", "enter":
		m.remove()
	case "n", "N", "esc":
		m.cancel()
	}
}

func (m *model) remove() {
	m.mode = modeMenu
	if _, err := m.store.Remove(m.pickID); err != nil {
		m.message = fmt.Sprintf("Task with ID %d not found.", m.pickID)
		return
	}
	m.log.Debug("task removed", "id", m.pickID)
	m.dirty = true
	m.message = fmt.Sprintf("Task with ID %d removed successfully.", m.pickID)
}

func (m *model) updateStatus(key tea.KeyMsg) {
	statuses := todo.Statuses()
	switch key.String() {
	case "up", "k":
		m.cursor = wrap(m.cursor-1, len(statuses))
	case "down", "j":
		m.cursor = wrap(m.cursor+1, len(statuses))
	case "esc":
		m.cancel()
	case "enter":
		m.mode = modeMenu
		status := statuses[m.cursor]
		if err := m.store.UpdateStatus(m.pickID, status); err != nil {
			m.message = "Task not found."
			return
		}
		m.log.Debug("task status updated", "id", m.pickID, "status", status)
		m.dirty = true
		m.message = fmt.Sprintf("Task #%d updated.", m.pickID)
	}
}

func (m *model) save() {
	tasks := m.store.List()
	if err := snapshot.Save(tasks, m.opts.Path); err != nil {
		m.log.Error("save failed", "path", m.opts.Path, "err", err)
		m.message = fmt.Sprintf("Failed to save: %v", err)
		return
	}
	m.log.Info("tasks saved", "path", m.opts.Path, "count", len(tasks))
	m.dirty = false
	m.message = fmt.Sprintf("Saved to %s", m.opts.Path)
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	writeTitle(&b, m.dirty)

	switch m.mode {
	case modeMenu:
		writeMenu(&b)
	case modeList:
		m.writeList(&b)
	case modeAddTitle:
		writePrompt(&b, "Title", m.input)
	case modeAddDescription:
		b.WriteString(fmt.Sprintf("Title: %s\n\n", m.draftTitle))
		writePrompt(&b, "Description", m.input)
	case modeAddStatus:
		writeChoices(&b, "Status", statusLabels(), m.cursor)
	case modePickRemove:
		writeChoices(&b, "Pick a task to remove", m.taskLines(), m.cursor)
	case modePickUpdate:
		writeChoices(&b, "Pick a task to update", m.taskLines(), m.cursor)
	case modeConfirmRemove:
		b.WriteString(fmt.Sprintf("Delete task #%d? [Y/n]\n\n", m.pickID))
	case modeUpdateStatus:
		writeChoices(&b, "New status", statusLabels(), m.cursor)
	case modeConfirmQuit:
		if m.dirty {
			b.WriteString("You have unsaved changes.\n")
		}
		b.WriteString("Quit? [Y/n]\n\n")
	}

	if m.message != "" {
		b.WriteString(m.message + "\n\n")
	}
	writeFooter(&b, m.mode)
	return b.String()
}

func (m *model) writeList(b *strings.Builder) {
	opts := output.Options{Color: m.opts.Color, Renderer: lipgloss.DefaultRenderer()}
	if err := output.Render(b, m.store.List(), output.FormatText, opts); err != nil {
		b.WriteString(err.Error() + "\n")
	}
	b.WriteString("\n")
}

func (m *model) taskLines() []string {
	tasks := m.store.List()
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = output.StyledTaskLine(t, m.opts.Color)
	}
	return lines
}

func writeTitle(b *strings.Builder, dirty bool) {
	title := "Nebula To Do"
	b.WriteString(title)
	if dirty {
		b.WriteString("  [unsaved changes]")
	}
	b.WriteString("\n" + strings.Repeat("=", len(title)) + "\n\n")
}

func writeMenu(b *strings.Builder) {
	for _, it := range menuItems {
		b.WriteString(fmt.Sprintf("  %s) %-16s %-36s %s\n", it.key, it.title, it.sub, it.right))
	}
	b.WriteString("\n")
}

func writePrompt(b *strings.Builder, label string, input []rune) {
	b.WriteString(fmt.Sprintf("%s: %s_\n\n", label, string(input)))
}

func writeChoices(b *strings.Builder, label string, items []string, cursor int) {
	b.WriteString(label + "\n\n")
	for i, item := range items {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		b.WriteString(marker + item + "\n")
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder, md mode) {
	switch md {
	case modeMenu:
		b.WriteString("Press 1-6 to select | q to quit\n")
	case modeList:
		b.WriteString("Press any key to continue...\n")
	case modeAddTitle, modeAddDescription:
		b.WriteString("enter to confirm | esc to cancel\n")
	case modeConfirmRemove, modeConfirmQuit:
		b.WriteString("y/enter to confirm | n/esc to cancel\n")
	default:
		b.WriteString("up/down to move | enter to select | esc to cancel\n")
	}
}

func statusLabels() []string {
	statuses := todo.Statuses()
	labels := make([]string, len(statuses))
	for i, s := range statuses {
		labels[i] = string(s)
	}
	return labels
}

func statusIndex(s todo.Status) int {
	for i, candidate := range todo.Statuses() {
		if candidate == s {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}
