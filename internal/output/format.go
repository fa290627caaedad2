// Package output renders task lists for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/nebula/internal/todo"
)

// Format selects how a task list is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// EmptyMessage is printed by the text format when there are no tasks.
const EmptyMessage = "No tasks yet."

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q, must be one of: text, json, yaml", s)
}

// Options controls text rendering.
type Options struct {
	// Color enables status colors when w is a color-capable terminal.
	Color bool

	// Renderer overrides color detection on w. Callers that render into a
	// buffer bound for the terminal pass lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer
}

// Render writes tasks to w in the given format.
func Render(w io.Writer, tasks []todo.Task, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, tasks)
	case FormatYAML:
		return renderYAML(w, tasks)
	default:
		return renderTable(w, tasks, opts)
	}
}

// TaskLine formats a task as a single line: "#3   Todo         Call plumber".
func TaskLine(t todo.Task) string {
	return fmt.Sprintf("#%-3d %-12s %s", t.ID, t.Status.Label(), normalizeTitle(t.Title))
}

func renderTable(w io.Writer, tasks []todo.Task, opts Options) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	re := opts.Renderer
	if re == nil {
		re = lipgloss.NewRenderer(w)
	}
	header := re.NewStyle().Bold(true).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			normalizeTitle(t.Title),
			flatten(t.Description),
			t.Status.Label(),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle()).
		Headers("ID", "Title", "Description", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 3 && opts.Color && row >= 0 && row < len(tasks) {
				return cell.Foreground(statusColor(tasks[row].Status))
			}
			return cell
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func statusColor(s todo.Status) lipgloss.Color {
	switch s {
	case todo.StatusTodo:
		return lipgloss.Color("3") // yellow
	case todo.StatusInProgress:
		return lipgloss.Color("4") // blue
	case todo.StatusDone:
		return lipgloss.Color("2") // green
	}
	return lipgloss.Color("7")
}

// StatusStyle returns the style used for a status label.
func StatusStyle(s todo.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColor(s))
}

func renderJSON(w io.Writer, tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func renderYAML(w io.Writer, tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	return enc.Close()
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = flatten(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// StyledTaskLine is TaskLine with the status label colored.
func StyledTaskLine(t todo.Task, color bool) string {
	status := fmt.Sprintf("%-12s", t.Status.Label())
	if color {
		status = StatusStyle(t.Status).Render(status)
	}
	return fmt.Sprintf("#%-3d %s %s", t.ID, status, normalizeTitle(t.Title))
}
