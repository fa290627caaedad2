package todo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a task id does not exist in the store.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidStatus is returned by ParseStatus for tokens outside the
	// closed status set.
	ErrInvalidStatus = errors.New("invalid status")
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses returns every status in workflow order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the human-readable form of s.
func (s Status) Label() string {
	if s == StatusInProgress {
		return "In Progress"
	}
	return string(s)
}

// ParseStatus converts user input into a Status. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseStatus(token string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "todo":
		return StatusTodo, nil
	case "inprogress", "in_progress", "in progress", "in-progress", "doing":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w %q, must be one of: Todo, InProgress, Done", ErrInvalidStatus, token)
}

// Task represents a single task in the store.
type Task struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Status      Status `json:"status" yaml:"status"`
}

func notFound(id int) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}
