package todo

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"Todo", StatusTodo, false},
		{"todo", StatusTodo, false},
		{"  TODO ", StatusTodo, false},
		{"InProgress", StatusInProgress, false},
		{"in_progress", StatusInProgress, false},
		{"in progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"doing", StatusInProgress, false},
		{"Done", StatusDone, false},
		{"", "", true},
		{"blocked", "", true},
		{"finished", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Fatalf("ParseStatus(%q) error = %v, want ErrInvalidStatus", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Status{"", "todo", "Blocked"} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusInProgress.Label(); got != "In Progress" {
		t.Errorf("Label: got %q, want %q", got, "In Progress")
	}
	if got := StatusDone.Label(); got != "Done" {
		t.Errorf("Label: got %q, want Done", got)
	}
}
