package todo

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := NewStore()

	first := s.Add("Buy milk", "")
	if first.ID != 1 {
		t.Errorf("first ID: got %d, want 1", first.ID)
	}
	if first.Status != StatusTodo {
		t.Errorf("first Status: got %q, want %q", first.Status, StatusTodo)
	}

	second := s.Add("Write report", "draft")
	if second.ID != 2 {
		t.Errorf("second ID: got %d, want 2", second.ID)
	}
	if second.Description != "draft" {
		t.Errorf("second Description: got %q, want draft", second.Description)
	}
}

func TestZeroValueStore(t *testing.T) {
	var s Store
	if got := s.Add("x", "").ID; got != 1 {
		t.Errorf("ID: got %d, want 1", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}

func TestIDsNeverReused(t *testing.T) {
	s := NewStore()
	seen := make(map[int]bool)
	last := 0

	for i := 0; i < 20; i++ {
		task := s.Add("task", "")
		if seen[task.ID] {
			t.Fatalf("id %d assigned twice", task.ID)
		}
		if task.ID <= last {
			t.Fatalf("id %d not greater than previous %d", task.ID, last)
		}
		seen[task.ID] = true
		last = task.ID

		// Remove every other task, including the newest one.
		if i%2 == 0 {
			if _, err := s.Remove(task.ID); err != nil {
				t.Fatalf("Remove(%d): %v", task.ID, err)
			}
		}
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	a := s.Add("a", "")
	b := s.Add("b", "")
	c := s.Add("c", "")

	removed, err := s.Remove(b.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed != b {
		t.Errorf("removed: got %+v, want %+v", removed, b)
	}

	want := []Task{a, c}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List after remove: got %+v, want %+v", got, want)
	}

	_, err = s.Remove(b.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove: got %v, want ErrNotFound", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	s := NewStore()
	a := s.Add("a", "")
	b := s.Add("b", "")

	if err := s.UpdateStatus(b.ID, StatusDone); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	// Free transitions: Done back to Todo is allowed.
	if err := s.UpdateStatus(b.ID, StatusTodo); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if err := s.UpdateStatus(a.ID, StatusInProgress); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	got := s.List()
	if got[0].ID != a.ID || got[0].Status != StatusInProgress {
		t.Errorf("task a: got %+v", got[0])
	}
	if got[1].ID != b.ID || got[1].Status != StatusTodo {
		t.Errorf("task b: got %+v", got[1])
	}
}

func TestUpdateStatusNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := NewStore()
	s.Add("a", "")
	s.Add("b", "")
	before := s.List()

	err := s.UpdateStatus(42, StatusDone)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateStatus(42): got %v, want ErrNotFound", err)
	}
	if after := s.List(); !reflect.DeepEqual(before, after) {
		t.Errorf("store changed: before %+v, after %+v", before, after)
	}
}

func TestListIsACopy(t *testing.T) {
	s := NewStore()
	s.Add("a", "")

	list := s.List()
	list[0].Title = "mutated"

	if got := s.List()[0].Title; got != "a" {
		t.Errorf("store title: got %q, want a", got)
	}
	if !reflect.DeepEqual(s.List(), s.List()) {
		t.Error("List should be restartable and stable")
	}
}

func TestListEmpty(t *testing.T) {
	s := NewStore()
	got := s.List()
	if got == nil || len(got) != 0 {
		t.Errorf("List on empty store: got %#v, want empty non-nil slice", got)
	}
}

func TestGet(t *testing.T) {
	s := NewStore()
	a := s.Add("a", "desc")

	got, err := s.Get(a.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != a {
		t.Errorf("Get: got %+v, want %+v", got, a)
	}

	if _, err := s.Get(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(99): got %v, want ErrNotFound", err)
	}
}

func TestReplaceRaisesCounter(t *testing.T) {
	s := NewStore()
	s.Replace([]Task{
		{ID: 2, Title: "b", Status: StatusDone},
		{ID: 7, Title: "g", Status: StatusTodo},
	})

	if s.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", s.Len())
	}
	if got := s.Add("next", "").ID; got != 8 {
		t.Errorf("ID after Replace: got %d, want 8", got)
	}
}

func TestReplaceNeverLowersCounter(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		s.Add("t", "")
	}
	s.Replace([]Task{{ID: 1, Title: "a", Status: StatusTodo}})

	if got := s.NextID(); got != 6 {
		t.Errorf("NextID: got %d, want 6", got)
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	in := []Task{{ID: 1, Title: "a", Status: StatusTodo}}
	s := NewStore()
	s.Replace(in)
	in[0].Title = "mutated"

	if got := s.List()[0].Title; got != "a" {
		t.Errorf("store title: got %q, want a", got)
	}
}

func TestScenario(t *testing.T) {
	s := NewStore()

	milk := s.Add("Buy milk", "")
	if milk.ID != 1 || milk.Status != StatusTodo {
		t.Fatalf("milk: got %+v", milk)
	}
	report := s.Add("Write report", "draft")
	if report.ID != 2 {
		t.Fatalf("report ID: got %d, want 2", report.ID)
	}

	removed, err := s.Remove(1)
	if err != nil {
		t.Fatalf("Remove(1): %v", err)
	}
	if removed.Title != "Buy milk" {
		t.Errorf("removed title: got %q", removed.Title)
	}
	if list := s.List(); len(list) != 1 || list[0].ID != 2 {
		t.Fatalf("List after remove: got %+v", list)
	}

	plumber := s.Add("Call plumber", "")
	if plumber.ID != 3 {
		t.Errorf("plumber ID: got %d, want 3", plumber.ID)
	}

	if err := s.UpdateStatus(2, StatusDone); err != nil {
		t.Fatalf("UpdateStatus(2): %v", err)
	}

	want := []Task{
		{ID: 2, Title: "Write report", Description: "draft", Status: StatusDone},
		{ID: 3, Title: "Call plumber", Description: "", Status: StatusTodo},
	}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("final List: got %+v, want %+v", got, want)
	}
}
