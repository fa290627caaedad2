// Package todo holds the task entity and the in-memory task store.
//
// A Store owns an ordered collection of tasks and is the only place task
// identifiers are assigned:
//
//	s := todo.NewStore()
//	t := s.Add("Buy milk", "")       // t.ID == 1, t.Status == todo.StatusTodo
//	_ = s.UpdateStatus(t.ID, todo.StatusDone)
//	removed, err := s.Remove(t.ID)   // ids are never handed out again
//
// # Identifiers
//
// Each new task gets 1 + the highest id ever assigned in the session. Removing
// a task never frees its id. Replace (used when a snapshot is loaded) raises
// the counter above the highest loaded id.
//
// # Status Values
//
//   - "Todo": task is pending
//   - "InProgress": task is being worked on
//   - "Done": task is complete
//
// Any status may be set from any other. External status tokens are parsed
// with ParseStatus at the input boundary; the store itself trusts the Status
// values it is given.
package todo
