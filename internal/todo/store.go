package todo

// Store is the in-memory owner of the task collection and id assignment.
// The zero value is an empty store. It is not safe for concurrent use.
type Store struct {
	tasks  []Task
	lastID int // highest id ever assigned or loaded
}

// NewStore creates an empty store whose first task gets id 1.
func NewStore() *Store {
	return &Store{}
}

// Add appends a new Todo task and returns it.
func (s *Store) Add(title, description string) Task {
	s.lastID++
	task := Task{
		ID:          s.lastID,
		Title:       title,
		Description: description,
		Status:      StatusTodo,
	}
	s.tasks = append(s.tasks, task)
	return task
}

// List returns a copy of the tasks in insertion order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	return s.tasks[i], nil
}

// UpdateStatus sets the status of the task with the given id.
func (s *Store) UpdateStatus(id int, status Status) error {
	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	s.tasks[i].Status = status
	return nil
}

// Remove deletes the task with the given id and returns it. The id is not
// reused.
func (s *Store) Remove(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return removed, nil
}

// Replace swaps the whole collection for tasks, for example after loading a
// snapshot. The id counter only moves forward: it becomes max(id)+1 when that
// is above the current value.
func (s *Store) Replace(tasks []Task) {
	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
}

// NextID returns the id the next Add will assign.
func (s *Store) NextID() int {
	return s.lastID + 1
}

func (s *Store) index(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
