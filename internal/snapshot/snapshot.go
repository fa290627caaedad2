package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/nebula/internal/todo"
	"github.com/nibzard/nebula/internal/utils"
)

// Save writes tasks to path, replacing any previous content.
func Save(tasks []todo.Task, path string) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}

// Load reads the tasks saved at path. A missing file yields an empty list.
func Load(path string) ([]todo.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []todo.Task{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	return Decode(path, data)
}

// Decode parses and validates task file content. name is only used in errors.
func Decode(name string, data []byte) ([]todo.Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{File: name, Err: err}
	}

	if err := taskSchema().Validate(doc); err != nil {
		return nil, schemaError(name, err)
	}

	// Read records by exact key: encoding/json matches struct fields
	// case-insensitively.
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DecodeError{File: name, Err: err}
	}

	tasks := make([]todo.Task, 0, len(records))
	seen := make(map[int]bool, len(records))
	for i, rec := range records {
		t, field, err := decodeTask(rec)
		if err != nil {
			return nil, &DecodeError{File: name, Path: fmt.Sprintf("[%d].%s", i, field), Err: err}
		}
		if seen[t.ID] {
			return nil, &DecodeError{
				File: name,
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d", t.ID),
			}
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// decodeTask reads the four task properties from rec. On failure it returns
// the offending property name.
func decodeTask(rec map[string]json.RawMessage) (todo.Task, string, error) {
	var t todo.Task
	fields := []struct {
		key string
		dst interface{}
	}{
		{"id", &t.ID},
		{"title", &t.Title},
		{"description", &t.Description},
		{"status", &t.Status},
	}
	for _, f := range fields {
		raw, ok := rec[f.key]
		if !ok {
			return todo.Task{}, f.key, errors.New("missing property")
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return todo.Task{}, f.key, err
		}
	}
	if !t.Status.Valid() {
		return todo.Task{}, "status", fmt.Errorf("%w %q", todo.ErrInvalidStatus, t.Status)
	}
	return t, "", nil
}

// schemaError reduces a schema validation failure to its first leaf cause.
func schemaError(name string, err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &DecodeError{File: name, Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &DecodeError{
		File: name,
		Path: utils.JSONPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}

// writeFile writes data to a temp file in the target directory and renames
// it over path.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
