package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks failures reading or writing the task file.
	ErrIO = errors.New("task file i/o")

	// ErrEncoding marks failures serializing tasks.
	ErrEncoding = errors.New("encode tasks")

	// ErrDecoding marks task files that exist but do not match the schema.
	ErrDecoding = errors.New("decode task file")
)

// DecodeError describes why a task file could not be decoded.
type DecodeError struct {
	File string // task file path
	Path string // location inside the document, e.g. "[1].status"
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("decode %s: %s: %s", e.File, e.Path, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes every DecodeError match ErrDecoding.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecoding
}
