package task

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDescription rejects a task whose description is blank.
	ErrEmptyDescription = errors.New("task description cannot be empty")
	// ErrNoTasks rejects an index operation on an empty list.
	ErrNoTasks = errors.New("no tasks found")
	// ErrIndexOutOfRange rejects an index outside 1..len.
	ErrIndexOutOfRange = errors.New("invalid task index")
)

// ValidationError is a rejected operation. The list is left unchanged.
type ValidationError struct {
	Path string // argument that failed, e.g. "description" or "index"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FormatError means the store file parsed but its top level is not an array.
type FormatError struct {
	Path string
	Got  string // JSON kind found instead, e.g. "object"
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format in task file %s: expected array, got %s", e.Path, e.Got)
}

// CorruptionError means the store file did not parse, or an element could
// not be decoded into a Task.
type CorruptionError struct {
	Path string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupted task file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptionError) Unwrap() error {
	return e.Err
}

// PersistError is a failed save. The in-memory list is still valid.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save task file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// InitError means the store could not be opened at all.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("open task store %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
