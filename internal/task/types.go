package task

import "strings"

// Task is a single to-do item.
type Task struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// NewTask returns an incomplete task with the trimmed description.
func NewTask(description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, &ValidationError{Path: "description", Err: ErrEmptyDescription}
	}
	return Task{Description: description}, nil
}

// String renders the task with its completion mark.
func (t Task) String() string {
	if t.Completed {
		return "✓ " + t.Description
	}
	return "☐ " + t.Description
}

// Entry is a task paired with its 1-based position in the list.
type Entry struct {
	Index int
	Task  Task
}
