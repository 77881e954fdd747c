package task

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// State classifies a store file without touching it.
type State string

const (
	StateMissing    State = "missing"
	StateNotRegular State = "not a regular file"
	StateValid      State = "valid"
	StateFormat     State = "format violation"
	StateCorrupted  State = "corrupted"
)

// Report describes a store file as Open would find it.
type Report struct {
	Path       string
	State      State
	Tasks      int
	Incomplete int
	Err        error // *FormatError or *CorruptionError for damaged files
}

// Inspect reads the store file at path and reports its state. Unlike Open
// it never writes, creates or backs up anything. It returns an error only
// when the file cannot be examined at all.
func Inspect(path string) (*Report, error) {
	report := &Report{Path: path}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		report.State = StateMissing
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat task file: %w", err)
	}
	if !info.Mode().IsRegular() {
		report.State = StateNotRegular
		return report, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	tasks, err := decodeSnapshot(path, data)
	if err != nil {
		report.Err = err
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			report.State = StateFormat
		} else {
			report.State = StateCorrupted
		}
		return report, nil
	}

	report.State = StateValid
	report.Tasks = len(tasks)
	for _, t := range tasks {
		if !t.Completed {
			report.Incomplete++
		}
	}
	return report, nil
}
