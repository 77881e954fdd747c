package task

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/nibzard/tasks-go/internal/taskdir"
)

// Store holds the task list in memory and keeps the store file in step with it.
// A Store is not safe for concurrent use.
type Store struct {
	path         string
	backupSuffix string
	notifier     Notifier
	tasks        []Task
	lastSaveErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the sink for warnings and save failures.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithBackupSuffix sets the extension used for backups of damaged store files.
func WithBackupSuffix(suffix string) Option {
	return func(s *Store) {
		if suffix != "" {
			s.backupSuffix = suffix
		}
	}
}

// Open loads the store at path, creating, resetting or backing it up as
// described in the package documentation. Only an *InitError is returned;
// damaged files are recovered and reported to the notifier instead.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, &InitError{Path: path, Err: errors.New("task file path is empty")}
	}

	s := &Store{
		path:         path,
		backupSuffix: taskdir.DefaultBackupSuffix,
		notifier:     nopNotifier{},
		tasks:        []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return &InitError{Path: s.path, Err: fmt.Errorf("create task directory: %w", err)}
		}
		s.persist()
		return nil
	}
	if err != nil {
		return &InitError{Path: s.path, Err: err}
	}

	if !info.Mode().IsRegular() {
		s.notifier.Warn("task path exists but is not a file, creating new task file", "path", s.path)
		s.persist()
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return &InitError{Path: s.path, Err: fmt.Errorf("read task file: %w", err)}
	}

	tasks, err := decodeSnapshot(s.path, data)
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			s.notifier.Warn("invalid format in task file, creating backup",
				"path", s.path, "expected", "array", "got", formatErr.Got)
		} else {
			s.notifier.Warn("error loading task file, creating backup",
				"path", s.path, "err", errors.Unwrap(err))
		}
		s.backup()
		return nil
	}

	s.tasks = tasks
	return nil
}

// Save writes the full list to the store file. Mutating operations call it
// themselves and report failures to the notifier.
func (s *Store) Save() error {
	err := writeSnapshot(s.path, s.tasks)
	if err != nil {
		err = &PersistError{Path: s.path, Err: err}
	}
	s.lastSaveErr = err
	return err
}

// persist saves and reports a failure without returning it.
func (s *Store) persist() {
	if err := s.Save(); err != nil {
		s.notifier.Error("error saving tasks", "path", s.path, "err", errors.Unwrap(err))
	}
}

// LastSaveErr returns the error from the most recent save, or nil if it succeeded.
func (s *Store) LastSaveErr() error {
	return s.lastSaveErr
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// BackupPath returns where a damaged store file is copied.
func (s *Store) BackupPath() string {
	return taskdir.BackupPath(s.path, s.backupSuffix)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Add appends a new incomplete task and saves.
func (s *Store) Add(description string) (Task, error) {
	t, err := NewTask(description)
	if err != nil {
		return Task{}, err
	}
	s.tasks = append(s.tasks, t)
	s.persist()
	return t, nil
}

// Complete marks the task at the 1-based index i as completed and saves.
// Completing a completed task is allowed and changes nothing but the save.
func (s *Store) Complete(i int) (Task, error) {
	if err := s.checkIndex(i); err != nil {
		return Task{}, err
	}
	s.tasks[i-1].Completed = true
	s.persist()
	return s.tasks[i-1], nil
}

// Remove deletes the task at the 1-based index i and saves. Later tasks
// move down by one position.
func (s *Store) Remove(i int) (Task, error) {
	if err := s.checkIndex(i); err != nil {
		return Task{}, err
	}
	removed := s.tasks[i-1]
	s.tasks = slices.Delete(s.tasks, i-1, i)
	s.persist()
	return removed, nil
}

// List returns every task with its index, in list order.
func (s *Store) List() []Entry {
	entries := make([]Entry, 0, len(s.tasks))
	for i, t := range s.tasks {
		entries = append(entries, Entry{Index: i + 1, Task: t})
	}
	return entries
}

// ListIncomplete returns the tasks not yet completed. Indices are the
// tasks' positions in the full list, not renumbered.
func (s *Store) ListIncomplete() []Entry {
	var entries []Entry
	for i, t := range s.tasks {
		if !t.Completed {
			entries = append(entries, Entry{Index: i + 1, Task: t})
		}
	}
	return entries
}

func (s *Store) checkIndex(i int) error {
	if len(s.tasks) == 0 {
		return &ValidationError{Path: "index", Err: ErrNoTasks}
	}
	if i < 1 || i > len(s.tasks) {
		return &ValidationError{
			Path: "index",
			Err:  fmt.Errorf("%w %d: choose a number between 1 and %d", ErrIndexOutOfRange, i, len(s.tasks)),
		}
	}
	return nil
}
