package task

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInspect(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.json")
	report, err := Inspect(missing)
	if err != nil {
		t.Fatalf("Inspect(missing) failed: %v", err)
	}
	if report.State != StateMissing {
		t.Errorf("missing: got %q, want %q", report.State, StateMissing)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("Inspect must not create the store file")
	}

	report, err = Inspect(dir)
	if err != nil {
		t.Fatalf("Inspect(dir) failed: %v", err)
	}
	if report.State != StateNotRegular {
		t.Errorf("directory: got %q, want %q", report.State, StateNotRegular)
	}

	valid := filepath.Join(dir, "tasks.json")
	writeFile(t, valid, `[{"description":"a"},{"description":"b","completed":true},{"description":"c"}]`)
	report, err = Inspect(valid)
	if err != nil {
		t.Fatalf("Inspect(valid) failed: %v", err)
	}
	if report.State != StateValid || report.Tasks != 3 || report.Incomplete != 2 {
		t.Errorf("valid: got %+v, want 3 tasks with 2 incomplete", report)
	}

	shape := filepath.Join(dir, "shape.json")
	writeFile(t, shape, `{"tasks": []}`)
	report, err = Inspect(shape)
	if err != nil {
		t.Fatalf("Inspect(shape) failed: %v", err)
	}
	var formatErr *FormatError
	if !errors.As(report.Err, &formatErr) || formatErr.Got != "object" {
		t.Errorf("shape: got err %v, want *FormatError for object", report.Err)
	}
	if _, err := os.Stat(filepath.Join(dir, "shape.bak")); !os.IsNotExist(err) {
		t.Error("Inspect must not write a backup")
	}

	broken := filepath.Join(dir, "broken.json")
	writeFile(t, broken, `[`)
	report, err = Inspect(broken)
	if err != nil {
		t.Fatalf("Inspect(broken) failed: %v", err)
	}
	var corruptErr *CorruptionError
	if report.State != StateCorrupted || !errors.As(report.Err, &corruptErr) {
		t.Errorf("broken: got %+v, want corrupted", report)
	}
}
