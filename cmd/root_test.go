// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/tasks-go/internal/task"
)

// testEnv runs the CLI against a task file in a temp directory, with user
// and project config files kept out of the way.
type testEnv struct {
	t    *testing.T
	path string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("TASKS_FILE", "")
	t.Setenv("TASKS_LOG_FORMAT", "")
	t.Setenv("TASKS_LOG_LEVEL", "")
	testChdir(t, t.TempDir())
	return &testEnv{t: t, path: filepath.Join(t.TempDir(), "tasks.json")}
}

func (e *testEnv) run(args ...string) (stdout, stderr string, err error) {
	e.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"-file", e.path}, args...)
	err = RunWithIO(context.Background(), full, &out, &errOut)
	return out.String(), errOut.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, errOut, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("%v: %v (stderr: %s)", args, err, errOut)
	}
	return out
}

func TestRun(t *testing.T) {
	newTestEnv(t)

	t.Run("shows help with -h flag", func(t *testing.T) {
		var out bytes.Buffer
		if err := RunWithIO(context.Background(), []string{"-h"}, &out, &bytes.Buffer{}); err != nil {
			t.Errorf("expected no error with -h, got %v", err)
		}
		if !strings.Contains(out.String(), "Usage:") {
			t.Errorf("usage not printed: %q", out.String())
		}
	})

	t.Run("shows help with no command", func(t *testing.T) {
		var out bytes.Buffer
		if err := RunWithIO(context.Background(), nil, &out, &bytes.Buffer{}); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if !strings.Contains(out.String(), "Commands:") {
			t.Errorf("usage not printed: %q", out.String())
		}
	})

	t.Run("shows version", func(t *testing.T) {
		for _, args := range [][]string{{"-v"}, {"--version"}, {"version"}} {
			var out bytes.Buffer
			if err := RunWithIO(context.Background(), args, &out, &bytes.Buffer{}); err != nil {
				t.Errorf("%v: %v", args, err)
			}
			if !strings.HasPrefix(out.String(), "tasks version ") {
				t.Errorf("%v: got %q", args, out.String())
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		err := RunWithIO(context.Background(), []string{"unknown-command"}, &bytes.Buffer{}, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("bad global flag returns error", func(t *testing.T) {
		err := RunWithIO(context.Background(), []string{"-no-such-flag"}, &bytes.Buffer{}, &bytes.Buffer{})
		if err == nil {
			t.Error("expected error for unknown flag")
		}
	})

	t.Run("config prints example", func(t *testing.T) {
		var out bytes.Buffer
		if err := RunWithIO(context.Background(), []string{"config"}, &out, &bytes.Buffer{}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "backup_suffix") {
			t.Errorf("example config missing keys: %q", out.String())
		}
	})
}

func TestAddAndList(t *testing.T) {
	e := newTestEnv(t)

	if out := e.mustRun("list"); out != "No tasks found.\n" {
		t.Errorf("empty list: got %q", out)
	}
	if out := e.mustRun("add", "buy", "milk"); out != "Task added: ☐ buy milk\n" {
		t.Errorf("add: got %q", out)
	}
	e.mustRun("a", "  walk the dog  ")

	want := "\nYour Tasks:\n" +
		strings.Repeat("-", 40) + "\n" +
		"1. ☐ buy milk\n" +
		"2. ☐ walk the dog\n" +
		strings.Repeat("-", 40) + "\n"
	if out := e.mustRun("ls"); out != want {
		t.Errorf("list:\ngot  %q\nwant %q", out, want)
	}
}

func TestAddEmptyRejected(t *testing.T) {
	e := newTestEnv(t)

	out, errOut, err := e.run("add", "   ")
	if err != nil {
		t.Fatalf("rejection should not fail the command: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "Error: Task description cannot be empty.") {
		t.Errorf("stderr = %q", errOut)
	}
	if out := e.mustRun("list"); out != "No tasks found.\n" {
		t.Errorf("list after rejection: %q", out)
	}
}

func TestCompleteAndProgress(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun("add", "one")
	e.mustRun("add", "two")
	e.mustRun("add", "three")

	if out := e.mustRun("done", "2"); out != "Task 2 marked as completed: ✓ two\n" {
		t.Errorf("complete: got %q", out)
	}
	// Completing twice is allowed.
	e.mustRun("c", "2")

	out := e.mustRun("progress")
	if !strings.Contains(out, "In Progress Tasks:") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "1. ☐ one\n3. ☐ three\n") {
		t.Errorf("progress should keep original numbers: %q", out)
	}
	if strings.Contains(out, "two") {
		t.Errorf("completed task listed: %q", out)
	}
}

func TestProgressEmptyAsymmetry(t *testing.T) {
	e := newTestEnv(t)

	if out := e.mustRun("i"); out != "No tasks found.\n" {
		t.Errorf("empty list: got %q", out)
	}

	e.mustRun("add", "only")
	e.mustRun("complete", "1")

	rule := strings.Repeat("-", 40)
	want := "\nIn Progress Tasks:\n" + rule + "\n" + rule + "\n"
	if out := e.mustRun("in-progress"); out != want {
		t.Errorf("all completed:\ngot  %q\nwant %q", out, want)
	}
}

func TestRemove(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun("add", "one")
	e.mustRun("add", "two")

	if out := e.mustRun("rm", "1"); out != "Task removed: ☐ one\n" {
		t.Errorf("remove: got %q", out)
	}
	if out := e.mustRun("list"); !strings.Contains(out, "1. ☐ two") {
		t.Errorf("remaining task should be renumbered: %q", out)
	}
}

func TestIndexRejections(t *testing.T) {
	e := newTestEnv(t)

	out, _, err := e.run("complete", "1")
	if err != nil || out != "No tasks found.\n" {
		t.Errorf("empty list: out=%q err=%v", out, err)
	}

	e.mustRun("add", "one")
	e.mustRun("add", "two")
	for _, cmd := range []string{"complete", "remove"} {
		for _, n := range []string{"0", "3", "-1"} {
			_, errOut, err := e.run(cmd, n)
			if err != nil {
				t.Errorf("%s %s: rejection should not fail: %v", cmd, n, err)
			}
			if !strings.Contains(errOut, "Error: Invalid task index. Please choose a number between 1 and 2.") {
				t.Errorf("%s %s: stderr = %q", cmd, n, errOut)
			}
		}
	}

	if _, _, err := e.run("complete", "first"); err == nil {
		t.Error("non-numeric index should be a usage error")
	}
	if _, _, err := e.run("remove"); err == nil {
		t.Error("missing index should be a usage error")
	}
}

func TestDamagedFileRecovered(t *testing.T) {
	e := newTestEnv(t)
	if err := os.WriteFile(e.path, []byte(`"not a json array"`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := e.run("list")
	if err != nil {
		t.Fatalf("damaged file should not fail: %v", err)
	}
	if out != "No tasks found.\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "invalid format in task file") {
		t.Errorf("warning not logged: %q", errOut)
	}

	backup := strings.TrimSuffix(e.path, ".json") + ".bak"
	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if string(data) != `"not a json array"` {
		t.Errorf("backup = %q", data)
	}
}

func TestInitFailure(t *testing.T) {
	e := newTestEnv(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	e.path = filepath.Join(blocker, "sub", "tasks.json")

	_, errOut, err := e.run("list")
	var initErr *task.InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected *task.InitError, got %v", err)
	}
	if !strings.Contains(errOut, "Critical error initializing task tracker") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestJSONLogFormat(t *testing.T) {
	e := newTestEnv(t)
	if err := os.WriteFile(e.path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, errOut, err := e.run("-log-format", "json", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, `"msg":"error loading task file, creating backup"`) {
		t.Errorf("expected JSON log line, got %q", errOut)
	}
}

func TestDoctor(t *testing.T) {
	e := newTestEnv(t)

	out, _, err := e.run("doctor")
	if err != nil {
		t.Fatalf("doctor on missing file: %v", err)
	}
	if !strings.Contains(out, "Not found") {
		t.Errorf("missing file not reported: %q", out)
	}
	if _, statErr := os.Stat(e.path); !os.IsNotExist(statErr) {
		t.Error("doctor must not create the task file")
	}

	e.mustRun("add", "one")
	out = e.mustRun("doctor")
	if !strings.Contains(out, "Valid: 1 tasks, 1 in progress") {
		t.Errorf("valid file not reported: %q", out)
	}

	if err := os.WriteFile(e.path, []byte("[1, 2]"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = e.run("doctor")
	if err == nil {
		t.Error("doctor should fail on a corrupted file")
	}
	if !strings.Contains(out, string(task.StateCorrupted)) {
		t.Errorf("corruption not reported: %q", out)
	}
	if data, _ := os.ReadFile(e.path); string(data) != "[1, 2]" {
		t.Error("doctor must not modify the task file")
	}
}

func TestParseTaskNumber(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{[]string{"3"}, 3, false},
		{[]string{" 7 "}, 7, false},
		{[]string{"-2"}, -2, false},
		{[]string{"x"}, 0, true},
		{nil, 0, true},
		{[]string{"1", "2"}, 0, true},
	}
	for _, tt := range tests {
		got, err := parseTaskNumber("complete", tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTaskNumber(%v): err = %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTaskNumber(%v) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestHeldWriter(t *testing.T) {
	var out bytes.Buffer
	h := &heldWriter{w: &out}

	_, _ = h.Write([]byte("before\n"))
	h.Hold()
	_, _ = h.Write([]byte("during\n"))
	if out.String() != "before\n" {
		t.Fatalf("held output leaked: %q", out.String())
	}

	h.Release()
	_, _ = h.Write([]byte("after\n"))
	if got, want := out.String(), "before\nduring\nafter\n"; got != want {
		t.Errorf("output: got %q, want %q", got, want)
	}
}

func TestTUILogsReachStderr(t *testing.T) {
	e := newTestEnv(t)
	if err := os.WriteFile(e.path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, errOut, err := e.run("tui")
	if err == nil || !strings.Contains(err.Error(), "TTY") {
		t.Fatalf("expected TTY error without a terminal, got %v", err)
	}
	if !strings.Contains(errOut, "error loading task file, creating backup") {
		t.Errorf("load warning not printed: %q", errOut)
	}
}
