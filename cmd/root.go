// Package cmd implements the CLI command structure for tasks.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/tasks-go/internal/config"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/task"
	"github.com/nibzard/tasks-go/internal/taskdir"
	"github.com/nibzard/tasks-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

const ruleWidth = 40

// Run executes the tasks CLI on the process's standard streams.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdout, os.Stderr)
}

// RunWithIO executes the tasks CLI writing results to stdout and
// diagnostics to stderr.
func RunWithIO(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, stdout)
		return nil
	}
	subcommand, remaining := remaining[0], remaining[1:]

	c := &cli{cfg: cfg, stdout: stdout, stderr: stderr}

	// Execute the subcommand
	switch subcommand {
	case "add", "a":
		return c.addCommand(remaining)
	case "list", "ls", "l":
		return c.listCommand(remaining)
	case "complete", "done", "c":
		return c.completeCommand(remaining)
	case "remove", "rm", "r":
		return c.removeCommand(remaining)
	case "progress", "in-progress", "i":
		return c.progressCommand(remaining)
	case "tui":
		return c.tuiCommand(ctx, remaining)
	case "doctor":
		return c.doctorCommand(remaining)
	case "config":
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	case "version", "--version":
		return versionCommand(stdout)
	case "help", "--help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// cli carries the loaded config and output streams into each command.
type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

// openStore opens the configured task file, reporting to a console logger.
func (c *cli) openStore() (*task.Store, error) {
	return c.openStoreLogging(c.stderr)
}

// openStoreLogging is openStore with the console logger writing to w.
func (c *cli) openStoreLogging(w io.Writer) (*task.Store, error) {
	logger, err := logging.New(w, c.cfg.LoggingOptions())
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	store, err := task.Open(c.cfg.TaskFile,
		task.WithNotifier(logger),
		task.WithBackupSuffix(c.cfg.BackupSuffix),
	)
	if err != nil {
		fmt.Fprintf(c.stderr, "Critical error initializing task tracker: %v\n", err)
		fmt.Fprintln(c.stderr, "Please check your tasks file or try running with different permissions.")
		return nil, err
	}
	return store, nil
}

// reject prints a rejected operation. Rejections are not command failures.
func (c *cli) reject(err error, n int) error {
	switch {
	case errors.Is(err, task.ErrNoTasks):
		fmt.Fprintln(c.stdout, "No tasks found.")
	case errors.Is(err, task.ErrEmptyDescription):
		fmt.Fprintln(c.stderr, "Error: Task description cannot be empty.")
	case errors.Is(err, task.ErrIndexOutOfRange):
		fmt.Fprintf(c.stderr, "Error: Invalid task index. Please choose a number between 1 and %d.\n", n)
	default:
		return err
	}
	return nil
}

// addCommand adds a task; the words of args form the description.
func (c *cli) addCommand(args []string) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	t, err := store.Add(strings.Join(args, " "))
	if err != nil {
		return c.reject(err, store.Len())
	}
	fmt.Fprintf(c.stdout, "Task added: %s\n", t)
	return nil
}

// listCommand prints every task with its number.
func (c *cli) listCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	entries := store.List()
	if len(entries) == 0 {
		fmt.Fprintln(c.stdout, "No tasks found.")
		return nil
	}
	c.printEntries("Your Tasks:", entries)
	return nil
}

// progressCommand prints the tasks not yet completed, keeping their numbers.
func (c *cli) progressCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	// An empty list is reported; a list with nothing left to do prints an
	// empty table.
	if store.Len() == 0 {
		fmt.Fprintln(c.stdout, "No tasks found.")
		return nil
	}
	c.printEntries("In Progress Tasks:", store.ListIncomplete())
	return nil
}

// completeCommand marks a task as completed.
func (c *cli) completeCommand(args []string) error {
	n, err := parseTaskNumber("complete", args)
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	t, err := store.Complete(n)
	if err != nil {
		return c.reject(err, store.Len())
	}
	fmt.Fprintf(c.stdout, "Task %d marked as completed: %s\n", n, t)
	return nil
}

// removeCommand deletes a task; later tasks are renumbered.
func (c *cli) removeCommand(args []string) error {
	n, err := parseTaskNumber("remove", args)
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	t, err := store.Remove(n)
	if err != nil {
		return c.reject(err, store.Len())
	}
	fmt.Fprintf(c.stdout, "Task removed: %s\n", t)
	return nil
}

// tuiCommand launches the interactive task list.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	// Parse tui-specific flags
	fs := flag.NewFlagSet("tasks tui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	incomplete := fs.Bool("incomplete", false, "Show only tasks in progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Load warnings print right away; anything logged while the TUI owns
	// the terminal is held and printed after it exits.
	logs := &heldWriter{w: c.stderr}
	store, err := c.openStoreLogging(logs)
	if err != nil {
		return err
	}
	logs.Hold()
	defer logs.Release()
	return ui.RunTUI(ctx, store, ui.WithIncompleteOnly(*incomplete), ui.WithOutput(c.stdout))
}

// heldWriter passes writes through to w until Hold is called, then buffers
// them until Release.
type heldWriter struct {
	w    io.Writer
	buf  bytes.Buffer
	held bool
}

func (h *heldWriter) Write(p []byte) (int, error) {
	if h.held {
		return h.buf.Write(p)
	}
	return h.w.Write(p)
}

// Hold starts buffering.
func (h *heldWriter) Hold() {
	h.held = true
}

// Release writes out anything buffered and stops buffering.
func (h *heldWriter) Release() {
	h.held = false
	if h.buf.Len() > 0 {
		_, _ = h.w.Write(h.buf.Bytes())
		h.buf.Reset()
	}
}

// doctorCommand reports config sources and task file health without
// changing anything on disk.
func (c *cli) doctorCommand(args []string) error {
	// Parse doctor-specific flags
	fs := flag.NewFlagSet("tasks doctor", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := c.stdout
	fmt.Fprintln(w, "Tasks Doctor")
	fmt.Fprintln(w, "============")
	fmt.Fprintln(w)

	allOK := true

	// Config sources
	fmt.Fprintln(w, "Config files:")
	if len(c.cfg.Files) == 0 {
		fmt.Fprintln(w, "  (none, using defaults)")
	}
	for _, f := range c.cfg.Files {
		fmt.Fprintf(w, "  ✅ %s\n", f)
	}
	if _, err := logging.New(io.Discard, c.cfg.LoggingOptions()); err != nil {
		fmt.Fprintf(w, "  ❌ Logging: %v\n", err)
		allOK = false
	} else if *verbose {
		fmt.Fprintf(w, "  Logging: level=%s format=%s\n", c.cfg.LogLevel, c.cfg.LogFormat)
	}
	fmt.Fprintln(w)

	// Task file
	fmt.Fprintf(w, "Task file: %s\n", c.cfg.TaskFile)
	report, err := task.Inspect(c.cfg.TaskFile)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		switch report.State {
		case task.StateMissing:
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first use)")
		case task.StateValid:
			fmt.Fprintf(w, "  ✅ Valid: %d tasks, %d in progress\n", report.Tasks, report.Incomplete)
		case task.StateNotRegular:
			fmt.Fprintln(w, "  ❌ Error: path exists but is not a file")
			allOK = false
		default:
			fmt.Fprintf(w, "  ❌ %s: %v\n", report.State, report.Err)
			fmt.Fprintln(w, "     The next command will back it up and start an empty list.")
			allOK = false
		}
	}

	backupPath := taskdir.BackupPath(c.cfg.TaskFile, c.cfg.BackupSuffix)
	if info, err := os.Stat(backupPath); err == nil {
		fmt.Fprintf(w, "  ⚠️  Backup present: %s (%s)\n", backupPath, info.ModTime().Format("2006-01-02 15:04"))
	} else if *verbose {
		fmt.Fprintf(w, "  Backup path: %s (none)\n", backupPath)
	}
	fmt.Fprintln(w)

	// Overall status
	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasks version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasks - A simple command-line task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasks [options] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add, a <text>           Add a new task")
	fmt.Fprintln(w, "  list, ls, l             List all tasks")
	fmt.Fprintln(w, "  complete, done, c <n>   Mark task n as completed")
	fmt.Fprintln(w, "  remove, rm, r <n>       Remove task n")
	fmt.Fprintln(w, "  progress, i             List tasks in progress")
	fmt.Fprintln(w, "  tui                     Launch terminal UI")
	fmt.Fprintln(w, "  doctor                  Check config and task file health")
	fmt.Fprintln(w, "  config                  Print an example config file")
	fmt.Fprintln(w, "  version                 Show version information")
	fmt.Fprintln(w, "  help                    Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options (use with 'tui' command):")
	fmt.Fprintln(w, "  -incomplete")
	fmt.Fprintln(w, "        Show only tasks in progress")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    Show more details")
}

// printEntries prints a titled table of numbered tasks.
func (c *cli) printEntries(title string, entries []task.Entry) {
	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintln(c.stdout)
	fmt.Fprintln(c.stdout, title)
	fmt.Fprintln(c.stdout, rule)
	for _, e := range entries {
		fmt.Fprintf(c.stdout, "%d. %s\n", e.Index, e.Task)
	}
	fmt.Fprintln(c.stdout, rule)
}

// parseTaskNumber reads the single task number argument of name.
func parseTaskNumber(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s requires exactly one task number", name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", args[0])
	}
	return n, nil
}
