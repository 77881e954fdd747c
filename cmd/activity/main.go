// Command activity prints a GitHub user's recent public activity.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nibzard/tasks-go/internal/activity"
	"github.com/nibzard/tasks-go/internal/config"
	"github.com/nibzard/tasks-go/internal/logging"
)

var errUsage = errors.New("usage: activity [options] <username>")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("activity", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: activity [options] <username>")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}

	cfg, err := config.LoadActivity(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return flag.ErrHelp
		}
		return err
	}
	logger, err := logging.New(stderr, cfg.LoggingOptions())
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	if fs.NArg() != 1 {
		return errUsage
	}
	username := strings.TrimSpace(fs.Arg(0))
	if username == "" {
		return errors.New("username cannot be empty")
	}

	fmt.Fprintf(stdout, "Fetching activity for user: %s\n\n", username)

	client := activity.NewClient(
		activity.WithBaseURL(cfg.Activity.APIURL),
		activity.WithTimeout(cfg.Activity.Timeout()),
	)
	logger.Debug("requesting events", "user", username, "api", cfg.Activity.APIURL)
	events, err := client.Events(ctx, username)
	if err != nil {
		return describeFetchError(err)
	}
	logger.Debug("received events", "count", len(events))

	if len(events) == 0 {
		fmt.Fprintln(stdout, "No recent activity.")
		return nil
	}
	for _, line := range activity.Lines(events, cfg.Activity.Limit) {
		fmt.Fprintln(stdout, line)
	}
	return nil
}

// describeFetchError adds context to transport failures. API responses
// already carry their own message.
func describeFetchError(err error) error {
	var httpErr *activity.HTTPError
	switch {
	case errors.Is(err, activity.ErrUserNotFound),
		errors.Is(err, activity.ErrRateLimited),
		errors.As(err, &httpErr):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("request timed out: %w", err)
	default:
		return fmt.Errorf("network error: %w", err)
	}
}
