package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/atlas/internal/engine"
)

// session drives one engine for a command and prints every response.
type session struct {
	engine   *engine.Engine
	out      *OutputFormatter
	failures int
}

// newSession configures logging and creates an engine with no database.
func newSession(opts *RootOptions, cmd *cobra.Command) *session {
	logger := setupLogging(opts, cmd.ErrOrStderr())

	return &session{
		engine: engine.New(engine.WithLogger(logger)),
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
	}
}

// setupLogging installs a text handler on w as the default logger.
// --verbose forces debug level; otherwise ATLAS_LOG_LEVEL applies.
func setupLogging(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if level, err := opts.Config.Level(); err == nil && opts.Config.LogLevel != "" {
		logLevel = level
	}
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// open opens the database at path. A DatabaseOpenFailed response is a
// command error.
func (s *session) open(ctx context.Context, path string) error {
	if path == "" {
		return NewExitError(ExitCommandError, "no database path (use --db or ATLAS_DB)")
	}

	var failure string
	for ev := range s.engine.Process(ctx, engine.OpenDatabase{Path: path}) {
		if err := s.out.Event(ev); err != nil {
			return err
		}
		if msg, failed := engine.Failure(ev); failed {
			failure = msg
		}
	}
	if failure != "" {
		return NewExitError(ExitCommandError, failure)
	}
	return nil
}

// submit processes one request and prints its responses. It reports
// whether the engine ended the application.
func (s *session) submit(ctx context.Context, req engine.Event) (ended bool, err error) {
	for ev := range s.engine.Process(ctx, req) {
		if err := s.out.Event(ev); err != nil {
			return false, err
		}
		if _, failed := engine.Failure(ev); failed {
			s.failures++
		}
		if _, ok := ev.(engine.EndApplication); ok {
			ended = true
		}
	}
	return ended, nil
}

// result turns the failure count into the command's exit status.
func (s *session) result() error {
	if s.failures > 0 {
		return NewExitError(ExitFailure, pluralize(s.failures, "request failed", "requests failed"))
	}
	return nil
}

func (s *session) close() {
	if err := s.engine.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
