package cli

import (
	"bufio"
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/atlas/internal/engine"
)

// ShellOptions holds flags for the shell command.
type ShellOptions struct {
	*RootOptions
	Database string
}

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShellOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read request events from stdin, one per line",
		Long: `Read one request event per line from standard input and print the
responses. Lines use JSON or YAML flow syntax; blank lines and lines
starting with # are ignored. The shell stops at Quit or end of input.
A line that cannot be decoded is reported and counted as a failure.

Example:
  atlas shell --db ./geo.db
  {event: StartCountrySearch, args: {country_code: FR}}
  {"event": "LoadRegion", "args": {"id": 3}}
  {event: Quit}`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $ATLAS_DB)")

	return cmd
}

func runShell(opts *ShellOptions, cmd *cobra.Command) error {
	s := newSession(opts.RootOptions, cmd)
	defer s.close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if path := opts.databasePath(opts.Database); path != "" {
		if err := s.open(ctx, path); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		req, err := engine.ParseEvent([]byte(line))
		if err != nil {
			s.failures++
			if err := s.out.Error("E_DECODE", err.Error(), map[string]int{"line": lineNo}); err != nil {
				return err
			}
			continue
		}

		ended, err := s.submit(ctx, req)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		if ended {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return nil
}
