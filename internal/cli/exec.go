package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/atlas/internal/engine"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Database string
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <script.yaml>",
		Short: "Run a script of request events",
		Long: `Run a YAML list of request events through the engine and print every
response.

When --db (or ATLAS_DB) is set the database is opened first; otherwise the
script is expected to send OpenDatabase itself. Processing stops after Quit.
The exit code is 1 when any request produced a failure event.

Script format:
  - event: OpenDatabase
    args: {path: geo.db}
  - event: SaveNewContinent
    args: {continent_code: NA, name: North America}
  - event: StartContinentSearch
    args: {continent_code: NA}

Example:
  atlas exec --db ./geo.db ./seed.yaml
  atlas exec ./script.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $ATLAS_DB)")

	return cmd
}

func runExec(opts *ExecOptions, scriptPath string, cmd *cobra.Command) error {
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read script", err)
	}
	requests, err := engine.ParseScript(data)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse script", err)
	}

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

	slog.Debug("running script", "path", scriptPath, "requests", len(requests))
	for i, req := range requests {
		ended, err := s.submit(ctx, req)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		if ended {
			if rest := len(requests) - i - 1; rest > 0 {
				s.out.VerboseLog("Quit received; skipping %d remaining requests", rest)
			}
			break
		}
	}

	return s.result()
}
