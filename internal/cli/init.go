package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/atlas/internal/store"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Database string
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a database with the atlas schema",
		Long: `Create a SQLite database holding the continent, country and region
tables. Running init on an existing atlas database leaves its rows alone.

Example:
  atlas init --db ./geo.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $ATLAS_DB)")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	setupLogging(opts.RootOptions, cmd.ErrOrStderr())

	path := opts.databasePath(opts.Database)
	if path == "" {
		return NewExitError(ExitCommandError, "no database path (use --db or ATLAS_DB)")
	}

	slog.Info("creating database", "path", path)
	st, err := store.Create(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create database", err)
	}
	if err := st.Close(); err != nil {
		return WrapExitError(ExitCommandError, "failed to close database", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(map[string]string{"path": path})
	}
	return out.Success(fmt.Sprintf("Created database %s", path))
}
