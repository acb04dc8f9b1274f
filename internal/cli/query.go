package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/atlas/internal/engine"
	"github.com/roach88/atlas/internal/geo"
)

// Entities accepted by search and load.
var Entities = []string{geo.EntityContinent, geo.EntityCountry, geo.EntityRegion}

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Database  string
	Code      string
	Name      string
	LocalCode string
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <continent|country|region>",
		Short: "Search an entity table",
		Long: `Search continents, countries or regions by exact code and name.
Filters left empty are ignored; with no filters every row is listed.

Example:
  atlas search continent --db ./geo.db --code NA
  atlas search region --db ./geo.db --local-code CA --format json`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     Entities,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := searchRequest(args[0], opts)
			if err != nil {
				return err
			}
			return runQuery(opts.RootOptions, opts.Database, req, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $ATLAS_DB)")
	cmd.Flags().StringVar(&opts.Code, "code", "", "continent, country or region code")
	cmd.Flags().StringVar(&opts.Name, "name", "", "exact name")
	cmd.Flags().StringVar(&opts.LocalCode, "local-code", "", "region local code (regions only)")

	return cmd
}

func searchRequest(entity string, opts *SearchOptions) (engine.Event, error) {
	if opts.LocalCode != "" && entity != geo.EntityRegion {
		return nil, NewExitError(ExitCommandError, "--local-code only applies to regions")
	}

	switch entity {
	case geo.EntityContinent:
		return engine.StartContinentSearch{ContinentFilter: geo.ContinentFilter{Code: opts.Code, Name: opts.Name}}, nil
	case geo.EntityCountry:
		return engine.StartCountrySearch{CountryFilter: geo.CountryFilter{Code: opts.Code, Name: opts.Name}}, nil
	case geo.EntityRegion:
		return engine.StartRegionSearch{RegionFilter: geo.RegionFilter{Code: opts.Code, LocalCode: opts.LocalCode, Name: opts.Name}}, nil
	default:
		return nil, unknownEntity(entity)
	}
}

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Database string
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <continent|country|region> <id>",
		Short: "Load one row by id",
		Long: `Load a continent, country or region by its numeric id.

Example:
  atlas load country --db ./geo.db 42`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(args[0], args[1])
			if err != nil {
				return err
			}
			return runQuery(opts.RootOptions, opts.Database, req, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $ATLAS_DB)")

	return cmd
}

func loadRequest(entity, rawID string) (engine.Event, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q: must be a positive integer", rawID))
	}

	switch entity {
	case geo.EntityContinent:
		return engine.LoadContinent{ID: id}, nil
	case geo.EntityCountry:
		return engine.LoadCountry{ID: id}, nil
	case geo.EntityRegion:
		return engine.LoadRegion{ID: id}, nil
	default:
		return nil, unknownEntity(entity)
	}
}

func unknownEntity(entity string) error {
	return NewExitError(ExitCommandError, fmt.Sprintf("unknown entity %q: must be one of %v", entity, Entities))
}

// runQuery opens the database, submits one request and prints the
// responses. Only the responses are printed; the DatabaseOpened line is
// shown in verbose mode.
func runQuery(opts *RootOptions, dbFlag string, req engine.Event, cmd *cobra.Command) error {
	s := newSession(opts, cmd)
	defer s.close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path := opts.databasePath(dbFlag)
	if path == "" {
		return NewExitError(ExitCommandError, "no database path (use --db or ATLAS_DB)")
	}
	for ev := range s.engine.Process(ctx, engine.OpenDatabase{Path: path}) {
		if msg, failed := engine.Failure(ev); failed {
			return NewExitError(ExitCommandError, msg)
		}
		s.out.VerboseLog("%s %s", ev.Kind(), path)
	}

	if _, err := s.submit(ctx, req); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	return s.result()
}
