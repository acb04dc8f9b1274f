package engine

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/jmoiron/sqlx"

	"github.com/roach88/atlas/internal/store"
)

// Engine translates request events into database operations.
//
// The engine owns at most one open store. Requests are handled one at a
// time by the caller's goroutine: Process does no work until its sequence
// is iterated, and the sequence must be drained (or abandoned) before the
// next request is submitted.
//
// Thread-safety: Engine is not safe for concurrent use.
type Engine struct {
	store    *store.Store
	traceGen TraceTokenGenerator
	logger   *slog.Logger
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithTraceGenerator sets the generator of per-request trace tokens.
//
// Default: UUIDv7Generator. Tests use testutil.SequenceTokens for stable
// log output.
func WithTraceGenerator(gen TraceTokenGenerator) EngineOption {
	return func(e *Engine) {
		e.traceGen = gen
	}
}

// WithLogger sets the logger used for request tracing.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine with no open database.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		traceGen: UUIDv7Generator{},
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Process returns the responses to ev as a lazy sequence.
//
// Nothing happens until the sequence is iterated. The sequence is finite,
// ordered and single-use: a second iteration yields nothing. Failures are
// reported as failure events; Process never panics on bad input and never
// returns an error.
func (e *Engine) Process(ctx context.Context, ev Event) iter.Seq[Event] {
	consumed := false
	return func(yield func(Event) bool) {
		if consumed {
			return
		}
		consumed = true

		trace := e.traceGen.Generate()
		kind := "<nil>"
		if ev != nil {
			kind = ev.Kind()
		}
		log := e.logger.With("trace", trace, "event", kind)
		log.Debug("processing event")

		responses := e.dispatch(ctx, ev)
		for i, out := range responses {
			log.Debug("response", "index", i, "kind", out.Kind())
			if !yield(out) {
				log.Debug("caller stopped early", "delivered", i+1, "total", len(responses))
				return
			}
		}
		log.Debug("event processed", "responses", len(responses))
	}
}

// Handle processes ev and collects every response.
func (e *Engine) Handle(ctx context.Context, ev Event) []Event {
	return slices.Collect(e.Process(ctx, ev))
}

// IsOpen reports whether a database is open.
func (e *Engine) IsOpen() bool {
	return e.store.IsOpen()
}

// Close releases the open database, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store = nil
	return err
}

// dispatch routes one request to its handler.
func (e *Engine) dispatch(ctx context.Context, ev Event) []Event {
	switch ev := ev.(type) {
	case Quit:
		e.closeStore()
		return []Event{EndApplication{}}
	case OpenDatabase:
		return []Event{e.openDatabase(ev.Path)}
	case CloseDatabase:
		e.closeStore()
		return []Event{DatabaseClosed{}}

	case StartContinentSearch:
		return e.searchContinents(ctx, ev.ContinentFilter)
	case LoadContinent:
		return []Event{e.loadContinent(ctx, ev.ID)}
	case SaveNewContinent:
		return []Event{e.saveNewContinent(ctx, ev.Continent)}
	case SaveContinent:
		return []Event{e.saveContinent(ctx, ev.Continent)}

	case StartCountrySearch:
		return e.searchCountries(ctx, ev.CountryFilter)
	case LoadCountry:
		return []Event{e.loadCountry(ctx, ev.ID)}
	case SaveNewCountry:
		return []Event{e.saveNewCountry(ctx, ev.Country)}
	case SaveCountry:
		return []Event{e.saveCountry(ctx, ev.Country)}

	case StartRegionSearch:
		return e.searchRegions(ctx, ev.RegionFilter)
	case LoadRegion:
		return []Event{e.loadRegion(ctx, ev.ID)}
	case SaveNewRegion:
		return []Event{e.saveNewRegion(ctx, ev.Region)}
	case SaveRegion:
		return []Event{e.saveRegion(ctx, ev.Region)}

	case nil:
		return []Event{Error{Message: ErrUnknownEvent.Error()}}
	default:
		return []Event{Error{Message: fmt.Sprintf("%v: %s", ErrUnknownEvent, ev.Kind())}}
	}
}

// openDatabase replaces the open store with the database at path.
func (e *Engine) openDatabase(path string) Event {
	e.closeStore()

	s, err := store.Open(path)
	if err != nil {
		e.logger.Warn("failed to open database", "path", path, "error", err)
		return DatabaseOpenFailed{Message: openFailure(err)}
	}

	e.store = s
	e.logger.Info("database opened", "path", path)
	return DatabaseOpened{Path: path}
}

func (e *Engine) closeStore() {
	if e.store == nil {
		return
	}
	path := e.store.Path()
	if err := e.Close(); err != nil {
		e.logger.Warn("failed to close database", "path", path, "error", err)
		return
	}
	e.logger.Info("database closed", "path", path)
}

// db returns the connection entity requests run against.
func (e *Engine) db() (*sqlx.DB, error) {
	if !e.store.IsOpen() {
		return nil, ErrNotConnected
	}
	return e.store.DB(), nil
}
