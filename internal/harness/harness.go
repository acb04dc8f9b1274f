package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/atlas/internal/engine"
	"github.com/roach88/atlas/internal/store"
	"github.com/roach88/atlas/internal/testutil"
)

// Harness is the scenario execution state.
type Harness struct {
	engine *engine.Engine
	dbPath string
	seq    int64
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh database file in a temporary directory
// that is removed afterwards.
//
// Execution flow:
// 1. Create the database and, unless Database is "none", open it
// 2. Execute setup steps, failing on any failure response
// 3. Execute flow steps, tracing requests and responses
// 4. Check expectations and assertions
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "atlas-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	dbPath := filepath.Join(dir, "atlas.db")
	st, err := store.Create(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario database: %w", err)
	}
	if err := st.Close(); err != nil {
		return nil, fmt.Errorf("failed to close scenario database: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	eng := engine.New(
		engine.WithTraceGenerator(testutil.NewSequenceTokens(scenario.Name)),
		engine.WithLogger(logger),
	)
	defer eng.Close()

	h := &Harness{
		engine: eng,
		dbPath: dbPath,
		logger: logger,
	}

	ctx := context.Background()

	if scenario.Database != DatabaseNone {
		if err := h.openDatabase(ctx); err != nil {
			return nil, err
		}
	}

	if err := h.executeSetup(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	result := NewResult()
	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	for _, errMsg := range h.evaluateAssertions(ctx, result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

func (h *Harness) openDatabase(ctx context.Context) error {
	responses := h.engine.Handle(ctx, engine.OpenDatabase{Path: h.dbPath})
	if len(responses) != 1 {
		return fmt.Errorf("open database: expected one response, got %d", len(responses))
	}
	if _, ok := responses[0].(engine.DatabaseOpened); !ok {
		return fmt.Errorf("open database: %s", describeResponse(responses[0]))
	}
	return nil
}

// executeSetup runs all setup steps. Any failure response aborts the run.
func (h *Harness) executeSetup(ctx context.Context, setup []Step) error {
	for i, step := range setup {
		req, err := step.Request()
		if err != nil {
			return fmt.Errorf("setup step %d: %w", i, err)
		}
		for resp := range h.engine.Process(ctx, req) {
			if _, failed := engine.Failure(resp); failed {
				return fmt.Errorf("setup step %d (%s): %s", i, step.Event, describeResponse(resp))
			}
		}
	}
	return nil
}

// executeFlow runs the flow steps, tracing each request and its responses
// and checking step expectations.
func (h *Harness) executeFlow(ctx context.Context, flow []Step, result *Result) error {
	for i, step := range flow {
		req, err := step.Request()
		if err != nil {
			return fmt.Errorf("flow step %d: %w", i, err)
		}

		h.seq++
		result.AddRequestTrace(req, h.seq)
		h.logger.Debug("flow step", "index", i, "event", step.Event)

		var responses []engine.Event
		for resp := range h.engine.Process(ctx, req) {
			h.seq++
			result.AddResponseTrace(resp, h.seq)
			responses = append(responses, resp)
		}

		if len(step.Expect) > 0 {
			for _, msg := range checkExpectations(i, step, responses) {
				result.AddError(msg)
			}
		}
	}
	return nil
}

// checkExpectations compares responses against the step's expectations.
func checkExpectations(index int, step Step, responses []engine.Event) []string {
	if len(responses) != len(step.Expect) {
		kinds := make([]string, len(responses))
		for i, r := range responses {
			kinds[i] = r.Kind()
		}
		return []string{fmt.Sprintf("flow[%d] %s: expected %d responses, got %d %v",
			index, step.Event, len(step.Expect), len(responses), kinds)}
	}

	var errs []string
	for i, exp := range step.Expect {
		got := responses[i]
		if got.Kind() != exp.Event {
			errs = append(errs, fmt.Sprintf("flow[%d] %s: response %d: expected %s, got %s",
				index, step.Event, i, exp.Event, describeResponse(got)))
			continue
		}
		if len(exp.Fields) == 0 {
			continue
		}

		fields, err := toMap(got)
		if err != nil {
			errs = append(errs, fmt.Sprintf("flow[%d] %s: response %d: %v", index, step.Event, i, err))
			continue
		}
		for _, key := range sortedKeys(exp.Fields) {
			if !valuesEqual(exp.Fields[key], fields[key]) {
				errs = append(errs, fmt.Sprintf("flow[%d] %s: response %d: field %s: expected %v, got %v",
					index, step.Event, i, key, exp.Fields[key], fields[key]))
			}
		}
	}
	return errs
}

// describeResponse renders a response with its failure message, if any.
func describeResponse(ev engine.Event) string {
	if msg, failed := engine.Failure(ev); failed {
		return fmt.Sprintf("%s: %s", ev.Kind(), msg)
	}
	return ev.Kind()
}

// toMap converts an event payload to its JSON field map.
func toMap(ev engine.Event) (map[string]any, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", ev.Kind(), err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", ev.Kind(), err)
	}
	return fields, nil
}
