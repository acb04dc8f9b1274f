package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/atlas/internal/engine"
)

// Database modes.
const (
	// DatabaseFresh opens an empty database with the schema before setup.
	DatabaseFresh = "fresh"

	// DatabaseNone leaves the engine without an open database.
	DatabaseNone = "none"
)

// Scenario defines a scripted run of the engine.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Database is DatabaseFresh (default) or DatabaseNone.
	Database string `yaml:"database,omitempty"`

	// Setup contains requests run before the flow.
	// Each must succeed and none appear in the trace.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the traced requests.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final trace and database contents.
	// Supported types: trace_count, trace_order, final_state
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one request and, optionally, the responses it must produce.
type Step struct {
	// Event is the request kind (e.g. "SaveNewCountry").
	Event string `yaml:"event"`

	// Args is the request payload, decoded by engine.DecodeEvent.
	Args yaml.Node `yaml:"args,omitempty"`

	// Expect lists the responses in order. If empty, responses are traced
	// but not checked.
	Expect []Expectation `yaml:"expect,omitempty"`
}

// Request builds the engine request of the step.
func (s Step) Request() (engine.Event, error) {
	return engine.Envelope{Event: s.Event, Args: s.Args}.Decode()
}

// Expectation specifies one expected response.
type Expectation struct {
	// Event is the expected response kind.
	Event string `yaml:"event"`

	// Fields contains expected payload values under their JSON names.
	// This is a subset match; a null value expects a NULL or absent field.
	Fields map[string]any `yaml:"fields,omitempty"`
}

// Assertion validates the trace or the final database.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_count": Event appears exactly Count times among responses
	// - "trace_order": Events appear in order among responses
	// - "final_state": exactly one row of Table matches Where and has Expect
	Type string `yaml:"type"`

	// Event is the response kind (used by trace_count).
	Event string `yaml:"event,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`

	// Events is the expected response order (used by trace_order).
	Events []string `yaml:"events,omitempty"`

	// Table is the table name (used by final_state).
	Table string `yaml:"table,omitempty"`

	// Where specifies column equality filters (used by final_state).
	Where map[string]any `yaml:"where,omitempty"`

	// Expect contains expected column values (used by final_state).
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceCount = "trace_count"
	AssertTraceOrder = "trace_order"
	AssertFinalState = "final_state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Database {
	case "", DatabaseFresh, DatabaseNone:
	default:
		return fmt.Errorf("database must be %q or %q, got %q", DatabaseFresh, DatabaseNone, s.Database)
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
		for j, exp := range step.Expect {
			if exp.Event == "" {
				return fmt.Errorf("flow[%d].expect[%d]: event is required", i, j)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks the step names a request with a well-formed payload.
func validateStep(step Step) error {
	if step.Event == "" {
		return fmt.Errorf("event is required")
	}
	if _, err := step.Request(); err != nil {
		return err
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceCount:
		if a.Event == "" {
			return fmt.Errorf("assertions[%d]: event is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertTraceOrder:
		if len(a.Events) == 0 {
			return fmt.Errorf("assertions[%d]: events list is required for trace_order", index)
		}
	case AssertFinalState:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
