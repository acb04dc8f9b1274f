package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/atlas/internal/querysql"
	"github.com/roach88/atlas/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s\n", event.Seq, event.Type, event.Event)
		}
	}

	return buf.String()
}

// evaluateAssertions runs every assertion and returns the failure messages.
// final_state assertions read the scenario database through a second
// connection.
func (h *Harness) evaluateAssertions(ctx context.Context, result *Result, assertions []Assertion) []string {
	var errs []string
	var st *store.Store

	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertFinalState:
			if st == nil {
				st, err = store.Open(h.dbPath)
				if err != nil {
					errs = append(errs, fmt.Sprintf("final_state: %v", err))
					continue
				}
				defer st.Close()
			}
			err = assertFinalState(ctx, st, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

// assertTraceCount checks the response kind appears exactly Count times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Type == TraceResponse && event.Event == assertion.Event {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Event),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceOrder checks the response kinds appear in the given order.
// Responses don't need to be consecutive (intervening responses are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	next := 0
	for _, event := range trace {
		if next == len(assertion.Events) {
			break
		}
		if event.Type == TraceResponse && event.Event == assertion.Events[next] {
			next++
		}
	}

	if next < len(assertion.Events) {
		return &AssertionError{
			Type:     AssertTraceOrder,
			Expected: fmt.Sprintf("responses in order: %v", assertion.Events),
			Actual:   fmt.Sprintf("%s not found after %v", assertion.Events[next], assertion.Events[:next]),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState checks that exactly one row of the table matches Where
// and that it holds the Expect values.
func assertFinalState(ctx context.Context, st *store.Store, assertion Assertion) error {
	columns := sortedKeys(assertion.Expect)
	var filter querysql.And
	for _, col := range sortedKeys(assertion.Where) {
		filter.Predicates = append(filter.Predicates, querysql.Equals{Field: col, Value: assertion.Where[col]})
	}

	query, params, err := querysql.NewSQLCompiler().CompileSelect(querysql.Select{
		From:    assertion.Table,
		Columns: columns,
		Filter:  filter,
	})
	if err != nil {
		return fmt.Errorf("final_state: %w", err)
	}

	rows, err := st.DB().QueryxContext(ctx, query, params...)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("query table %s", assertion.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}
	defer rows.Close()

	var matched []map[string]any
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return fmt.Errorf("final_state: scan row: %w", err)
		}
		matched = append(matched, row)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("final_state: %w", err)
	}

	whereDesc := formatFields(assertion.Where)
	switch len(matched) {
	case 0:
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("row in %s where %s", assertion.Table, whereDesc),
			Actual:   "row not found",
		}
	case 1:
	default:
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one row in %s where %s", assertion.Table, whereDesc),
			Actual:   fmt.Sprintf("%d rows matched (assertion is ambiguous)", len(matched)),
		}
	}

	row := matched[0]
	for _, col := range columns {
		got := row[col]
		if b, ok := got.([]byte); ok {
			got = string(b)
		}
		if !valuesEqual(assertion.Expect[col], got) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("%s.%s = %v where %s", assertion.Table, col, assertion.Expect[col], whereDesc),
				Actual:   fmt.Sprintf("%v", got),
			}
		}
	}
	return nil
}

// valuesEqual compares a value written in scenario YAML with one read from
// JSON or SQLite. Numbers compare by their printed form, so 3 (YAML int),
// 3.0 (JSON number) and int64(3) (SQLite) are equal.
func valuesEqual(want, got any) bool {
	if want == nil || got == nil {
		return want == nil && got == nil
	}
	return fmt.Sprint(want) == fmt.Sprint(got)
}

// sortedKeys returns the keys of m in order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatFields renders filters as "a=1 AND b=2" for messages.
func formatFields(m map[string]any) string {
	if len(m) == 0 {
		return "(all rows)"
	}
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, " AND ")
}
