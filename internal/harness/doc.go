// Package harness runs scripted scenarios against the atlas engine.
//
// A scenario is a YAML file naming a sequence of request events. The
// harness creates a throwaway database with the schema, opens it in a real
// engine, submits each request and records every request and response in a
// trace. The trace is then checked three ways:
//
//   - Per-step expectations: the response kinds (and optionally a subset of
//     their fields) each request must produce.
//   - Assertions over the whole trace (trace_count, trace_order) and over the
//     final database contents (final_state).
//   - Golden comparison: RunWithGolden serializes the trace to JSON and
//     compares it against testdata/golden/<name>.golden.
//
// Trace tokens come from testutil.SequenceTokens and the database path
// never appears in the trace, so the same scenario always produces the same
// golden output.
//
// # Scenario Format
//
//	name: continent_crud
//	description: Insert, find and rename a continent
//	setup:
//	  - event: SaveNewContinent
//	    args: {continent_code: EU, name: Europe}
//	flow:
//	  - event: StartContinentSearch
//	    args: {continent_code: EU}
//	    expect:
//	      - event: ContinentSearchResult
//	        fields: {name: Europe}
//	assertions:
//	  - type: final_state
//	    table: continent
//	    where: {continent_code: EU}
//	    expect: {name: Europe}
//
// Setup steps must succeed and are left out of the trace.
package harness
