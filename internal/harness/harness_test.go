package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Scenario {
	t.Helper()
	scenario, err := ParseScenario([]byte(src))
	require.NoError(t, err)
	return scenario
}

func TestRun_PassingScenario(t *testing.T) {
	scenario := mustParse(t, `
name: pass
description: save then search
setup:
  - event: SaveNewContinent
    args: {continent_code: EU, name: Europe}
flow:
  - event: StartContinentSearch
    expect:
      - event: ContinentSearchResult
        fields: {continent_code: EU, name: Europe}
assertions:
  - type: trace_count
    event: ContinentSearchResult
    count: 1
  - type: final_state
    table: continent
    where: {continent_code: EU}
    expect: {name: Europe}
`)

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"ContinentSearchResult"}, result.Responses())
	require.Len(t, result.Trace, 2, "setup steps are not traced")
	assert.Equal(t, TraceRequest, result.Trace[0].Type)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
}

func TestRun_NoDatabase(t *testing.T) {
	scenario := mustParse(t, `
name: closed
description: requests without a database fail
database: none
flow:
  - event: SaveNewCountry
    args: {country_code: FR, name: France, continent_id: 1}
    expect:
      - event: SaveCountryFailed
        fields: {message: database is not open}
`)

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_SetupFailureAborts(t *testing.T) {
	scenario := mustParse(t, `
name: bad_setup
description: setup must succeed
setup:
  - event: SaveNewContinent
    args: {continent_code: europe, name: Europe}
flow:
  - event: Quit
`)

	_, err := Run(scenario)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup step 0 (SaveNewContinent): SaveContinentFailed")
}

func TestRun_ReportsExpectationFailures(t *testing.T) {
	scenario := mustParse(t, `
name: mismatch
description: every kind of expectation failure
flow:
  - event: StartContinentSearch
    expect:
      - event: ContinentSearchResult
  - event: SaveNewContinent
    args: {continent_code: EU, name: Europe}
    expect:
      - event: ContinentSaved
        fields: {name: Europa}
  - event: LoadContinent
    args: {id: 1}
    expect:
      - event: ContinentLoaded
      - event: ContinentLoaded
`)

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "expected ContinentSearchResult, got Error: No result matches")
	assert.Contains(t, result.Errors[1], "field name: expected Europa, got Europe")
	assert.Contains(t, result.Errors[2], "expected 2 responses, got 1")
}

func TestRun_ReportsAssertionFailures(t *testing.T) {
	scenario := mustParse(t, `
name: assertions
description: failing assertions
flow:
  - event: SaveNewContinent
    args: {continent_code: EU, name: Europe}
assertions:
  - type: trace_count
    event: ContinentSaved
    count: 2
  - type: final_state
    table: continent
    where: {continent_code: NA}
    expect: {name: North America}
`)

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "2 occurrences of ContinentSaved")
	assert.Contains(t, result.Errors[1], "row not found")
}
