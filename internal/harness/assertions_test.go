package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/atlas/internal/engine"
)

func sampleTrace() []TraceEvent {
	r := NewResult()
	r.AddRequestTrace(engine.OpenDatabase{Path: "a.db"}, 1)
	r.AddResponseTrace(engine.DatabaseOpened{Path: "a.db"}, 2)
	r.AddRequestTrace(engine.StartContinentSearch{}, 3)
	r.AddResponseTrace(engine.ContinentSearchResult{}, 4)
	r.AddResponseTrace(engine.ContinentSearchResult{}, 5)
	r.AddRequestTrace(engine.Quit{}, 6)
	r.AddResponseTrace(engine.EndApplication{}, 7)
	return r.Trace
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Event: "ContinentSearchResult", Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Event: "Error", Count: 0}))
	// Requests are not counted.
	assert.NoError(t, assertTraceCount(trace, Assertion{Event: "Quit", Count: 0}))

	err := assertTraceCount(trace, Assertion{Event: "EndApplication", Count: 2})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceCount, ae.Type)
	assert.Contains(t, err.Error(), "[7] response EndApplication")
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Events: []string{"DatabaseOpened", "EndApplication"}}))
	assert.NoError(t, assertTraceOrder(trace, Assertion{Events: []string{"ContinentSearchResult", "ContinentSearchResult"}}))

	err := assertTraceOrder(trace, Assertion{Events: []string{"EndApplication", "DatabaseOpened"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseOpened not found after [EndApplication]")
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(nil, nil))
	assert.True(t, valuesEqual(3, float64(3)))
	assert.True(t, valuesEqual(3, int64(3)))
	assert.True(t, valuesEqual("NA", "NA"))
	assert.False(t, valuesEqual(nil, ""))
	assert.False(t, valuesEqual("", nil))
	assert.False(t, valuesEqual("3", "4"))
}

func TestFormatFields(t *testing.T) {
	assert.Equal(t, "(all rows)", formatFields(nil))
	assert.Equal(t, "a=1 AND b=x", formatFields(map[string]any{"b": "x", "a": 1}))
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)

	r.AddError("boom")

	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
