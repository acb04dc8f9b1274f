package harness

import (
	"github.com/roach88/atlas/internal/engine"
)

// Trace event types.
const (
	TraceRequest  = "request"
	TraceResponse = "response"
)

// TraceEvent is one request or response in a scenario trace.
type TraceEvent struct {
	Seq   int64        `json:"seq"`
	Type  string       `json:"type"` // "request" or "response"
	Event string       `json:"event"`
	Data  engine.Event `json:"data"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every flow request and its responses in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddRequestTrace appends a request to the trace.
func (r *Result) AddRequestTrace(ev engine.Event, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:   seq,
		Type:  TraceRequest,
		Event: ev.Kind(),
		Data:  ev,
	})
}

// AddResponseTrace appends a response to the trace.
func (r *Result) AddResponseTrace(ev engine.Event, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:   seq,
		Type:  TraceResponse,
		Event: ev.Kind(),
		Data:  ev,
	})
}

// Responses returns the kinds of every response in the trace.
func (r *Result) Responses() []string {
	var kinds []string
	for _, ev := range r.Trace {
		if ev.Type == TraceResponse {
			kinds = append(kinds, ev.Event)
		}
	}
	return kinds
}
