package engine

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Envelope is the serialized form of a request: its kind and its payload.
//
// Scripts and shell lines use it in either YAML or JSON syntax:
//
//	- event: OpenDatabase
//	  args: {path: atlas.db}
//	- event: StartContinentSearch
//	  args: {continent_code: NA}
//	- event: Quit
type Envelope struct {
	Event string    `yaml:"event"`
	Args  yaml.Node `yaml:"args,omitempty"`
}

// Decode builds the request described by the envelope.
func (env Envelope) Decode() (Event, error) {
	return DecodeEvent(env.Event, &env.Args)
}

type decodeFunc func(node *yaml.Node) (Event, error)

// requests maps every request kind to its decoder. Response kinds are
// absent: they are produced by the engine, never sent to it.
var requests = map[string]decodeFunc{
	"Quit":          decodeAs[Quit],
	"OpenDatabase":  decodeAs[OpenDatabase],
	"CloseDatabase": decodeAs[CloseDatabase],

	"StartContinentSearch": decodeAs[StartContinentSearch],
	"LoadContinent":        decodeAs[LoadContinent],
	"SaveNewContinent":     decodeAs[SaveNewContinent],
	"SaveContinent":        decodeAs[SaveContinent],

	"StartCountrySearch": decodeAs[StartCountrySearch],
	"LoadCountry":        decodeAs[LoadCountry],
	"SaveNewCountry":     decodeAs[SaveNewCountry],
	"SaveCountry":        decodeAs[SaveCountry],

	"StartRegionSearch": decodeAs[StartRegionSearch],
	"LoadRegion":        decodeAs[LoadRegion],
	"SaveNewRegion":     decodeAs[SaveNewRegion],
	"SaveRegion":        decodeAs[SaveRegion],
}

// RequestKinds returns the names of every request event, sorted.
func RequestKinds() []string {
	kinds := make([]string, 0, len(requests))
	for k := range requests {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// DecodeEvent builds the request named kind from its payload.
//
// node may be nil or empty for requests without fields. Unknown payload
// fields are rejected.
func DecodeEvent(kind string, node *yaml.Node) (Event, error) {
	decode, ok := requests[kind]
	if !ok {
		return nil, &DecodeError{Kind: kind, Err: ErrUnknownEvent}
	}
	ev, err := decode(node)
	if err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	return ev, nil
}

// ParseEvent decodes one envelope from YAML or JSON text.
func ParseEvent(data []byte) (Event, error) {
	var env Envelope
	if err := decodeStrict(data, &env); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if env.Event == "" {
		return nil, &DecodeError{Err: errors.New("missing event name")}
	}
	return env.Decode()
}

// ParseScript decodes a YAML list of envelopes.
func ParseScript(data []byte) ([]Event, error) {
	var envs []Envelope
	if err := decodeStrict(data, &envs); err != nil {
		return nil, &DecodeError{Err: err}
	}

	events := make([]Event, 0, len(envs))
	for i, env := range envs {
		ev, err := env.Decode()
		if err != nil {
			return nil, fmt.Errorf("script entry %d: %w", i+1, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeAs[T Event](node *yaml.Node) (Event, error) {
	var ev T
	if node == nil || node.Kind == 0 {
		return ev, nil
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return ev, nil
	}

	// Re-encode so the payload goes through a decoder that rejects
	// unknown fields.
	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, err
	}
	if err := decodeStrict(data, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}
