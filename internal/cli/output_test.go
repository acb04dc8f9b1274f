package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/atlas/internal/engine"
	"github.com/roach88/atlas/internal/geo"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"path": "atlas.db"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E_DECODE", "bad event", map[string]int{"line": 3})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_DECODE", resp.Error.Code)
	assert.Equal(t, "bad event", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Error("E_OPEN", "cannot open", "ignored unless verbose"))

	assert.Equal(t, "Error [E_OPEN]: cannot open\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	require.NoError(t, formatter.Error("E_OPEN", "cannot open", "missing table"))

	assert.Contains(t, buf.String(), "Details: missing table")
}

func TestOutputFormatter_TextEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   engine.Event
		want string
	}{
		{
			name: "payload",
			ev:   engine.ContinentSaved{Continent: geo.Continent{ID: 1, Code: "NA", Name: "North America"}},
			want: `ContinentSaved {"continent_id":1,"continent_code":"NA","name":"North America"}` + "\n",
		},
		{
			name: "failure",
			ev:   engine.Error{Message: "No result matches"},
			want: "Error: No result matches\n",
		},
		{
			name: "empty",
			ev:   engine.DatabaseClosed{},
			want: "DatabaseClosed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf}

			require.NoError(t, formatter.Event(tt.ev))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestOutputFormatter_JSONEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Event(engine.DatabaseOpened{Path: "atlas.db"}))
	require.NoError(t, formatter.Event(engine.SaveCountryFailed{Message: "nope"}))

	assert.Equal(t,
		`{"event":"DatabaseOpened","data":{"path":"atlas.db"}}`+"\n"+
			`{"event":"SaveCountryFailed","data":{"message":"nope"}}`+"\n",
		buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Processing %s", "script.yaml")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Processing script.yaml")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("diagnostic")

	assert.Empty(t, out.String())
	assert.Equal(t, "diagnostic\n", errOut.String())
	assert.Same(t, errOut, formatter.GetErrWriter())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitFailure, "failed", errors.New("inner")))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.Equal(t, "outer: failed: inner", wrapped.Error())
}
