package engine

import (
	"github.com/roach88/atlas/internal/geo"
)

// Event is a discrete message exchanged with the engine: either a request
// from the user interface or a response produced by Process.
//
// The set of implementations is closed; every event type is declared in
// this file.
type Event interface {
	// Kind returns the event name used in scripts, logs and output.
	Kind() string

	isEvent()
}

// Application requests.

// Quit asks the engine to shut down. Any open database is closed.
type Quit struct{}

// OpenDatabase asks the engine to open the database file at Path.
type OpenDatabase struct {
	Path string `json:"path" yaml:"path"`
}

// CloseDatabase asks the engine to close the open database, if any.
type CloseDatabase struct{}

// Continent requests.

// StartContinentSearch searches continents by code and name.
type StartContinentSearch struct {
	geo.ContinentFilter `yaml:",inline"`
}

// LoadContinent loads one continent by id.
type LoadContinent struct {
	ID int64 `json:"id" yaml:"id"`
}

// SaveNewContinent inserts a continent. Its ID is ignored.
type SaveNewContinent struct {
	geo.Continent `yaml:",inline"`
}

// SaveContinent edits the continent identified by its ID. Empty fields are
// left unchanged.
type SaveContinent struct {
	geo.Continent `yaml:",inline"`
}

// Country requests.

type StartCountrySearch struct {
	geo.CountryFilter `yaml:",inline"`
}

type LoadCountry struct {
	ID int64 `json:"id" yaml:"id"`
}

type SaveNewCountry struct {
	geo.Country `yaml:",inline"`
}

type SaveCountry struct {
	geo.Country `yaml:",inline"`
}

// Region requests.

type StartRegionSearch struct {
	geo.RegionFilter `yaml:",inline"`
}

type LoadRegion struct {
	ID int64 `json:"id" yaml:"id"`
}

type SaveNewRegion struct {
	geo.Region `yaml:",inline"`
}

type SaveRegion struct {
	geo.Region `yaml:",inline"`
}

// Application responses.

// EndApplication answers Quit.
type EndApplication struct{}

// DatabaseOpened reports a successful OpenDatabase.
type DatabaseOpened struct {
	Path string `json:"path" yaml:"path"`
}

// DatabaseOpenFailed reports why OpenDatabase failed.
type DatabaseOpenFailed struct {
	Message string `json:"message" yaml:"message"`
}

// DatabaseClosed answers CloseDatabase.
type DatabaseClosed struct{}

// Error reports a failed search or load.
type Error struct {
	Message string `json:"message" yaml:"message"`
}

// Continent responses.

type ContinentSearchResult struct {
	geo.Continent `yaml:",inline"`
}

type ContinentLoaded struct {
	geo.Continent `yaml:",inline"`
}

type ContinentSaved struct {
	geo.Continent `yaml:",inline"`
}

type SaveContinentFailed struct {
	Message string `json:"message" yaml:"message"`
}

// Country responses.

type CountrySearchResult struct {
	geo.Country `yaml:",inline"`
}

type CountryLoaded struct {
	geo.Country `yaml:",inline"`
}

type CountrySaved struct {
	geo.Country `yaml:",inline"`
}

type SaveCountryFailed struct {
	Message string `json:"message" yaml:"message"`
}

// Region responses.

type RegionSearchResult struct {
	geo.Region `yaml:",inline"`
}

type RegionLoaded struct {
	geo.Region `yaml:",inline"`
}

type RegionSaved struct {
	geo.Region `yaml:",inline"`
}

type SaveRegionFailed struct {
	Message string `json:"message" yaml:"message"`
}

func (Quit) Kind() string                 { return "Quit" }
func (OpenDatabase) Kind() string         { return "OpenDatabase" }
func (CloseDatabase) Kind() string        { return "CloseDatabase" }
func (StartContinentSearch) Kind() string { return "StartContinentSearch" }
func (LoadContinent) Kind() string        { return "LoadContinent" }
func (SaveNewContinent) Kind() string     { return "SaveNewContinent" }
func (SaveContinent) Kind() string        { return "SaveContinent" }
func (StartCountrySearch) Kind() string   { return "StartCountrySearch" }
func (LoadCountry) Kind() string          { return "LoadCountry" }
func (SaveNewCountry) Kind() string       { return "SaveNewCountry" }
func (SaveCountry) Kind() string          { return "SaveCountry" }
func (StartRegionSearch) Kind() string    { return "StartRegionSearch" }
func (LoadRegion) Kind() string           { return "LoadRegion" }
func (SaveNewRegion) Kind() string        { return "SaveNewRegion" }
func (SaveRegion) Kind() string           { return "SaveRegion" }

func (EndApplication) Kind() string        { return "EndApplication" }
func (DatabaseOpened) Kind() string        { return "DatabaseOpened" }
func (DatabaseOpenFailed) Kind() string    { return "DatabaseOpenFailed" }
func (DatabaseClosed) Kind() string        { return "DatabaseClosed" }
func (Error) Kind() string                 { return "Error" }
func (ContinentSearchResult) Kind() string { return "ContinentSearchResult" }
func (ContinentLoaded) Kind() string       { return "ContinentLoaded" }
func (ContinentSaved) Kind() string        { return "ContinentSaved" }
func (SaveContinentFailed) Kind() string   { return "SaveContinentFailed" }
func (CountrySearchResult) Kind() string   { return "CountrySearchResult" }
func (CountryLoaded) Kind() string         { return "CountryLoaded" }
func (CountrySaved) Kind() string          { return "CountrySaved" }
func (SaveCountryFailed) Kind() string     { return "SaveCountryFailed" }
func (RegionSearchResult) Kind() string    { return "RegionSearchResult" }
func (RegionLoaded) Kind() string          { return "RegionLoaded" }
func (RegionSaved) Kind() string           { return "RegionSaved" }
func (SaveRegionFailed) Kind() string      { return "SaveRegionFailed" }

func (Quit) isEvent()                 {}
func (OpenDatabase) isEvent()         {}
func (CloseDatabase) isEvent()        {}
func (StartContinentSearch) isEvent() {}
func (LoadContinent) isEvent()        {}
func (SaveNewContinent) isEvent()     {}
func (SaveContinent) isEvent()        {}
func (StartCountrySearch) isEvent()   {}
func (LoadCountry) isEvent()          {}
func (SaveNewCountry) isEvent()       {}
func (SaveCountry) isEvent()          {}
func (StartRegionSearch) isEvent()    {}
func (LoadRegion) isEvent()           {}
func (SaveNewRegion) isEvent()        {}
func (SaveRegion) isEvent()           {}

func (EndApplication) isEvent()        {}
func (DatabaseOpened) isEvent()        {}
func (DatabaseOpenFailed) isEvent()    {}
func (DatabaseClosed) isEvent()        {}
func (Error) isEvent()                 {}
func (ContinentSearchResult) isEvent() {}
func (ContinentLoaded) isEvent()       {}
func (ContinentSaved) isEvent()        {}
func (SaveContinentFailed) isEvent()   {}
func (CountrySearchResult) isEvent()   {}
func (CountryLoaded) isEvent()         {}
func (CountrySaved) isEvent()          {}
func (SaveCountryFailed) isEvent()     {}
func (RegionSearchResult) isEvent()    {}
func (RegionLoaded) isEvent()          {}
func (RegionSaved) isEvent()           {}
func (SaveRegionFailed) isEvent()      {}

// Failure returns the message carried by a failure response, and false for
// every other event.
func Failure(ev Event) (string, bool) {
	switch ev := ev.(type) {
	case Error:
		return ev.Message, true
	case DatabaseOpenFailed:
		return ev.Message, true
	case SaveContinentFailed:
		return ev.Message, true
	case SaveCountryFailed:
		return ev.Message, true
	case SaveRegionFailed:
		return ev.Message, true
	default:
		return "", false
	}
}
