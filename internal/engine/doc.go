// Package engine translates request events into repository operations and
// their results into response events.
//
// The engine sits between a user interface and the geographic database. The
// interface hands it one Request at a time; Process returns the ordered,
// finite sequence of Responses for that request. There is no queue and no
// background goroutine: the caller drives the sequence and must drain it
// before submitting the next request.
//
// # Event Vocabulary
//
// Requests and Responses are sealed interfaces; every concrete event type
// lives in events.go and the dispatcher matches them with a type switch.
//
//	Quit                  -> EndApplication
//	OpenDatabase          -> DatabaseOpened | DatabaseOpenFailed
//	CloseDatabase         -> DatabaseClosed
//	StartContinentSearch  -> ContinentSearchResult* | Error
//	LoadContinent         -> ContinentLoaded | Error
//	SaveNewContinent      -> ContinentSaved | SaveContinentFailed
//	SaveContinent         -> ContinentSaved | SaveContinentFailed
//
// Country and Region follow the Continent pattern.
//
// # Connection Ownership
//
// The engine owns the single store.Store. Only OpenDatabase, CloseDatabase
// and Quit replace or release it; repositories are built per request over
// the current handle and never outlive it.
//
// # Errors
//
// Process never returns an error. Every failure (validation, missing rows,
// driver errors, no open database) becomes a failure event carrying a
// human-readable message.
package engine
