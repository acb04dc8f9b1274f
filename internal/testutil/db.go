// Package testutil holds helpers shared by package tests: throwaway
// databases with the atlas schema, a standard fixture set and deterministic
// trace tokens.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/atlas/internal/store"
)

// NewDatabase creates a database file with the schema under t.TempDir and
// returns its path. The store used to create it is already closed.
func NewDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atlas.db")
	s, err := store.Create(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	return path
}

// NewStore creates a fresh database and returns it open.
// The store is closed when the test ends.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(NewDatabase(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// Fixtures are the ids of the rows inserted by Seed.
type Fixtures struct {
	NorthAmerica int64 // continent NA
	Europe       int64 // continent EU
	US           int64 // country US in NA
	France       int64 // country FR in EU
	California   int64 // region US-CA
	IleDeFrance  int64 // region FR-IDF
}

// Seed inserts a small, fixed data set directly with SQL, bypassing the
// repositories under test.
func Seed(t *testing.T, s *store.Store) Fixtures {
	t.Helper()
	db := s.DB()

	insert := func(query string, args ...any) int64 {
		t.Helper()
		result, err := db.Exec(query, args...)
		require.NoError(t, err)
		id, err := result.LastInsertId()
		require.NoError(t, err)
		return id
	}

	var f Fixtures
	f.NorthAmerica = insert(`INSERT INTO continent (continent_code, name) VALUES (?, ?)`, "NA", "North America")
	f.Europe = insert(`INSERT INTO continent (continent_code, name) VALUES (?, ?)`, "EU", "Europe")

	f.US = insert(`INSERT INTO country (country_code, name, continent_id, wikipedia_link, keywords)
		VALUES (?, ?, ?, ?, ?)`,
		"US", "United States", f.NorthAmerica, "https://en.wikipedia.org/wiki/United_States", "America")
	f.France = insert(`INSERT INTO country (country_code, name, continent_id, wikipedia_link, keywords)
		VALUES (?, ?, ?, NULL, NULL)`,
		"FR", "France", f.Europe)

	f.California = insert(`INSERT INTO region
		(region_code, local_code, name, continent_id, country_id, wikipedia_link, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"US-CA", "CA", "California", f.NorthAmerica, f.US, "https://en.wikipedia.org/wiki/California", "Golden State")
	f.IleDeFrance = insert(`INSERT INTO region
		(region_code, local_code, name, continent_id, country_id, wikipedia_link, keywords)
		VALUES (?, ?, ?, ?, ?, NULL, NULL)`,
		"FR-IDF", "IDF", "Île-de-France", f.Europe, f.France)

	return f
}
