package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var continentColumns = []string{"continent_id", "continent_code", "name"}

func TestCompileSelect_SingleFilter(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.CompileSelect(Select{
		From:    "continent",
		Columns: continentColumns,
		Filter:  Equals{Field: "continent_code", Value: "NA"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT continent_id, continent_code, name FROM continent WHERE continent_code = ? ORDER BY continent_id ASC",
		sql)
	assert.NotContains(t, sql, "NA") // value is bound, not interpolated
	assert.Equal(t, []any{"NA"}, params)
}

func TestCompileSelect_Conjunction(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.CompileSelect(Select{
		From:    "region",
		Columns: []string{"region_id", "region_code", "local_code", "name"},
		Filter:  EqualsNonEmpty("region_code", "US-CA", "local_code", "", "name", "California"),
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE region_code = ? AND name = ?")
	assert.NotContains(t, sql, "local_code = ?")
	assert.Equal(t, []any{"US-CA", "California"}, params)
}

func TestCompileSelect_EmptyFilterMatchesAll(t *testing.T) {
	compiler := NewSQLCompiler()

	for name, filter := range map[string]Predicate{
		"nil":       nil,
		"empty and": And{},
		"all blank": EqualsNonEmpty("continent_code", "", "name", ""),
		"empty ptr": &And{},
	} {
		t.Run(name, func(t *testing.T) {
			sql, params, err := compiler.CompileSelect(Select{
				From:    "continent",
				Columns: continentColumns,
				Filter:  filter,
			})
			require.NoError(t, err)
			assert.NotContains(t, sql, "WHERE")
			assert.Empty(t, params)
		})
	}
}

func TestCompileSelect_ExplicitOrderBy(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, _, err := compiler.CompileSelect(Select{
		From:    "continent",
		Columns: continentColumns,
		OrderBy: "name",
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY name ASC")
}

func TestCompileSelect_RejectsBadIdentifiers(t *testing.T) {
	compiler := NewSQLCompiler()

	tests := []struct {
		name string
		q    Select
	}{
		{"table", Select{From: "continent; DROP TABLE x", Columns: continentColumns}},
		{"column", Select{From: "continent", Columns: []string{"name--"}}},
		{"filter field", Select{From: "continent", Columns: continentColumns,
			Filter: Equals{Field: "1=1 OR name", Value: "x"}}},
		{"no columns", Select{From: "continent"}},
		{"leading digit", Select{From: "1continent", Columns: continentColumns}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := compiler.CompileSelect(tt.q)
			assert.Error(t, err)
		})
	}
}

func TestCompileUpdate_SetThenWhereParams(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.CompileUpdate(Update{
		Table: "country",
		Set: []Assignment{
			{Column: "name", Value: "United States of America"},
			{Column: "keywords", Value: nil},
		},
		Filter: And{Predicates: []Predicate{
			Equals{Field: "country_code", Value: "US"},
			Equals{Field: "country_id", Value: int64(7)},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE country SET name = ?, keywords = ? WHERE country_code = ? AND country_id = ?",
		sql)
	assert.Equal(t, []any{"United States of America", nil, "US", int64(7)}, params)
}

func TestCompileUpdate_RequiresAssignments(t *testing.T) {
	compiler := NewSQLCompiler()

	_, _, err := compiler.CompileUpdate(Update{
		Table:  "continent",
		Filter: Equals{Field: "continent_code", Value: "NA"},
	})
	assert.ErrorContains(t, err, "no columns to set")
}

func TestCompileUpdate_RequiresFilter(t *testing.T) {
	compiler := NewSQLCompiler()

	_, _, err := compiler.CompileUpdate(Update{
		Table: "continent",
		Set:   []Assignment{{Column: "name", Value: "Everywhere"}},
	})
	assert.ErrorContains(t, err, "missing filter")
}

func TestEqualsNonEmpty_OddPairsIgnored(t *testing.T) {
	and := EqualsNonEmpty("name", "Europe", "dangling")
	require.Len(t, and.Predicates, 1)
	assert.Equal(t, Equals{Field: "name", Value: "Europe"}, and.Predicates[0])
}
