package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/atlas/internal/geo"
	"github.com/roach88/atlas/internal/testutil"
)

func TestContinents_SaveNewThenSearch(t *testing.T) {
	s := testutil.NewStore(t)
	repo := NewContinents(s.DB())
	ctx := context.Background()

	saved, err := repo.SaveNew(ctx, geo.Continent{Code: "NA", Name: "North America"})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID, "id must be assigned by the store")
	assert.Equal(t, "NA", saved.Code)
	assert.Equal(t, "North America", saved.Name)

	found, err := repo.Search(ctx, geo.ContinentFilter{Code: "NA"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	if diff := cmp.Diff(saved, found[0]); diff != "" {
		t.Errorf("search result mismatch (-saved +found):\n%s", diff)
	}
}

func TestContinents_SaveNewLoadRoundTrip(t *testing.T) {
	s := testutil.NewStore(t)
	repo := NewContinents(s.DB())
	ctx := context.Background()

	for _, code := range []string{"AF", "AN", "AS", "EU", "NA", "OC", "SA"} {
		saved, err := repo.SaveNew(ctx, geo.Continent{Code: code, Name: "Continent " + code})
		require.NoError(t, err, code)

		loaded, err := repo.Load(ctx, saved.ID)
		require.NoError(t, err, code)
		assert.Equal(t, saved, loaded)
		assert.Equal(t, geo.Continent{ID: saved.ID, Code: code, Name: "Continent " + code}, loaded)
	}
}

func TestContinents_SaveNewRejectsInvalidCode(t *testing.T) {
	s := testutil.NewStore(t)
	repo := NewContinents(s.DB())
	ctx := context.Background()

	for _, code := range []string{"na", "N", "NAM", "", "N1", " NA ", "NA "} {
		t.Run(code, func(t *testing.T) {
			_, err := repo.SaveNew(ctx, geo.Continent{Code: code, Name: "Nowhere"})
			var ve *geo.ValidationError
			require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)

			_, err = repo.Search(ctx, geo.ContinentFilter{Name: "Nowhere"})
			assert.ErrorIs(t, err, ErrNoResults, "no row may be inserted")
		})
	}
}

func TestContinents_SaveNewDuplicateCodeIsStoreError(t *testing.T) {
	s := testutil.NewStore(t)
	testutil.Seed(t, s)
	repo := NewContinents(s.DB())

	_, err := repo.SaveNew(context.Background(), geo.Continent{Code: "NA", Name: "Again"})
	require.Error(t, err)
	assert.True(t, IsStoreError(err))
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestContinents_SearchNoResults(t *testing.T) {
	s := testutil.NewStore(t)
	testutil.Seed(t, s)
	repo := NewContinents(s.DB())

	_, err := repo.Search(context.Background(), geo.ContinentFilter{Code: "ZZ"})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestContinents_SearchEmptyFilterMatchesAll(t *testing.T) {
	s := testutil.NewStore(t)
	f := testutil.Seed(t, s)
	repo := NewContinents(s.DB())

	found, err := repo.Search(context.Background(), geo.ContinentFilter{})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, f.NorthAmerica, found[0].ID)
	assert.Equal(t, f.Europe, found[1].ID)
}

func TestContinents_SearchConjunction(t *testing.T) {
	s := testutil.NewStore(t)
	testutil.Seed(t, s)
	repo := NewContinents(s.DB())
	ctx := context.Background()

	found, err := repo.Search(ctx, geo.ContinentFilter{Code: "EU", Name: "Europe"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = repo.Search(ctx, geo.ContinentFilter{Code: "EU", Name: "North America"})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestContinents_LoadMissing(t *testing.T) {
	s := testutil.NewStore(t)
	repo := NewContinents(s.DB())

	_, err := repo.Load(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContinents_SaveEditNameOnly(t *testing.T) {
	s := testutil.NewStore(t)
	f := testutil.Seed(t, s)
	repo := NewContinents(s.DB())
	ctx := context.Background()

	saved, err := repo.SaveEdit(ctx, "NA", geo.Continent{ID: f.NorthAmerica, Name: "Northern America"})
	require.NoError(t, err)
	assert.Equal(t, geo.Continent{ID: f.NorthAmerica, Code: "NA", Name: "Northern America"}, saved)
}

func TestContinents_SaveEditCode(t *testing.T) {
	s := testutil.NewStore(t)
	f := testutil.Seed(t, s)
	repo := NewContinents(s.DB())
	ctx := context.Background()

	saved, err := repo.SaveEdit(ctx, "NA", geo.Continent{ID: f.NorthAmerica, Code: "AM"})
	require.NoError(t, err)
	assert.Equal(t, "AM", saved.Code)
	assert.Equal(t, "North America", saved.Name)
	assert.Equal(t, f.NorthAmerica, saved.ID)

	_, err = repo.Search(ctx, geo.ContinentFilter{Code: "NA"})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestContinents_SaveEditInvalidCodeLeavesRow(t *testing.T) {
	s := testutil.NewStore(t)
	f := testutil.Seed(t, s)
	repo := NewContinents(s.DB())
	ctx := context.Background()

	_, err := repo.SaveEdit(ctx, "NA", geo.Continent{ID: f.NorthAmerica, Code: "north", Name: "Changed"})
	var ve *geo.ValidationError
	require.True(t, errors.As(err, &ve))

	loaded, err := repo.Load(ctx, f.NorthAmerica)
	require.NoError(t, err)
	assert.Equal(t, "NA", loaded.Code)
	assert.Equal(t, "North America", loaded.Name)
}

func TestContinents_SaveEditUnknownKey(t *testing.T) {
	s := testutil.NewStore(t)
	testutil.Seed(t, s)
	repo := NewContinents(s.DB())

	_, err := repo.SaveEdit(context.Background(), "ZZ", geo.Continent{Name: "Atlantis"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContinents_SaveEditKeyAndIDMustAgree(t *testing.T) {
	s := testutil.NewStore(t)
	f := testutil.Seed(t, s)
	repo := NewContinents(s.DB())
	ctx := context.Background()

	// EU's code paired with North America's id matches no row
	_, err := repo.SaveEdit(ctx, "EU", geo.Continent{ID: f.NorthAmerica, Name: "Mixed"})
	assert.ErrorIs(t, err, ErrNotFound)

	loaded, err := repo.Load(ctx, f.Europe)
	require.NoError(t, err)
	assert.Equal(t, "Europe", loaded.Name)
}

func TestContinents_SaveEditNothingSupplied(t *testing.T) {
	s := testutil.NewStore(t)
	f := testutil.Seed(t, s)
	repo := NewContinents(s.DB())

	saved, err := repo.SaveEdit(context.Background(), "EU", geo.Continent{ID: f.Europe})
	require.NoError(t, err)
	assert.Equal(t, geo.Continent{ID: f.Europe, Code: "EU", Name: "Europe"}, saved)
}

func TestContinents_ClosedStore(t *testing.T) {
	s := testutil.NewStore(t)
	repo := NewContinents(s.DB())
	require.NoError(t, s.Close())

	_, err := repo.Search(context.Background(), geo.ContinentFilter{})
	assert.True(t, IsStoreError(err))
}

func TestContinents_NilDB(t *testing.T) {
	repo := NewContinents(nil)
	ctx := context.Background()

	_, err := repo.Search(ctx, geo.ContinentFilter{})
	assert.True(t, IsStoreError(err))
	_, err = repo.Load(ctx, 1)
	assert.True(t, IsStoreError(err))
	_, err = repo.SaveNew(ctx, geo.Continent{Code: "NA", Name: "North America"})
	assert.True(t, IsStoreError(err))
}
