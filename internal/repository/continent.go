package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/roach88/atlas/internal/geo"
	"github.com/roach88/atlas/internal/querysql"
)

var continentColumns = []string{"continent_id", "continent_code", "name"}

// Continents reads and writes the continent table.
type Continents struct {
	db *sqlx.DB
}

// NewContinents returns a repository over db.
func NewContinents(db *sqlx.DB) *Continents {
	return &Continents{db: db}
}

// Search returns continents matching every non-empty filter field, ordered
// by id. An all-empty filter matches every continent.
func (r *Continents) Search(ctx context.Context, filter geo.ContinentFilter) ([]geo.Continent, error) {
	if r.db == nil {
		return nil, storeError("search continents", errClosed)
	}
	filter = filter.Normalized()

	rows, err := selectAll[geo.Continent](ctx, r.db, querysql.Select{
		From:    "continent",
		Columns: continentColumns,
		Filter:  querysql.EqualsNonEmpty("continent_code", filter.Code, "name", filter.Name),
	})
	if err != nil {
		return nil, storeError("search continents", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoResults
	}
	return rows, nil
}

// Load returns the continent with the given id, or ErrNotFound.
func (r *Continents) Load(ctx context.Context, id int64) (geo.Continent, error) {
	if r.db == nil {
		return geo.Continent{}, storeError("load continent", errClosed)
	}
	c, err := selectOne[geo.Continent](ctx, r.db, querysql.Select{
		From:    "continent",
		Columns: continentColumns,
		Filter:  byID("continent_id", id),
	})
	if err != nil {
		return geo.Continent{}, classify("load continent", err)
	}
	return c, nil
}

// SaveNew validates c, inserts it and returns the stored row.
// The ID field of c is ignored; the store assigns one.
func (r *Continents) SaveNew(ctx context.Context, c geo.Continent) (geo.Continent, error) {
	c = c.Normalized()
	if err := c.Validate(); err != nil {
		return geo.Continent{}, err
	}

	var saved geo.Continent
	err := withTx(ctx, r.db, "save new continent", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO continent (continent_code, name) VALUES (?, ?)`,
			c.Code, c.Name)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		saved, err = selectOne[geo.Continent](ctx, tx, querysql.Select{
			From:    "continent",
			Columns: continentColumns,
			Filter:  byID("continent_id", id),
		})
		return err
	})
	if err != nil {
		return geo.Continent{}, err
	}
	return saved, nil
}

// SaveEdit applies the supplied fields of patch to the continent currently
// keyed by currentCode and returns the updated row.
//
// The row is located by its pre-edit code. When patch.ID is set it also
// guards the lookup so a duplicated code cannot update a second row. The
// updated row is re-read by the new code, or by currentCode when the code
// was not changed.
func (r *Continents) SaveEdit(ctx context.Context, currentCode string, patch geo.Continent) (geo.Continent, error) {
	patch = patch.Normalized()
	if patch.Code != "" {
		if err := geo.ValidateContinentCode(patch.Code); err != nil {
			return geo.Continent{}, err
		}
	}

	var set []querysql.Assignment
	if patch.Code != "" {
		set = append(set, querysql.Assignment{Column: "continent_code", Value: patch.Code})
	}
	if patch.Name != "" {
		set = append(set, querysql.Assignment{Column: "name", Value: patch.Name})
	}

	newCode := currentCode
	if patch.Code != "" {
		newCode = patch.Code
	}

	var saved geo.Continent
	err := withTx(ctx, r.db, "save continent", func(tx *sqlx.Tx) error {
		if len(set) > 0 {
			err := execUpdate(ctx, tx, querysql.Update{
				Table:  "continent",
				Set:    set,
				Filter: keyFilter("continent_code", currentCode, "continent_id", patch.ID),
			})
			if err != nil {
				return err
			}
		}

		var err error
		saved, err = selectOne[geo.Continent](ctx, tx, querysql.Select{
			From:    "continent",
			Columns: continentColumns,
			Filter:  keyFilter("continent_code", newCode, "continent_id", patch.ID),
		})
		return err
	})
	if err != nil {
		return geo.Continent{}, err
	}
	return saved, nil
}
