package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/roach88/atlas/internal/geo"
	"github.com/roach88/atlas/internal/querysql"
)

var countryColumns = []string{
	"country_id", "country_code", "name", "continent_id", "wikipedia_link", "keywords",
}

// Countries reads and writes the country table.
type Countries struct {
	db *sqlx.DB
}

// NewCountries returns a repository over db.
func NewCountries(db *sqlx.DB) *Countries {
	return &Countries{db: db}
}

// Search returns countries matching every non-empty filter field.
func (r *Countries) Search(ctx context.Context, filter geo.CountryFilter) ([]geo.Country, error) {
	if r.db == nil {
		return nil, storeError("search countries", errClosed)
	}
	filter = filter.Normalized()

	rows, err := selectAll[geo.Country](ctx, r.db, querysql.Select{
		From:    "country",
		Columns: countryColumns,
		Filter:  querysql.EqualsNonEmpty("country_code", filter.Code, "name", filter.Name),
	})
	if err != nil {
		return nil, storeError("search countries", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoResults
	}
	return rows, nil
}

// Load returns the country with the given id, or ErrNotFound.
func (r *Countries) Load(ctx context.Context, id int64) (geo.Country, error) {
	if r.db == nil {
		return geo.Country{}, storeError("load country", errClosed)
	}
	c, err := selectOne[geo.Country](ctx, r.db, querysql.Select{
		From:    "country",
		Columns: countryColumns,
		Filter:  byID("country_id", id),
	})
	if err != nil {
		return geo.Country{}, classify("load country", err)
	}
	return c, nil
}

// SaveNew validates c, inserts it and returns the stored row.
func (r *Countries) SaveNew(ctx context.Context, c geo.Country) (geo.Country, error) {
	c = c.Normalized()
	if err := c.Validate(); err != nil {
		return geo.Country{}, err
	}

	var saved geo.Country
	err := withTx(ctx, r.db, "save new country", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO country (country_code, name, continent_id, wikipedia_link, keywords)
			VALUES (?, ?, ?, ?, ?)
		`,
			c.Code,
			c.Name,
			c.ContinentID,
			optional(c.WikipediaLink),
			optional(c.Keywords),
		)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		saved, err = selectOne[geo.Country](ctx, tx, querysql.Select{
			From:    "country",
			Columns: countryColumns,
			Filter:  byID("country_id", id),
		})
		return err
	})
	if err != nil {
		return geo.Country{}, err
	}
	return saved, nil
}

// SaveEdit applies the supplied fields of patch to the country currently
// keyed by currentCode and returns the updated row.
func (r *Countries) SaveEdit(ctx context.Context, currentCode string, patch geo.Country) (geo.Country, error) {
	patch = patch.Normalized()
	if patch.Code != "" {
		if err := geo.ValidateCountryCode(patch.Code); err != nil {
			return geo.Country{}, err
		}
	}
	if err := geo.ValidateWikipediaLink(geo.EntityCountry, patch.WikipediaLink); err != nil {
		return geo.Country{}, err
	}

	set := countryAssignments(patch)

	newCode := currentCode
	if patch.Code != "" {
		newCode = patch.Code
	}

	var saved geo.Country
	err := withTx(ctx, r.db, "save country", func(tx *sqlx.Tx) error {
		if len(set) > 0 {
			err := execUpdate(ctx, tx, querysql.Update{
				Table:  "country",
				Set:    set,
				Filter: keyFilter("country_code", currentCode, "country_id", patch.ID),
			})
			if err != nil {
				return err
			}
		}

		var err error
		saved, err = selectOne[geo.Country](ctx, tx, querysql.Select{
			From:    "country",
			Columns: countryColumns,
			Filter:  keyFilter("country_code", newCode, "country_id", patch.ID),
		})
		return err
	})
	if err != nil {
		return geo.Country{}, err
	}
	return saved, nil
}

// countryAssignments lists the columns supplied by patch, in table order.
func countryAssignments(patch geo.Country) []querysql.Assignment {
	var set []querysql.Assignment
	if patch.Code != "" {
		set = append(set, querysql.Assignment{Column: "country_code", Value: patch.Code})
	}
	if patch.Name != "" {
		set = append(set, querysql.Assignment{Column: "name", Value: patch.Name})
	}
	if patch.ContinentID != 0 {
		set = append(set, querysql.Assignment{Column: "continent_id", Value: patch.ContinentID})
	}
	if patch.WikipediaLink != nil {
		set = append(set, querysql.Assignment{Column: "wikipedia_link", Value: nullable(patch.WikipediaLink)})
	}
	if patch.Keywords != nil {
		set = append(set, querysql.Assignment{Column: "keywords", Value: nullable(patch.Keywords)})
	}
	return set
}
