package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/roach88/atlas/internal/geo"
	"github.com/roach88/atlas/internal/querysql"
)

var regionColumns = []string{
	"region_id", "region_code", "local_code", "name",
	"continent_id", "country_id", "wikipedia_link", "keywords",
}

// Regions reads and writes the region table.
type Regions struct {
	db *sqlx.DB
}

// NewRegions returns a repository over db.
func NewRegions(db *sqlx.DB) *Regions {
	return &Regions{db: db}
}

// Search returns regions matching every non-empty filter field.
func (r *Regions) Search(ctx context.Context, filter geo.RegionFilter) ([]geo.Region, error) {
	if r.db == nil {
		return nil, storeError("search regions", errClosed)
	}
	filter = filter.Normalized()

	rows, err := selectAll[geo.Region](ctx, r.db, querysql.Select{
		From:    "region",
		Columns: regionColumns,
		Filter: querysql.EqualsNonEmpty(
			"region_code", filter.Code,
			"local_code", filter.LocalCode,
			"name", filter.Name,
		),
	})
	if err != nil {
		return nil, storeError("search regions", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoResults
	}
	return rows, nil
}

// Load returns the region with the given id, or ErrNotFound.
func (r *Regions) Load(ctx context.Context, id int64) (geo.Region, error) {
	if r.db == nil {
		return geo.Region{}, storeError("load region", errClosed)
	}
	reg, err := selectOne[geo.Region](ctx, r.db, querysql.Select{
		From:    "region",
		Columns: regionColumns,
		Filter:  byID("region_id", id),
	})
	if err != nil {
		return geo.Region{}, classify("load region", err)
	}
	return reg, nil
}

// SaveNew validates reg, inserts it and returns the stored row.
func (r *Regions) SaveNew(ctx context.Context, reg geo.Region) (geo.Region, error) {
	reg = reg.Normalized()
	if err := reg.Validate(); err != nil {
		return geo.Region{}, err
	}

	var saved geo.Region
	err := withTx(ctx, r.db, "save new region", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO region
			(region_code, local_code, name, continent_id, country_id, wikipedia_link, keywords)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			reg.Code,
			reg.LocalCode,
			reg.Name,
			reg.ContinentID,
			reg.CountryID,
			optional(reg.WikipediaLink),
			optional(reg.Keywords),
		)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		saved, err = selectOne[geo.Region](ctx, tx, querysql.Select{
			From:    "region",
			Columns: regionColumns,
			Filter:  byID("region_id", id),
		})
		return err
	})
	if err != nil {
		return geo.Region{}, err
	}
	return saved, nil
}

// SaveEdit applies the supplied fields of patch to the region currently
// keyed by currentCode and returns the updated row.
//
// When either region_code or local_code is supplied, the pair that would be
// stored after the edit (supplied value, else current value) must still be
// consistent. Changing only region_code therefore requires the new code to
// end in the current local_code.
func (r *Regions) SaveEdit(ctx context.Context, currentCode string, patch geo.Region) (geo.Region, error) {
	patch = patch.Normalized()
	if err := geo.ValidateWikipediaLink(geo.EntityRegion, patch.WikipediaLink); err != nil {
		return geo.Region{}, err
	}

	set := regionAssignments(patch)

	newCode := currentCode
	if patch.Code != "" {
		newCode = patch.Code
	}

	var saved geo.Region
	err := withTx(ctx, r.db, "save region", func(tx *sqlx.Tx) error {
		current, err := selectOne[geo.Region](ctx, tx, querysql.Select{
			From:    "region",
			Columns: regionColumns,
			Filter:  keyFilter("region_code", currentCode, "region_id", patch.ID),
		})
		if err != nil {
			return err
		}

		if patch.Code != "" || patch.LocalCode != "" {
			code, local := current.Code, current.LocalCode
			if patch.Code != "" {
				code = patch.Code
			}
			if patch.LocalCode != "" {
				local = patch.LocalCode
			}
			if err := geo.ValidateRegionCode(code, local); err != nil {
				return err
			}
		}

		if len(set) > 0 {
			err := execUpdate(ctx, tx, querysql.Update{
				Table:  "region",
				Set:    set,
				Filter: keyFilter("region_code", currentCode, "region_id", current.ID),
			})
			if err != nil {
				return err
			}
		}

		saved, err = selectOne[geo.Region](ctx, tx, querysql.Select{
			From:    "region",
			Columns: regionColumns,
			Filter:  keyFilter("region_code", newCode, "region_id", current.ID),
		})
		return err
	})
	if err != nil {
		return geo.Region{}, err
	}
	return saved, nil
}

// regionAssignments lists the columns supplied by patch, in table order.
func regionAssignments(patch geo.Region) []querysql.Assignment {
	var set []querysql.Assignment
	if patch.Code != "" {
		set = append(set, querysql.Assignment{Column: "region_code", Value: patch.Code})
	}
	if patch.LocalCode != "" {
		set = append(set, querysql.Assignment{Column: "local_code", Value: patch.LocalCode})
	}
	if patch.Name != "" {
		set = append(set, querysql.Assignment{Column: "name", Value: patch.Name})
	}
	if patch.ContinentID != 0 {
		set = append(set, querysql.Assignment{Column: "continent_id", Value: patch.ContinentID})
	}
	if patch.CountryID != 0 {
		set = append(set, querysql.Assignment{Column: "country_id", Value: patch.CountryID})
	}
	if patch.WikipediaLink != nil {
		set = append(set, querysql.Assignment{Column: "wikipedia_link", Value: nullable(patch.WikipediaLink)})
	}
	if patch.Keywords != nil {
		set = append(set, querysql.Assignment{Column: "keywords", Value: nullable(patch.Keywords)})
	}
	return set
}
