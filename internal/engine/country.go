package engine

import (
	"context"

	"github.com/roach88/atlas/internal/geo"
	"github.com/roach88/atlas/internal/repository"
)

func (e *Engine) countries() (*repository.Countries, error) {
	db, err := e.db()
	if err != nil {
		return nil, err
	}
	return repository.NewCountries(db), nil
}

func (e *Engine) searchCountries(ctx context.Context, filter geo.CountryFilter) []Event {
	repo, err := e.countries()
	if err != nil {
		return []Event{errorEvent(err)}
	}
	rows, err := repo.Search(ctx, filter)
	if err != nil {
		return []Event{errorEvent(err)}
	}

	out := make([]Event, len(rows))
	for i, c := range rows {
		out[i] = CountrySearchResult{Country: c}
	}
	return out
}

func (e *Engine) loadCountry(ctx context.Context, id int64) Event {
	repo, err := e.countries()
	if err != nil {
		return errorEvent(err)
	}
	c, err := repo.Load(ctx, id)
	if err != nil {
		return errorEvent(err)
	}
	return CountryLoaded{Country: c}
}

func (e *Engine) saveNewCountry(ctx context.Context, c geo.Country) Event {
	repo, err := e.countries()
	if err != nil {
		return SaveCountryFailed{Message: saveNewFailure(geo.EntityCountry, err)}
	}
	saved, err := repo.SaveNew(ctx, c)
	if err != nil {
		return SaveCountryFailed{Message: saveNewFailure(geo.EntityCountry, err)}
	}
	return CountrySaved{Country: saved}
}

// saveCountry loads the country by id and edits it under its stored code.
func (e *Engine) saveCountry(ctx context.Context, patch geo.Country) Event {
	repo, err := e.countries()
	if err != nil {
		return SaveCountryFailed{Message: updateFailure(geo.EntityCountry, err)}
	}
	current, err := repo.Load(ctx, patch.ID)
	if err != nil {
		return SaveCountryFailed{Message: updateFailure(geo.EntityCountry, err)}
	}
	saved, err := repo.SaveEdit(ctx, current.Code, patch)
	if err != nil {
		return SaveCountryFailed{Message: updateFailure(geo.EntityCountry, err)}
	}
	return CountrySaved{Country: saved}
}
