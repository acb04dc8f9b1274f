package engine

import (
	"context"

	"github.com/roach88/atlas/internal/geo"
	"github.com/roach88/atlas/internal/repository"
)

func (e *Engine) continents() (*repository.Continents, error) {
	db, err := e.db()
	if err != nil {
		return nil, err
	}
	return repository.NewContinents(db), nil
}

func (e *Engine) searchContinents(ctx context.Context, filter geo.ContinentFilter) []Event {
	repo, err := e.continents()
	if err != nil {
		return []Event{errorEvent(err)}
	}
	rows, err := repo.Search(ctx, filter)
	if err != nil {
		return []Event{errorEvent(err)}
	}

	out := make([]Event, len(rows))
	for i, c := range rows {
		out[i] = ContinentSearchResult{Continent: c}
	}
	return out
}

func (e *Engine) loadContinent(ctx context.Context, id int64) Event {
	repo, err := e.continents()
	if err != nil {
		return errorEvent(err)
	}
	c, err := repo.Load(ctx, id)
	if err != nil {
		return errorEvent(err)
	}
	return ContinentLoaded{Continent: c}
}

func (e *Engine) saveNewContinent(ctx context.Context, c geo.Continent) Event {
	repo, err := e.continents()
	if err != nil {
		return SaveContinentFailed{Message: saveNewFailure(geo.EntityContinent, err)}
	}
	saved, err := repo.SaveNew(ctx, c)
	if err != nil {
		return SaveContinentFailed{Message: saveNewFailure(geo.EntityContinent, err)}
	}
	return ContinentSaved{Continent: saved}
}

// saveContinent loads the continent by id and edits it under its stored code.
func (e *Engine) saveContinent(ctx context.Context, patch geo.Continent) Event {
	repo, err := e.continents()
	if err != nil {
		return SaveContinentFailed{Message: updateFailure(geo.EntityContinent, err)}
	}
	current, err := repo.Load(ctx, patch.ID)
	if err != nil {
		return SaveContinentFailed{Message: updateFailure(geo.EntityContinent, err)}
	}
	saved, err := repo.SaveEdit(ctx, current.Code, patch)
	if err != nil {
		return SaveContinentFailed{Message: updateFailure(geo.EntityContinent, err)}
	}
	return ContinentSaved{Continent: saved}
}
