package engine

import (
	"context"

	"github.com/roach88/atlas/internal/geo"
	"github.com/roach88/atlas/internal/repository"
)

func (e *Engine) regions() (*repository.Regions, error) {
	db, err := e.db()
	if err != nil {
		return nil, err
	}
	return repository.NewRegions(db), nil
}

func (e *Engine) searchRegions(ctx context.Context, filter geo.RegionFilter) []Event {
	repo, err := e.regions()
	if err != nil {
		return []Event{errorEvent(err)}
	}
	rows, err := repo.Search(ctx, filter)
	if err != nil {
		return []Event{errorEvent(err)}
	}

	out := make([]Event, len(rows))
	for i, c := range rows {
		out[i] = RegionSearchResult{Region: c}
	}
	return out
}

func (e *Engine) loadRegion(ctx context.Context, id int64) Event {
	repo, err := e.regions()
	if err != nil {
		return errorEvent(err)
	}
	c, err := repo.Load(ctx, id)
	if err != nil {
		return errorEvent(err)
	}
	return RegionLoaded{Region: c}
}

func (e *Engine) saveNewRegion(ctx context.Context, c geo.Region) Event {
	repo, err := e.regions()
	if err != nil {
		return SaveRegionFailed{Message: saveNewFailure(geo.EntityRegion, err)}
	}
	saved, err := repo.SaveNew(ctx, c)
	if err != nil {
		return SaveRegionFailed{Message: saveNewFailure(geo.EntityRegion, err)}
	}
	return RegionSaved{Region: saved}
}

// saveRegion loads the region by id and edits it under its stored code.
func (e *Engine) saveRegion(ctx context.Context, patch geo.Region) Event {
	repo, err := e.regions()
	if err != nil {
		return SaveRegionFailed{Message: updateFailure(geo.EntityRegion, err)}
	}
	current, err := repo.Load(ctx, patch.ID)
	if err != nil {
		return SaveRegionFailed{Message: updateFailure(geo.EntityRegion, err)}
	}
	saved, err := repo.SaveEdit(ctx, current.Code, patch)
	if err != nil {
		return SaveRegionFailed{Message: updateFailure(geo.EntityRegion, err)}
	}
	return RegionSaved{Region: saved}
}
