package memory

import (
	"context"

	"github.com/gridironpool/firsttd/internal/domain/result"
)

type ResultRepository struct {
	store *Store
}

func NewResultRepository(store *Store) *ResultRepository {
	return &ResultRepository{store: store}
}

func (r *ResultRepository) UpsertBatch(_ context.Context, batch []result.Result) (result.UpsertOutcome, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var outcome result.UpsertOutcome
	for _, res := range batch {
		if _, exists := r.store.results[res.PickID]; exists {
			outcome.Updated++
		} else {
			outcome.Inserted++
		}
		r.store.results[res.PickID] = res
	}
	return outcome, nil
}

func (r *ResultRepository) ListBySeason(_ context.Context, season int, week *int) ([]result.Result, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]result.Result, 0, len(r.store.results))
	for _, id := range r.store.pickOrder {
		res, ok := r.store.results[id]
		if !ok {
			continue
		}
		if p, exists := r.store.picks[id]; !exists || !matchesScope(p, season, week) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *ResultRepository) DeleteBySeason(_ context.Context, season int) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var deleted int64
	for id, p := range r.store.picks {
		if p.Season != season {
			continue
		}
		if _, ok := r.store.results[id]; ok {
			delete(r.store.results, id)
			deleted++
		}
	}
	return deleted, nil
}
