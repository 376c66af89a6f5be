package memory

import (
	"context"
	"fmt"

	"github.com/gridironpool/firsttd/internal/domain/pick"
)

type PickRepository struct {
	store *Store
}

func NewPickRepository(store *Store) *PickRepository {
	return &PickRepository{store: store}
}

func (r *PickRepository) Create(_ context.Context, p pick.Pick) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.picks[p.ID]; exists {
		return fmt.Errorf("pick %s already exists", p.ID)
	}
	r.store.picks[p.ID] = p
	r.store.pickOrder = append(r.store.pickOrder, p.ID)
	return nil
}

func (r *PickRepository) ListBySeason(_ context.Context, season int, week *int) ([]pick.Pick, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]pick.Pick, 0, len(r.store.pickOrder))
	for _, id := range r.store.pickOrder {
		p := r.store.picks[id]
		if !matchesScope(p, season, week) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PickRepository) ListUngraded(_ context.Context, season int, week *int) ([]pick.Pick, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]pick.Pick, 0, len(r.store.pickOrder))
	for _, id := range r.store.pickOrder {
		p := r.store.picks[id]
		if !matchesScope(p, season, week) {
			continue
		}
		if _, graded := r.store.results[p.ID]; graded {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PickRepository) GetUserStakes(_ context.Context, userIDs []string) (map[string]float64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]float64, len(userIDs))
	for _, id := range userIDs {
		if stake, ok := r.store.stakes[id]; ok {
			out[id] = stake
		}
	}
	return out, nil
}

func matchesScope(p pick.Pick, season int, week *int) bool {
	if p.Season != season {
		return false
	}
	if week != nil && p.Week != *week {
		return false
	}
	return true
}
