package memory

import (
	"sync"

	"github.com/gridironpool/firsttd/internal/domain/pick"
	"github.com/gridironpool/firsttd/internal/domain/result"
)

// Store backs the in-memory repositories. Picks and results live behind one
// mutex because listing ungraded picks and scoping results to a season both
// need to see the two sets consistently.
type Store struct {
	mu        sync.RWMutex
	picks     map[string]pick.Pick
	pickOrder []string
	stakes    map[string]float64
	results   map[string]result.Result
}

func NewStore() *Store {
	return &Store{
		picks:   make(map[string]pick.Pick),
		stakes:  make(map[string]float64),
		results: make(map[string]result.Result),
	}
}

func (s *Store) Picks() *PickRepository {
	return &PickRepository{store: s}
}

func (s *Store) Results() *ResultRepository {
	return &ResultRepository{store: s}
}

// SetUserStake records the stake used when grading the user's picks.
func (s *Store) SetUserStake(userID string, stake float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakes[userID] = stake
}
