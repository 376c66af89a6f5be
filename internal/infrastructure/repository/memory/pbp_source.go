package memory

import (
	"context"
	"sync"

	"github.com/gridironpool/firsttd/internal/domain/pbp"
)

// PBPSource serves play-by-play scoring events from memory, keyed by season.
type PBPSource struct {
	mu      sync.RWMutex
	seasons map[int][]pbp.ScoringEvent
}

func NewPBPSource(seasons map[int][]pbp.ScoringEvent) *PBPSource {
	if seasons == nil {
		seasons = make(map[int][]pbp.ScoringEvent)
	}
	return &PBPSource{seasons: seasons}
}

func (s *PBPSource) SeasonScoringEvents(_ context.Context, season int) ([]pbp.ScoringEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.seasons[season]
	out := make([]pbp.ScoringEvent, len(events))
	copy(out, events)
	return out, nil
}

// SetSeason replaces the stored events for a season.
func (s *PBPSource) SetSeason(season int, events []pbp.ScoringEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seasons[season] = events
}
