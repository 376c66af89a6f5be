package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gridironpool/firsttd/internal/domain/pbp"
)

type stubSource struct {
	mu     sync.Mutex
	calls  int
	events []pbp.ScoringEvent
	err    error
}

func (s *stubSource) SeasonScoringEvents(_ context.Context, _ int) ([]pbp.ScoringEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testEvents() []pbp.ScoringEvent {
	return []pbp.ScoringEvent{
		{GameID: "2024_05_KC_DEN", PlayID: 210, Season: 2024, Week: 5, Offense: "KC", Defense: "DEN", Touchdown: true, ReceiverName: "T.Kelce", PasserName: "P.Mahomes"},
		{GameID: "2024_05_KC_DEN", PlayID: 540, Season: 2024, Week: 5, Offense: "KC", Defense: "DEN", Touchdown: true, RusherName: "I.Pacheco"},
	}
}

func TestTDLookupProviderCachesBuild(t *testing.T) {
	source := &stubSource{events: testEvents()}
	provider := NewTDLookupProvider(source, time.Hour, nil)

	first, err := provider.Get(context.Background(), 2024)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	second, err := provider.Get(context.Background(), 2024)
	if err != nil {
		t.Fatalf("second Get returned error: %v", err)
	}

	if first != second {
		t.Fatalf("expected cached lookup to be reused")
	}
	if got := source.callCount(); got != 1 {
		t.Fatalf("source calls = %d, want 1", got)
	}

	td, ok := first.FirstTouchdown("2024_05_KC_DEN")
	if !ok {
		t.Fatalf("expected first touchdown for game")
	}
	if td.Scorer != "T.Kelce" {
		t.Fatalf("first scorer = %q, want T.Kelce", td.Scorer)
	}
	if got := len(first.GameTouchdowns("2024_05_KC_DEN")); got != 2 {
		t.Fatalf("game touchdowns = %d, want 2", got)
	}
}

func TestTDLookupProviderRefreshRebuilds(t *testing.T) {
	source := &stubSource{events: testEvents()}
	provider := NewTDLookupProvider(source, time.Hour, nil)

	if _, err := provider.Get(context.Background(), 2024); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if _, err := provider.Refresh(context.Background(), 2024); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if got := source.callCount(); got != 2 {
		t.Fatalf("source calls = %d, want 2", got)
	}
}

func TestTDLookupProviderEmptySeason(t *testing.T) {
	provider := NewTDLookupProvider(&stubSource{}, time.Hour, nil)

	lookup, err := provider.Get(context.Background(), 2024)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !lookup.Empty() {
		t.Fatalf("expected empty lookup for season without events")
	}
}

func TestTDLookupProviderPropagatesSourceError(t *testing.T) {
	wantErr := errors.New("feed down")
	provider := NewTDLookupProvider(&stubSource{err: wantErr}, time.Hour, nil)

	if _, err := provider.Get(context.Background(), 2024); !errors.Is(err, wantErr) {
		t.Fatalf("Get error = %v, want wrapped %v", err, wantErr)
	}
}
