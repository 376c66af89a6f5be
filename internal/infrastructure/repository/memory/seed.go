package memory

import (
	"context"
	"time"

	"github.com/gridironpool/firsttd/internal/domain/pbp"
	"github.com/gridironpool/firsttd/internal/domain/pick"
)

const SeedSeason = 2025

func intPtr(v int) *int { return &v }

// SeedScoringEvents covers two week 1 games, including a pick-six so return
// touchdown handling is exercised out of the box.
func SeedScoringEvents() map[int][]pbp.ScoringEvent {
	return map[int][]pbp.ScoringEvent{
		SeedSeason: {
			{
				GameID:       "2025_01_DAL_PHI",
				PlayID:       341,
				Season:       SeedSeason,
				Week:         1,
				Quarter:      1,
				Offense:      "PHI",
				Defense:      "DAL",
				PlayType:     "pass",
				Touchdown:    true,
				PasserName:   "J.Hurts",
				ReceiverName: "J.Ferguson",
			},
			{
				GameID:     "2025_01_DAL_PHI",
				PlayID:     812,
				Season:     SeedSeason,
				Week:       1,
				Quarter:    2,
				Offense:    "PHI",
				Defense:    "DAL",
				PlayType:   "run",
				Touchdown:  true,
				RusherName: "S.Barkley",
			},
			{
				GameID:          "2025_01_BUF_NYJ",
				PlayID:          122,
				Season:          SeedSeason,
				Week:            1,
				Quarter:         1,
				Offense:         "NYJ",
				Defense:         "BUF",
				PlayType:        "pass",
				Touchdown:       true,
				ReturnTouchdown: true,
				PasserName:      "A.Rodgers",
				ReturnerName:    "M.Milano",
			},
			{
				GameID:       "2025_01_BUF_NYJ",
				PlayID:       655,
				Season:       SeedSeason,
				Week:         1,
				Quarter:      3,
				Offense:      "NYJ",
				Defense:      "BUF",
				PlayType:     "pass",
				Touchdown:    true,
				PasserName:   "A.Rodgers",
				ReceiverName: "G.Wilson",
			},
		},
	}
}

func SeedPicks(now time.Time) []pick.Pick {
	return []pick.Pick{
		{
			ID:         "pick-0001",
			UserID:     "user-alice",
			Season:     SeedSeason,
			Week:       1,
			Team:       "Dallas Cowboys",
			PlayerName: "Jake Ferguson",
			Odds:       intPtr(950),
			GameID:     "2025_01_DAL_PHI",
			CreatedAt:  now,
		},
		{
			ID:         "pick-0002",
			UserID:     "user-bob",
			Season:     SeedSeason,
			Week:       1,
			Team:       "Philadelphia Eagles",
			PlayerName: "Saquon Barkley",
			Odds:       intPtr(650),
			GameID:     "2025_01_DAL_PHI",
			CreatedAt:  now,
		},
		{
			ID:         "pick-0003",
			UserID:     "user-alice",
			Season:     SeedSeason,
			Week:       1,
			Team:       "New York Jets",
			PlayerName: "Garrett Wilson",
			Odds:       intPtr(800),
			GameID:     "2025_01_BUF_NYJ",
			CreatedAt:  now,
		},
	}
}

// SeedStore builds a store pre-populated with picks and user stakes.
func SeedStore(now time.Time) *Store {
	store := NewStore()
	store.SetUserStake("user-alice", 5)
	store.SetUserStake("user-bob", 10)

	picks := store.Picks()
	for _, p := range SeedPicks(now) {
		_ = picks.Create(context.Background(), p)
	}
	return store
}
