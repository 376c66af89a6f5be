package pbp

import (
	"sort"
	"strings"
)

// ExtractTouchdowns filters a season's scoring events down to touchdowns and
// resolves the true scorer for each.
//
// On a return touchdown the offensive player of record turned the ball over,
// so the scorer is taken from the return-side fields only: returner, then
// fumble recoverer, then lateral receiver. The scoring team is the defense.
// On an offensive touchdown the order is receiver, rusher, passer, and the
// scoring team is the offense. An event with no candidate name resolves to
// the UnknownScorer sentinel rather than being dropped.
func ExtractTouchdowns(events []ScoringEvent) []Touchdown {
	out := make([]Touchdown, 0, len(events))
	for _, event := range events {
		if !event.Touchdown {
			continue
		}
		out = append(out, Touchdown{
			GameID:   event.GameID,
			PlayID:   event.PlayID,
			Season:   event.Season,
			Week:     event.Week,
			Scorer:   resolveScorer(event),
			Team:     resolveScoringTeam(event),
			IsReturn: event.ReturnTouchdown,
		})
	}
	return out
}

// FirstTouchdowns reduces a touchdown list to the earliest touchdown per
// game, ordered by play id with source order breaking ties.
func FirstTouchdowns(tds []Touchdown) map[string]Touchdown {
	indexByGame := make(map[string]int, len(tds))
	order := make([]Touchdown, len(tds))
	copy(order, tds)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].GameID != order[j].GameID {
			return order[i].GameID < order[j].GameID
		}
		return order[i].PlayID < order[j].PlayID
	})

	out := make(map[string]Touchdown)
	for _, td := range order {
		if _, seen := indexByGame[td.GameID]; seen {
			continue
		}
		indexByGame[td.GameID] = 1
		out[td.GameID] = td
	}
	return out
}

// GroupByGame indexes touchdowns by game, preserving chronological order
// within each game.
func GroupByGame(tds []Touchdown) map[string][]Touchdown {
	out := make(map[string][]Touchdown)
	for _, td := range tds {
		out[td.GameID] = append(out[td.GameID], td)
	}
	for gameID := range out {
		game := out[gameID]
		sort.SliceStable(game, func(i, j int) bool { return game[i].PlayID < game[j].PlayID })
		out[gameID] = game
	}
	return out
}

func resolveScorer(event ScoringEvent) string {
	var candidates []string
	if event.ReturnTouchdown {
		candidates = []string{event.ReturnerName, event.FumbleRecoveryName, event.LateralReceiverName}
	} else {
		candidates = []string{event.ReceiverName, event.RusherName, event.PasserName}
	}

	for _, name := range candidates {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			return trimmed
		}
	}
	return UnknownScorer
}

func resolveScoringTeam(event ScoringEvent) string {
	if event.ReturnTouchdown {
		return strings.TrimSpace(event.Defense)
	}
	return strings.TrimSpace(event.Offense)
}
