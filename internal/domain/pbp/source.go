package pbp

import "context"

// Source loads a season's raw scoring events from the play-by-play feed.
// Implementations return an empty slice, not an error, when the season has
// no data yet.
type Source interface {
	SeasonScoringEvents(ctx context.Context, season int) ([]ScoringEvent, error)
}
