package pick

import "context"

type Repository interface {
	Create(ctx context.Context, p Pick) error
	ListBySeason(ctx context.Context, season int, week *int) ([]Pick, error)
	// ListUngraded returns picks without a grading result, optionally
	// narrowed to one week.
	ListUngraded(ctx context.Context, season int, week *int) ([]Pick, error)
	// GetUserStakes resolves stakes for a batch of users in one call.
	// Users without a configured stake are absent from the map; callers
	// fall back to DefaultStake.
	GetUserStakes(ctx context.Context, userIDs []string) (map[string]float64, error)
}
