package result

import "context"

type Repository interface {
	// UpsertBatch writes results idempotently. The pick-id uniqueness
	// constraint resolves concurrent writers last-write-wins; conflicts
	// surface in the Updated count, never as duplicate rows.
	UpsertBatch(ctx context.Context, batch []Result) (UpsertOutcome, error)
	ListBySeason(ctx context.Context, season int, week *int) ([]Result, error)
	// DeleteBySeason removes a season's results ahead of an explicit
	// regrade and returns the number of rows removed.
	DeleteBySeason(ctx context.Context, season int) (int64, error)
}
