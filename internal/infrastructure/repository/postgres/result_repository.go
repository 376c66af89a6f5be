package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironpool/firsttd/internal/domain/result"
	qb "github.com/gridironpool/firsttd/internal/platform/querybuilder"
)

const resultUpsertSuffix = `ON CONFLICT (pick_public_id) DO UPDATE SET
	actual_scorer = EXCLUDED.actual_scorer,
	is_correct = EXCLUDED.is_correct,
	any_time_td = EXCLUDED.any_time_td,
	actual_return = EXCLUDED.actual_return,
	graded_at = EXCLUDED.graded_at
RETURNING (xmax = 0) AS inserted`

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) UpsertBatch(ctx context.Context, batch []result.Result) (result.UpsertOutcome, error) {
	var outcome result.UpsertOutcome
	if len(batch) == 0 {
		return outcome, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return outcome, fmt.Errorf("begin upsert results tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, res := range batch {
		query, args, buildErr := qb.InsertModel("results", resultToInsertRow(res), resultUpsertSuffix)
		if buildErr != nil {
			return result.UpsertOutcome{}, fmt.Errorf("build upsert result query: %w", buildErr)
		}

		var inserted bool
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&inserted); err != nil {
			return result.UpsertOutcome{}, fmt.Errorf("upsert result for pick %s: %w", res.PickID, err)
		}
		if inserted {
			outcome.Inserted++
		} else {
			outcome.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return result.UpsertOutcome{}, fmt.Errorf("commit upsert results tx: %w", err)
	}
	return outcome, nil
}

func (r *ResultRepository) ListBySeason(ctx context.Context, season int, week *int) ([]result.Result, error) {
	conds := []qb.Cond{qb.Eq("picks.season", season)}
	if week != nil {
		conds = append(conds, qb.Eq("picks.week", *week))
	}

	query, args, err := qb.Select(
		"results.id",
		"results.pick_public_id",
		"results.actual_scorer",
		"results.is_correct",
		"results.any_time_td",
		"results.actual_return",
		"results.graded_at",
	).
		From("results JOIN picks ON picks.public_id = results.pick_public_id").
		Where(conds...).
		OrderBy("picks.week", "results.pick_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results by season: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, nil
}

func (r *ResultRepository) DeleteBySeason(ctx context.Context, season int) (int64, error) {
	query, args, err := qb.DeleteFrom("results").
		Where(qb.Expr("pick_public_id IN (SELECT public_id FROM picks WHERE season = ?)", season)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete results query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete results by season: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted results: %w", err)
	}
	return deleted, nil
}
