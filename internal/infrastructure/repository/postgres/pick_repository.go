package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironpool/firsttd/internal/domain/pick"
	qb "github.com/gridironpool/firsttd/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func pickBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id",
		"public_id",
		"user_public_id",
		"season",
		"week",
		"team",
		"player_name",
		"odds",
		"game_id",
		"created_at",
	).From("picks")
}

func pickScopeConds(season int, week *int) []qb.Cond {
	conds := []qb.Cond{qb.Eq("season", season)}
	if week != nil {
		conds = append(conds, qb.Eq("week", *week))
	}
	return conds
}

func (r *PickRepository) Create(ctx context.Context, p pick.Pick) error {
	query, args, err := qb.InsertModel("picks", pickToInsertRow(p), "")
	if err != nil {
		return fmt.Errorf("build insert pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pick: %w", err)
	}
	return nil
}

func (r *PickRepository) ListBySeason(ctx context.Context, season int, week *int) ([]pick.Pick, error) {
	query, args, err := pickBaseSelectBuilder().
		Where(pickScopeConds(season, week)...).
		OrderBy("week", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks by season: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) ListUngraded(ctx context.Context, season int, week *int) ([]pick.Pick, error) {
	conds := append(
		pickScopeConds(season, week),
		qb.Expr("NOT EXISTS (SELECT 1 FROM results WHERE results.pick_public_id = picks.public_id)"),
	)
	query, args, err := pickBaseSelectBuilder().
		Where(conds...).
		OrderBy("week", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ungraded picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ungraded picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) GetUserStakes(ctx context.Context, userIDs []string) (map[string]float64, error) {
	if len(userIDs) == 0 {
		return map[string]float64{}, nil
	}

	values := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		values = append(values, id)
	}
	query, args, err := qb.Select("public_id", "stake").
		From("users").
		Where(qb.In("public_id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build user stakes query: %w", err)
	}

	var rows []userStakeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get user stakes: %w", err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.Stake
	}
	return out, nil
}
