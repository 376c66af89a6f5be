package postgres

import (
	"database/sql"
	"testing"
	"time"

	qb "github.com/gridironpool/firsttd/internal/platform/querybuilder"

	"github.com/gridironpool/firsttd/internal/domain/result"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(sql.ErrConnDone) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestListUngradedQuery(t *testing.T) {
	week := 3
	conds := append(
		pickScopeConds(2024, &week),
		qb.Expr("NOT EXISTS (SELECT 1 FROM results WHERE results.pick_public_id = picks.public_id)"),
	)
	query, args, err := pickBaseSelectBuilder().
		Where(conds...).
		OrderBy("week", "public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	want := "SELECT id, public_id, user_public_id, season, week, team, player_name, odds, game_id, created_at " +
		"FROM picks " +
		"WHERE season = $1 AND week = $2 AND NOT EXISTS (SELECT 1 FROM results WHERE results.pick_public_id = picks.public_id) " +
		"ORDER BY week, public_id"
	if query != want {
		t.Fatalf("query mismatch:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 2 || args[0] != 2024 || args[1] != 3 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestResultUpsertQuery(t *testing.T) {
	scorer := "J.Ferguson"
	res := result.Result{
		PickID:       "pick-1",
		ActualScorer: &scorer,
		IsCorrect:    true,
		AnyTimeTD:    true,
		ActualReturn: 9.5,
		GradedAt:     time.Date(2024, 11, 3, 18, 0, 0, 0, time.UTC),
	}

	query, args, err := qb.InsertModel("results", resultToInsertRow(res), resultUpsertSuffix)
	if err != nil {
		t.Fatalf("InsertModel returned error: %v", err)
	}

	want := "INSERT INTO results (pick_public_id, actual_scorer, is_correct, any_time_td, actual_return, graded_at) " +
		"VALUES ($1, $2, $3, $4, $5, $6) " + resultUpsertSuffix
	if query != want {
		t.Fatalf("query mismatch:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 6 {
		t.Fatalf("args = %d, want 6", len(args))
	}
	if args[0] != "pick-1" {
		t.Fatalf("first arg = %v, want pick id", args[0])
	}
}

func TestDeleteResultsBySeasonQuery(t *testing.T) {
	query, args, err := qb.DeleteFrom("results").
		Where(qb.Expr("pick_public_id IN (SELECT public_id FROM picks WHERE season = ?)", 2024)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	want := "DELETE FROM results WHERE pick_public_id IN (SELECT public_id FROM picks WHERE season = $1)"
	if query != want {
		t.Fatalf("query mismatch:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 1 || args[0] != 2024 {
		t.Fatalf("unexpected args: %v", args)
	}
}
