package postgres

import (
	"time"

	"github.com/gridironpool/firsttd/internal/domain/result"
)

type resultTableModel struct {
	ID           int64     `db:"id"`
	PickID       string    `db:"pick_public_id"`
	ActualScorer *string   `db:"actual_scorer"`
	IsCorrect    bool      `db:"is_correct"`
	AnyTimeTD    bool      `db:"any_time_td"`
	ActualReturn float64   `db:"actual_return"`
	GradedAt     time.Time `db:"graded_at"`
}

type resultInsertModel struct {
	PickID       string    `db:"pick_public_id"`
	ActualScorer *string   `db:"actual_scorer"`
	IsCorrect    bool      `db:"is_correct"`
	AnyTimeTD    bool      `db:"any_time_td"`
	ActualReturn float64   `db:"actual_return"`
	GradedAt     time.Time `db:"graded_at"`
}

func resultFromRow(row resultTableModel) result.Result {
	return result.Result{
		PickID:       row.PickID,
		ActualScorer: row.ActualScorer,
		IsCorrect:    row.IsCorrect,
		AnyTimeTD:    row.AnyTimeTD,
		ActualReturn: row.ActualReturn,
		GradedAt:     row.GradedAt,
	}
}

func resultToInsertRow(res result.Result) resultInsertModel {
	return resultInsertModel{
		PickID:       res.PickID,
		ActualScorer: res.ActualScorer,
		IsCorrect:    res.IsCorrect,
		AnyTimeTD:    res.AnyTimeTD,
		ActualReturn: res.ActualReturn,
		GradedAt:     res.GradedAt,
	}
}
