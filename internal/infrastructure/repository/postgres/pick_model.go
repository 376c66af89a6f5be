package postgres

import (
	"time"

	"github.com/gridironpool/firsttd/internal/domain/pick"
)

type pickTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	UserID     string    `db:"user_public_id"`
	Season     int       `db:"season"`
	Week       int       `db:"week"`
	Team       string    `db:"team"`
	PlayerName string    `db:"player_name"`
	Odds       *int      `db:"odds"`
	GameID     string    `db:"game_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type pickInsertModel struct {
	PublicID   string    `db:"public_id"`
	UserID     string    `db:"user_public_id"`
	Season     int       `db:"season"`
	Week       int       `db:"week"`
	Team       string    `db:"team"`
	PlayerName string    `db:"player_name"`
	Odds       *int      `db:"odds"`
	GameID     string    `db:"game_id"`
	CreatedAt  time.Time `db:"created_at"`
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:         row.PublicID,
		UserID:     row.UserID,
		Season:     row.Season,
		Week:       row.Week,
		Team:       row.Team,
		PlayerName: row.PlayerName,
		Odds:       row.Odds,
		GameID:     row.GameID,
		CreatedAt:  row.CreatedAt,
	}
}

func pickToInsertRow(p pick.Pick) pickInsertModel {
	return pickInsertModel{
		PublicID:   p.ID,
		UserID:     p.UserID,
		Season:     p.Season,
		Week:       p.Week,
		Team:       p.Team,
		PlayerName: p.PlayerName,
		Odds:       p.Odds,
		GameID:     p.GameID,
		CreatedAt:  p.CreatedAt,
	}
}

type userStakeRow struct {
	UserID string  `db:"public_id"`
	Stake  float64 `db:"stake"`
}
