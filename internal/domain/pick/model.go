package pick

import "time"

// DefaultStake is the stake assumed for users without a configured one.
const DefaultStake = 1.0

// Pick is one user's first-touchdown prediction for one game. Picks are
// immutable once a grading result exists for them.
type Pick struct {
	ID         string
	UserID     string
	Season     int
	Week       int
	Team       string
	PlayerName string
	// Odds is the American price the pick was placed at; nil when the
	// import had no price.
	Odds      *int
	GameID    string
	CreatedAt time.Time
}
