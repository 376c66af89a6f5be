package pbp

// UnknownScorer is the sentinel used when a touchdown play carries no
// candidate scorer name at all.
const UnknownScorer = "Unknown"

// ScoringEvent is one raw play from the season feed. It is immutable and
// carries every candidate scorer field the upstream data exposes; resolution
// into a single scorer happens in ExtractTouchdowns.
type ScoringEvent struct {
	GameID   string
	PlayID   int64
	Season   int
	Week     int
	Quarter  int
	Offense  string
	Defense  string
	PlayType string

	Touchdown       bool
	ReturnTouchdown bool

	PasserName          string
	RusherName          string
	ReceiverName        string
	ReturnerName        string
	FumbleRecoveryName  string
	LateralReceiverName string
}

// Touchdown is a scoring event with its scorer resolved to one name and one
// scoring team.
type Touchdown struct {
	GameID   string
	PlayID   int64
	Season   int
	Week     int
	Scorer   string
	Team     string
	IsReturn bool
}
