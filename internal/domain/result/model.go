package result

import "time"

// Result is the grading outcome for one pick. At most one Result exists per
// pick; only the grading engine creates or replaces them.
type Result struct {
	PickID string
	// ActualScorer is the resolved first-touchdown scorer for the pick's
	// game; nil when the game had no touchdown data.
	ActualScorer *string
	IsCorrect    bool
	AnyTimeTD    bool
	ActualReturn float64
	GradedAt     time.Time
}

// UpsertOutcome splits a batched write into fresh inserts and overwrites of
// existing rows.
type UpsertOutcome struct {
	Inserted int
	Updated  int
}
