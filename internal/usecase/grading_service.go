package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gridironpool/firsttd/internal/domain/pick"
	"github.com/gridironpool/firsttd/internal/domain/player"
	"github.com/gridironpool/firsttd/internal/domain/result"
	"github.com/gridironpool/firsttd/internal/domain/team"
	"github.com/gridironpool/firsttd/internal/platform/logging"
)

type GradingConfig struct {
	MatchThreshold float64
	DefaultStake   float64
}

func (c GradingConfig) normalized() GradingConfig {
	if c.MatchThreshold <= 0 {
		c.MatchThreshold = player.DefaultMatchThreshold
	}
	if c.DefaultStake <= 0 {
		c.DefaultStake = pick.DefaultStake
	}
	return c
}

type GradingService struct {
	lookups    *TDLookupProvider
	pickRepo   pick.Repository
	resultRepo result.Repository
	cfg        GradingConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewGradingService(
	lookups *TDLookupProvider,
	pickRepo pick.Repository,
	resultRepo result.Repository,
	cfg GradingConfig,
	logger *logging.Logger,
) *GradingService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &GradingService{
		lookups:    lookups,
		pickRepo:   pickRepo,
		resultRepo: resultRepo,
		cfg:        cfg.normalized(),
		logger:     logger,
		now:        time.Now,
	}
}

type GradeError struct {
	PickID  string `json:"pick_id"`
	Message string `json:"message"`
}

type GradeSummary struct {
	Season         int          `json:"season"`
	Week           *int         `json:"week,omitempty"`
	NoData         bool         `json:"no_data"`
	Graded         int          `json:"graded"`
	CorrectFirstTD int          `json:"correct_first_td"`
	AnyTimeTD      int          `json:"any_time_td"`
	FailedToMatch  int          `json:"failed_to_match"`
	Inserted       int          `json:"inserted"`
	Updated        int          `json:"updated"`
	Deleted        int64        `json:"deleted,omitempty"`
	Errors         []GradeError `json:"errors,omitempty"`
}

type GradeOptions struct {
	Stake          float64
	MatchThreshold float64
	GradedAt       time.Time
}

// GradePick grades one pick against a season lookup. The second return value
// reports a pick that could not be matched to a game; such picks are still
// persisted so reruns do not retry them, with a nil actual scorer and a zero
// return.
func GradePick(p pick.Pick, lookup *TDLookup, opts GradeOptions) (result.Result, bool) {
	res := result.Result{PickID: p.ID, GradedAt: opts.GradedAt}

	if strings.TrimSpace(p.GameID) == "" {
		return res, true
	}

	if first, ok := lookup.FirstTouchdown(p.GameID); ok {
		scorer := first.Scorer
		res.ActualScorer = &scorer
		res.IsCorrect = player.MatchesWithThreshold(p.PlayerName, first.Scorer, opts.MatchThreshold)
	}

	if res.IsCorrect {
		res.AnyTimeTD = true
	} else {
		for _, td := range lookup.GameTouchdowns(p.GameID) {
			if p.Team != "" && !team.Same(p.Team, td.Team) {
				continue
			}
			if player.MatchesWithThreshold(p.PlayerName, td.Scorer, opts.MatchThreshold) {
				res.AnyTimeTD = true
				break
			}
		}
	}

	res.ActualReturn = actualReturn(p.Odds, opts.Stake, res.IsCorrect)
	return res, false
}

// actualReturn applies American odds. Positive odds pay odds/100 per unit
// staked, negative odds pay 100/|odds|; a loss forfeits the stake. Picks with
// no recorded odds settle at zero either way.
func actualReturn(odds *int, stake float64, correct bool) float64 {
	if odds == nil || *odds == 0 {
		return 0
	}
	if !correct {
		return -stake
	}
	if *odds > 0 {
		return stake * float64(*odds) / 100
	}
	return stake * 100 / float64(-*odds)
}

// GradeSeason grades every ungraded pick for the season, optionally narrowed
// to one week. Already graded picks are skipped, so repeated runs only touch
// new picks.
func (s *GradingService) GradeSeason(ctx context.Context, season int, week *int) (GradeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.GradeSeason")
	defer span.End()

	summary := GradeSummary{Season: season, Week: week}
	if season <= 0 {
		return summary, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	lookup, err := s.lookups.Get(ctx, season)
	if err != nil {
		return summary, fmt.Errorf("load touchdown lookup for season %d: %w", season, err)
	}
	if lookup.Empty() {
		summary.NoData = true
		s.logger.WarnContext(ctx, "no touchdown data for season, skipping grading", "season", season)
		return summary, nil
	}

	picks, err := s.pickRepo.ListUngraded(ctx, season, week)
	if err != nil {
		return summary, fmt.Errorf("list ungraded picks for season %d: %w", season, err)
	}
	if len(picks) == 0 {
		return summary, nil
	}
	sortPicks(picks)

	stakes, err := s.userStakes(ctx, picks)
	if err != nil {
		return summary, err
	}

	gradedAt := s.now().UTC()
	batch := make([]result.Result, 0, len(picks))
	seen := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		res, failed, gradeErr := s.gradeOne(p, lookup, stakes, gradedAt)
		if gradeErr != nil {
			summary.Errors = append(summary.Errors, GradeError{PickID: p.ID, Message: gradeErr.Error()})
			s.logger.ErrorContext(ctx, "grading pick failed", "pick_id", p.ID, "error", gradeErr)
			continue
		}

		summary.Graded++
		if failed {
			summary.FailedToMatch++
		} else {
			if res.IsCorrect {
				summary.CorrectFirstTD++
			}
			if res.AnyTimeTD {
				summary.AnyTimeTD++
			}
		}
		batch = append(batch, res)
	}

	if len(batch) > 0 {
		outcome, upsertErr := s.resultRepo.UpsertBatch(ctx, batch)
		if upsertErr != nil {
			return summary, fmt.Errorf("persist results for season %d: %w", season, upsertErr)
		}
		summary.Inserted = outcome.Inserted
		summary.Updated = outcome.Updated
	}

	s.logger.InfoContext(ctx, "season grading finished",
		"season", season,
		"graded", summary.Graded,
		"correct_first_td", summary.CorrectFirstTD,
		"any_time_td", summary.AnyTimeTD,
		"failed_to_match", summary.FailedToMatch,
		"errors", len(summary.Errors),
	)
	return summary, nil
}

// gradeOne isolates a single pick so a misbehaving one cannot abort the run.
func (s *GradingService) gradeOne(p pick.Pick, lookup *TDLookup, stakes map[string]float64, gradedAt time.Time) (res result.Result, failed bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("grade pick %s: %v", p.ID, rec)
		}
	}()

	stake, ok := stakes[p.UserID]
	if !ok || stake <= 0 {
		stake = s.cfg.DefaultStake
	}
	res, failed = GradePick(p, lookup, GradeOptions{
		Stake:          stake,
		MatchThreshold: s.cfg.MatchThreshold,
		GradedAt:       gradedAt,
	})
	return res, failed, nil
}

// GradeAnyTimeTDOnly recomputes the any-time flag on already graded picks
// without touching first-TD correctness or returns.
func (s *GradingService) GradeAnyTimeTDOnly(ctx context.Context, season int, week *int) (GradeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.GradeAnyTimeTDOnly")
	defer span.End()

	summary := GradeSummary{Season: season, Week: week}
	if season <= 0 {
		return summary, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	lookup, err := s.lookups.Get(ctx, season)
	if err != nil {
		return summary, fmt.Errorf("load touchdown lookup for season %d: %w", season, err)
	}
	if lookup.Empty() {
		summary.NoData = true
		return summary, nil
	}

	picks, err := s.pickRepo.ListBySeason(ctx, season, week)
	if err != nil {
		return summary, fmt.Errorf("list picks for season %d: %w", season, err)
	}
	results, err := s.resultRepo.ListBySeason(ctx, season, week)
	if err != nil {
		return summary, fmt.Errorf("list results for season %d: %w", season, err)
	}
	existing := make(map[string]result.Result, len(results))
	for _, r := range results {
		existing[r.PickID] = r
	}

	sortPicks(picks)
	batch := make([]result.Result, 0, len(picks))
	for _, p := range picks {
		res, ok := existing[p.ID]
		if !ok {
			continue
		}

		anyTime := res.IsCorrect
		if !anyTime {
			for _, td := range lookup.GameTouchdowns(p.GameID) {
				if p.Team != "" && !team.Same(p.Team, td.Team) {
					continue
				}
				if player.MatchesWithThreshold(p.PlayerName, td.Scorer, s.cfg.MatchThreshold) {
					anyTime = true
					break
				}
			}
		}

		res.AnyTimeTD = anyTime
		summary.Graded++
		if anyTime {
			summary.AnyTimeTD++
		}
		batch = append(batch, res)
	}

	if len(batch) > 0 {
		outcome, upsertErr := s.resultRepo.UpsertBatch(ctx, batch)
		if upsertErr != nil {
			return summary, fmt.Errorf("persist any-time results for season %d: %w", season, upsertErr)
		}
		summary.Inserted = outcome.Inserted
		summary.Updated = outcome.Updated
	}
	return summary, nil
}

// RegradeSeason deletes the season's results and grades everything from
// scratch against a freshly built lookup.
func (s *GradingService) RegradeSeason(ctx context.Context, season int) (GradeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.RegradeSeason")
	defer span.End()

	if season <= 0 {
		return GradeSummary{Season: season}, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	if _, err := s.lookups.Refresh(ctx, season); err != nil {
		return GradeSummary{Season: season}, fmt.Errorf("refresh touchdown lookup for season %d: %w", season, err)
	}

	deleted, err := s.resultRepo.DeleteBySeason(ctx, season)
	if err != nil {
		return GradeSummary{Season: season}, fmt.Errorf("delete results for season %d: %w", season, err)
	}

	summary, err := s.GradeSeason(ctx, season, nil)
	summary.Deleted = deleted
	return summary, err
}

// SeasonResults returns persisted results paired with their picks, ordered by
// week then pick id.
func (s *GradingService) SeasonResults(ctx context.Context, season int, week *int) ([]GradedPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.SeasonResults")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	picks, err := s.pickRepo.ListBySeason(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("list picks for season %d: %w", season, err)
	}
	results, err := s.resultRepo.ListBySeason(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("list results for season %d: %w", season, err)
	}
	byPick := make(map[string]result.Result, len(results))
	for _, r := range results {
		byPick[r.PickID] = r
	}

	sortPicks(picks)
	out := make([]GradedPick, 0, len(picks))
	for _, p := range picks {
		res, ok := byPick[p.ID]
		if !ok {
			continue
		}
		out = append(out, GradedPick{Pick: p, Result: res})
	}
	return out, nil
}

// FirstTouchdowns exposes the cached first scorer per game for a season.
func (s *GradingService) FirstTouchdowns(ctx context.Context, season int) (*TDLookup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.FirstTouchdowns")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	return s.lookups.Get(ctx, season)
}

type GradedPick struct {
	Pick   pick.Pick
	Result result.Result
}

func sortPicks(picks []pick.Pick) {
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Week != picks[j].Week {
			return picks[i].Week < picks[j].Week
		}
		return picks[i].ID < picks[j].ID
	})
}

func (s *GradingService) userStakes(ctx context.Context, picks []pick.Pick) (map[string]float64, error) {
	seen := make(map[string]struct{}, len(picks))
	userIDs := make([]string, 0, len(picks))
	for _, p := range picks {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		userIDs = append(userIDs, p.UserID)
	}
	stakes, err := s.pickRepo.GetUserStakes(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load user stakes: %w", err)
	}
	return stakes, nil
}
