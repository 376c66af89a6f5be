package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gridironpool/firsttd/internal/platform/logging"
)

const (
	defaultBackfillWorkers = 4
	maxBackfillWorkers     = 16

	backfillStatusSuccess = "success"
	backfillStatusFailed  = "failed"
	backfillStatusSkipped = "skipped"
)

type BackfillInput struct {
	Seasons    []int
	MaxWorkers int
	// Regrade wipes each season's stored results before grading.
	Regrade bool
}

type BackfillResult struct {
	SeasonCount  int                 `json:"season_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	SkippedCount int                 `json:"skipped_count"`
	WorkerCount  int                 `json:"worker_count"`
	Seasons      []BackfillSeasonRow `json:"seasons"`
}

type BackfillSeasonRow struct {
	Season     int          `json:"season"`
	Status     string       `json:"status"`
	DurationMs int64        `json:"duration_ms"`
	Message    string       `json:"message,omitempty"`
	Summary    GradeSummary `json:"summary"`
}

// BackfillService grades many historical seasons in one call, fanning the
// seasons out over a bounded worker pool.
type BackfillService struct {
	grading *GradingService
	logger  *logging.Logger
}

func NewBackfillService(grading *GradingService, logger *logging.Logger) *BackfillService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &BackfillService{grading: grading, logger: logger}
}

func (s *BackfillService) Run(ctx context.Context, input BackfillInput) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.Run")
	defer span.End()

	seasons := normalizeBackfillSeasons(input.Seasons)
	if len(seasons) == 0 {
		return BackfillResult{}, fmt.Errorf("%w: at least one season is required", ErrInvalidInput)
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultBackfillWorkers
	}
	if workerCount > maxBackfillWorkers {
		workerCount = maxBackfillWorkers
	}
	if workerCount > len(seasons) {
		workerCount = len(seasons)
	}

	result := BackfillResult{
		SeasonCount: len(seasons),
		WorkerCount: workerCount,
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount, failedCount, skippedCount atomic.Int64
	rows := make(chan BackfillSeasonRow, len(seasons))

	var workers sync.WaitGroup
	for _, season := range seasons {
		season := season
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := BackfillSeasonRow{Season: season}
			row.Summary, row.Status, row.Message = s.runSeason(ctx, season, input.Regrade)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case backfillStatusSuccess:
				successCount.Add(1)
			case backfillStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return BackfillResult{}, fmt.Errorf("submit season to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Seasons = append(result.Seasons, row)
	}
	sort.SliceStable(result.Seasons, func(i, j int) bool {
		return result.Seasons[i].Season < result.Seasons[j].Season
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "backfill finished",
		"seasons", result.SeasonCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
	)
	return result, nil
}

func (s *BackfillService) runSeason(ctx context.Context, season int, regrade bool) (GradeSummary, string, string) {
	var (
		summary GradeSummary
		err     error
	)
	if regrade {
		summary, err = s.grading.RegradeSeason(ctx, season)
	} else {
		summary, err = s.grading.GradeSeason(ctx, season, nil)
	}
	if err != nil {
		return summary, backfillStatusFailed, err.Error()
	}
	if summary.NoData {
		return summary, backfillStatusSkipped, "no play-by-play data for season"
	}
	return summary, backfillStatusSuccess, ""
}

func normalizeBackfillSeasons(seasons []int) []int {
	seen := make(map[int]struct{}, len(seasons))
	out := make([]int, 0, len(seasons))
	for _, season := range seasons {
		if season <= 0 {
			continue
		}
		if _, ok := seen[season]; ok {
			continue
		}
		seen[season] = struct{}{}
		out = append(out, season)
	}
	sort.Ints(out)
	return out
}
