package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/gridironpool/firsttd/internal/usecase"
)

type Handler struct {
	gradingService  *usecase.GradingService
	pickService     *usecase.PickService
	backfillService *usecase.BackfillService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	gradingService *usecase.GradingService,
	pickService *usecase.PickService,
	backfillService *usecase.BackfillService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		gradingService:  gradingService,
		pickService:     pickService,
		backfillService: backfillService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func decodeJSONBody(r *http.Request, target any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseSeasonPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("season"))
	season, err := strconv.Atoi(raw)
	if err != nil || season <= 0 {
		return 0, fmt.Errorf("%w: season path value %q must be a positive integer", usecase.ErrInvalidInput, raw)
	}
	return season, nil
}

func parseWeekQuery(r *http.Request) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return nil, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week <= 0 {
		return nil, fmt.Errorf("%w: week query value %q must be a positive integer", usecase.ErrInvalidInput, raw)
	}
	return &week, nil
}

type gradeErrorDTO struct {
	PickID  string `json:"pick_id"`
	Message string `json:"message"`
}

type gradeSummaryDTO struct {
	Season         int             `json:"season"`
	Week           *int            `json:"week,omitempty"`
	NoData         bool            `json:"no_data"`
	Graded         int             `json:"graded"`
	CorrectFirstTD int             `json:"correct_first_td"`
	AnyTimeTD      int             `json:"any_time_td"`
	FailedToMatch  int             `json:"failed_to_match"`
	Inserted       int             `json:"inserted"`
	Updated        int             `json:"updated"`
	Deleted        int64           `json:"deleted,omitempty"`
	Errors         []gradeErrorDTO `json:"errors,omitempty"`
}

func gradeSummaryToDTO(summary usecase.GradeSummary) gradeSummaryDTO {
	dto := gradeSummaryDTO{
		Season:         summary.Season,
		Week:           summary.Week,
		NoData:         summary.NoData,
		Graded:         summary.Graded,
		CorrectFirstTD: summary.CorrectFirstTD,
		AnyTimeTD:      summary.AnyTimeTD,
		FailedToMatch:  summary.FailedToMatch,
		Inserted:       summary.Inserted,
		Updated:        summary.Updated,
		Deleted:        summary.Deleted,
	}
	for _, item := range summary.Errors {
		dto.Errors = append(dto.Errors, gradeErrorDTO{PickID: item.PickID, Message: item.Message})
	}
	return dto
}

func (h *Handler) GradeSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GradeSeason")
	defer span.End()

	season, err := parseSeasonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := parseWeekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.gradingService.GradeSeason(ctx, season, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "grade season failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gradeSummaryToDTO(summary))
}

func (h *Handler) GradeSeasonAnyTime(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GradeSeasonAnyTime")
	defer span.End()

	season, err := parseSeasonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := parseWeekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.gradingService.GradeAnyTimeTDOnly(ctx, season, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "any-time grading failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gradeSummaryToDTO(summary))
}

func (h *Handler) RegradeSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegradeSeason")
	defer span.End()

	season, err := parseSeasonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.gradingService.RegradeSeason(ctx, season)
	if err != nil {
		h.logger.ErrorContext(ctx, "regrade season failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gradeSummaryToDTO(summary))
}

type gradedPickDTO struct {
	PickID       string    `json:"pick_id"`
	UserID       string    `json:"user_id"`
	Season       int       `json:"season"`
	Week         int       `json:"week"`
	Team         string    `json:"team,omitempty"`
	PlayerName   string    `json:"player_name"`
	Odds         *int      `json:"odds,omitempty"`
	GameID       string    `json:"game_id,omitempty"`
	ActualScorer *string   `json:"actual_scorer,omitempty"`
	IsCorrect    bool      `json:"is_correct"`
	AnyTimeTD    bool      `json:"any_time_td"`
	ActualReturn float64   `json:"actual_return"`
	GradedAt     time.Time `json:"graded_at"`
}

func (h *Handler) ListSeasonResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonResults")
	defer span.End()

	season, err := parseSeasonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := parseWeekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	graded, err := h.gradingService.SeasonResults(ctx, season, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "list season results failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gradedPickDTO, 0, len(graded))
	for _, g := range graded {
		items = append(items, gradedPickDTO{
			PickID:       g.Pick.ID,
			UserID:       g.Pick.UserID,
			Season:       g.Pick.Season,
			Week:         g.Pick.Week,
			Team:         g.Pick.Team,
			PlayerName:   g.Pick.PlayerName,
			Odds:         g.Pick.Odds,
			GameID:       g.Pick.GameID,
			ActualScorer: g.Result.ActualScorer,
			IsCorrect:    g.Result.IsCorrect,
			AnyTimeTD:    g.Result.AnyTimeTD,
			ActualReturn: g.Result.ActualReturn,
			GradedAt:     g.Result.GradedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type firstTouchdownDTO struct {
	GameID   string `json:"game_id"`
	PlayID   int64  `json:"play_id"`
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	Scorer   string `json:"scorer"`
	Team     string `json:"team"`
	IsReturn bool   `json:"is_return"`
}

func (h *Handler) ListFirstTouchdowns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFirstTouchdowns")
	defer span.End()

	season, err := parseSeasonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lookup, err := h.gradingService.FirstTouchdowns(ctx, season)
	if err != nil {
		h.logger.ErrorContext(ctx, "list first touchdowns failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	firsts := lookup.FirstTouchdowns()
	items := make([]firstTouchdownDTO, 0, len(firsts))
	for _, td := range firsts {
		items = append(items, firstTouchdownDTO{
			GameID:   td.GameID,
			PlayID:   td.PlayID,
			Season:   td.Season,
			Week:     td.Week,
			Scorer:   td.Scorer,
			Team:     td.Team,
			IsReturn: td.IsReturn,
		})
	}
	sortFirstTouchdownDTOs(items)

	writeSuccess(ctx, w, http.StatusOK, items)
}
