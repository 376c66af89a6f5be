package httpapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/gridironpool/firsttd/internal/usecase"
)

type createPickRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	Season     int    `json:"season" validate:"required,gt=0"`
	Week       int    `json:"week" validate:"required,gt=0"`
	Team       string `json:"team" validate:"omitempty,max=60"`
	PlayerName string `json:"player_name" validate:"required,max=100"`
	Odds       *int   `json:"odds"`
	GameID     string `json:"game_id" validate:"omitempty,max=40"`
}

type pickDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	Team       string    `json:"team,omitempty"`
	PlayerName string    `json:"player_name"`
	Odds       *int      `json:"odds,omitempty"`
	GameID     string    `json:"game_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handler) CreatePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePick")
	defer span.End()

	var req createPickRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.pickService.CreatePick(ctx, usecase.CreatePickInput{
		UserID:     req.UserID,
		Season:     req.Season,
		Week:       req.Week,
		Team:       req.Team,
		PlayerName: req.PlayerName,
		Odds:       req.Odds,
		GameID:     req.GameID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create pick failed", "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickDTO{
		ID:         created.ID,
		UserID:     created.UserID,
		Season:     created.Season,
		Week:       created.Week,
		Team:       created.Team,
		PlayerName: created.PlayerName,
		Odds:       created.Odds,
		GameID:     created.GameID,
		CreatedAt:  created.CreatedAt,
	})
}

func (h *Handler) ListSeasonPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonPicks")
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

	picks, err := h.pickService.ListSeasonPicks(ctx, season, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "list picks failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickDTO{
			ID:         p.ID,
			UserID:     p.UserID,
			Season:     p.Season,
			Week:       p.Week,
			Team:       p.Team,
			PlayerName: p.PlayerName,
			Odds:       p.Odds,
			GameID:     p.GameID,
			CreatedAt:  p.CreatedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func sortFirstTouchdownDTOs(items []firstTouchdownDTO) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Week != items[j].Week {
			return items[i].Week < items[j].Week
		}
		return items[i].GameID < items[j].GameID
	})
}
