package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridironpool/firsttd/internal/domain/pick"
	"github.com/gridironpool/firsttd/internal/platform/id"
)

type PickService struct {
	repo  pick.Repository
	idGen id.Generator
	now   func() time.Time
}

func NewPickService(repo pick.Repository, idGen id.Generator) *PickService {
	return &PickService{
		repo:  repo,
		idGen: idGen,
		now:   time.Now,
	}
}

type CreatePickInput struct {
	UserID     string
	Season     int
	Week       int
	Team       string
	PlayerName string
	Odds       *int
	GameID     string
}

func (s *PickService) CreatePick(ctx context.Context, input CreatePickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.CreatePick")
	defer span.End()

	if strings.TrimSpace(input.UserID) == "" {
		return pick.Pick{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.PlayerName) == "" {
		return pick.Pick{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if input.Season <= 0 {
		return pick.Pick{}, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	if input.Week <= 0 {
		return pick.Pick{}, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	publicID, err := s.idGen.NewID()
	if err != nil {
		return pick.Pick{}, fmt.Errorf("generate pick id: %w", err)
	}

	p := pick.Pick{
		ID:         "pick-" + publicID,
		UserID:     strings.TrimSpace(input.UserID),
		Season:     input.Season,
		Week:       input.Week,
		Team:       strings.TrimSpace(input.Team),
		PlayerName: strings.TrimSpace(input.PlayerName),
		Odds:       input.Odds,
		GameID:     strings.TrimSpace(input.GameID),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return pick.Pick{}, fmt.Errorf("create pick: %w", err)
	}
	return p, nil
}

func (s *PickService) ListSeasonPicks(ctx context.Context, season int, week *int) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListSeasonPicks")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	picks, err := s.repo.ListBySeason(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}
	sortPicks(picks)
	return picks, nil
}
