package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/gridironpool/firsttd/external/nflverse"
	"github.com/gridironpool/firsttd/internal/config"
	"github.com/gridironpool/firsttd/internal/domain/pbp"
	"github.com/gridironpool/firsttd/internal/domain/pick"
	"github.com/gridironpool/firsttd/internal/domain/result"
	"github.com/gridironpool/firsttd/internal/infrastructure/repository/memory"
	"github.com/gridironpool/firsttd/internal/infrastructure/repository/postgres"
	"github.com/gridironpool/firsttd/internal/interfaces/httpapi"
	idgen "github.com/gridironpool/firsttd/internal/platform/id"
	"github.com/gridironpool/firsttd/internal/platform/logging"
	"github.com/gridironpool/firsttd/internal/platform/resilience"
	"github.com/gridironpool/firsttd/internal/usecase"
)

// Services bundles the wired use cases so the HTTP server and the grading
// CLI share one construction path.
type Services struct {
	Grading  *usecase.GradingService
	Picks    *usecase.PickService
	Backfill *usecase.BackfillService

	dbClose func() error
}

func NewServices(cfg config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pickRepo, resultRepo, dbClose, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	source := newPBPSource(cfg, logger)
	lookups := usecase.NewTDLookupProvider(source, cfg.TDCacheTTL, logging.Default())

	gradingSvc := usecase.NewGradingService(
		lookups,
		pickRepo,
		resultRepo,
		usecase.GradingConfig{
			MatchThreshold: cfg.NameMatchThreshold,
			DefaultStake:   cfg.DefaultStake,
		},
		logging.Default(),
	)

	return &Services{
		Grading:  gradingSvc,
		Picks:    usecase.NewPickService(pickRepo, idgen.NewRandomGenerator()),
		Backfill: usecase.NewBackfillService(gradingSvc, logging.Default()),
		dbClose:  dbClose,
	}, nil
}

func (s *Services) Close() error {
	if s == nil || s.dbClose == nil {
		return nil
	}
	return s.dbClose()
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	services, err := NewServices(cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(services.Grading, services.Picks, services.Backfill, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	server.RegisterOnShutdown(func() {
		if err := services.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	})

	return server, nil
}

func newRepositories(cfg config.Config, logger *slog.Logger) (pick.Repository, result.Repository, func() error, error) {
	if !cfg.DBEnabled {
		store := memory.SeedStore(time.Now())
		logger.Info("repositories ready", "backend", "memory")
		return memory.NewPickRepository(store), memory.NewResultRepository(store), nil, nil
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinaryResult),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("repositories ready", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))

	return postgres.NewPickRepository(db), postgres.NewResultRepository(db), db.Close, nil
}

func newPBPSource(cfg config.Config, logger *slog.Logger) pbp.Source {
	if !cfg.FeedEnabled {
		logger.Info("play-by-play source ready", "backend", "memory", "season", memory.SeedSeason)
		return memory.NewPBPSource(memory.SeedScoringEvents())
	}

	logger.Info("play-by-play source ready", "backend", "feed", "base_url", cfg.FeedBaseURL)

	return nflverse.NewClient(nflverse.ClientConfig{
		BaseURL:       cfg.FeedBaseURL,
		Timeout:       cfg.FeedTimeout,
		MaxRetries:    cfg.FeedMaxRetries,
		MaxWeeks:      cfg.FeedMaxWeeks,
		MaxConcurrent: cfg.FeedMaxConcurrent,
		Logger:        logging.Default(),
		Breaker: resilience.BreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})
}
