package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/gridironpool/firsttd/internal/app"
	"github.com/gridironpool/firsttd/internal/config"
	"github.com/gridironpool/firsttd/internal/platform/logging"
	"github.com/gridironpool/firsttd/internal/usecase"
)

func main() {
	season := flag.Int("season", 0, "season to grade (required)")
	week := flag.Int("week", 0, "limit grading to one week (0 grades the whole season)")
	regrade := flag.Bool("regrade", false, "wipe the season's results and grade from scratch")
	anytime := flag.Bool("anytime", false, "recompute the any-time touchdown flag only")
	flag.Parse()

	if *season <= 0 {
		fmt.Fprintln(os.Stderr, "season is required")
		flag.Usage()
		os.Exit(2)
	}
	if *regrade && *anytime {
		fmt.Fprintln(os.Stderr, "-regrade and -anytime are mutually exclusive")
		os.Exit(2)
	}
	if *regrade && *week > 0 {
		fmt.Fprintln(os.Stderr, "-regrade always covers the whole season; -week is not allowed")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)
	defer func() { _ = appLogger.Sync() }()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	services, err := app.NewServices(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build services: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Error("close services", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var weekFilter *int
	if *week > 0 {
		weekFilter = week
	}

	var summary usecase.GradeSummary
	switch {
	case *regrade:
		summary, err = services.Grading.RegradeSeason(ctx, *season)
	case *anytime:
		summary, err = services.Grading.GradeAnyTimeTDOnly(ctx, *season, weekFilter)
	default:
		summary, err = services.Grading.GradeSeason(ctx, *season, weekFilter)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "grade season %d: %v\n", *season, err)
		os.Exit(1)
	}

	out, err := sonic.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode summary: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
