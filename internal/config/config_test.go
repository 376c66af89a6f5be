package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.TDCacheTTL != time.Hour {
		t.Fatalf("unexpected TDCacheTTL: %s", cfg.TDCacheTTL)
	}
	if cfg.NameMatchThreshold != 0.75 {
		t.Fatalf("unexpected NameMatchThreshold: %v", cfg.NameMatchThreshold)
	}
	if cfg.DefaultStake != 1.0 {
		t.Fatalf("unexpected DefaultStake: %v", cfg.DefaultStake)
	}
	if cfg.FeedEnabled {
		t.Fatalf("expected FeedEnabled=false by default")
	}
	if cfg.FeedMaxWeeks != 23 {
		t.Fatalf("unexpected FeedMaxWeeks: %d", cfg.FeedMaxWeeks)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_DBRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when DB_ENABLED=true without DB_URL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_ThresholdBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NAME_MATCH_THRESHOLD", "1.5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for out-of-range NAME_MATCH_THRESHOLD")
	}
}

func TestLoad_FeedConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("FEED_ENABLED", "true")
	t.Setenv("FEED_BASE_URL", "https://feeds.example.com/pbp")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("FEED_MAX_RETRIES", "3")
	t.Setenv("FEED_MAX_CONCURRENT", "8")
	t.Setenv("FEED_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.FeedEnabled {
		t.Fatalf("expected FeedEnabled=true")
	}
	if cfg.FeedBaseURL != "https://feeds.example.com/pbp" {
		t.Fatalf("unexpected FeedBaseURL: %q", cfg.FeedBaseURL)
	}
	if cfg.FeedTimeout != 5*time.Second {
		t.Fatalf("unexpected FeedTimeout: %s", cfg.FeedTimeout)
	}
	if cfg.FeedMaxRetries != 3 {
		t.Fatalf("unexpected FeedMaxRetries: %d", cfg.FeedMaxRetries)
	}
	if cfg.FeedMaxConcurrent != 8 {
		t.Fatalf("unexpected FeedMaxConcurrent: %d", cfg.FeedMaxConcurrent)
	}
	if cfg.FeedCircuitFailureCount != 7 {
		t.Fatalf("unexpected FeedCircuitFailureCount: %d", cfg.FeedCircuitFailureCount)
	}
}

func TestLoad_GradingKnobs(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TD_CACHE_TTL", "30m")
	t.Setenv("NAME_MATCH_THRESHOLD", "0.9")
	t.Setenv("DEFAULT_STAKE", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TDCacheTTL != 30*time.Minute {
		t.Fatalf("unexpected TDCacheTTL: %s", cfg.TDCacheTTL)
	}
	if cfg.NameMatchThreshold != 0.9 {
		t.Fatalf("unexpected NameMatchThreshold: %v", cfg.NameMatchThreshold)
	}
	if cfg.DefaultStake != 2.5 {
		t.Fatalf("unexpected DefaultStake: %v", cfg.DefaultStake)
	}
}
