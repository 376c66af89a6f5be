package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(cfg BreakerConfig, clock *time.Time) *Breaker {
	b := NewBreaker(cfg)
	b.now = func() time.Time { return *clock }
	return b
}

func TestBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	clock := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	b := newTestBreaker(BreakerConfig{Enabled: true, FailureThreshold: 3, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}, &clock)

	failure := errors.New("feed unavailable")
	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("allow before trip: %v", err)
		}
		b.Observe(failure)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen after trip, got %v", err)
	}
	if got := b.State(); got != BreakerOpen {
		t.Fatalf("unexpected state: got=%s want=%s", got, BreakerOpen)
	}
}

func TestBreaker_SuccessResetsFailureStreak(t *testing.T) {
	t.Parallel()

	clock := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	b := newTestBreaker(BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}, &clock)

	b.Observe(errors.New("boom"))
	b.Observe(nil)
	b.Observe(errors.New("boom"))

	if err := b.Allow(); err != nil {
		t.Fatalf("streak should have reset, got %v", err)
	}
}

func TestBreaker_HalfOpenProbeThenClose(t *testing.T) {
	t.Parallel()

	clock := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	b := newTestBreaker(BreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: 30 * time.Second, HalfOpenMaxReq: 1}, &clock)

	b.Observe(errors.New("boom"))
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker, got %v", err)
	}

	clock = clock.Add(31 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	b.Observe(nil)

	if got := b.State(); got != BreakerClosed {
		t.Fatalf("unexpected state after probe success: got=%s want=%s", got, BreakerClosed)
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	clock := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	b := newTestBreaker(BreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: 30 * time.Second, HalfOpenMaxReq: 1}, &clock)

	b.Observe(errors.New("boom"))
	clock = clock.Add(31 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	b.Observe(errors.New("boom again"))

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected reopened breaker, got %v", err)
	}
}

func TestBreaker_DisabledAlwaysAllows(t *testing.T) {
	t.Parallel()

	b := NewBreaker(BreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 10; i++ {
		b.Observe(errors.New("boom"))
		if err := b.Allow(); err != nil {
			t.Fatalf("disabled breaker must allow, got %v", err)
		}
	}
}
