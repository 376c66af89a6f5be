package nflverse

import (
	"errors"
	"fmt"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/valyala/fasthttp"
)

func TestPlayToEvent(t *testing.T) {
	t.Parallel()

	raw := `{
		"game_id": "2024_01_BUF_NYJ",
		"play_id": 122,
		"qtr": 1,
		"posteam": "NYJ",
		"defteam": "BUF",
		"play_type": "pass",
		"touchdown": 1,
		"return_touchdown": 1,
		"passer_player_name": "A.Rodgers",
		"returner_player_name": "M.Milano"
	}`
	var play feedPlay
	if err := sonic.Unmarshal([]byte(raw), &play); err != nil {
		t.Fatalf("decode play: %v", err)
	}

	event := playToEvent(play, 2024, 1)
	if event.GameID != "2024_01_BUF_NYJ" || event.PlayID != 122 {
		t.Fatalf("unexpected identifiers: %+v", event)
	}
	// Season and week fall back to the request scope when absent from the row.
	if event.Season != 2024 || event.Week != 1 {
		t.Fatalf("season/week = %d/%d, want 2024/1", event.Season, event.Week)
	}
	if !event.Touchdown || !event.ReturnTouchdown {
		t.Fatalf("touchdown flags not decoded: %+v", event)
	}
	if event.Offense != "NYJ" || event.Defense != "BUF" {
		t.Fatalf("teams = %s/%s, want NYJ/BUF", event.Offense, event.Defense)
	}
	if event.ReturnerName != "M.Milano" {
		t.Fatalf("returner = %q, want M.Milano", event.ReturnerName)
	}
}

func TestPlayToEventKeepsRowScope(t *testing.T) {
	t.Parallel()

	event := playToEvent(feedPlay{GameID: "2023_05_KC_DEN", Season: 2023, Week: 5}, 2024, 1)
	if event.Season != 2023 || event.Week != 5 {
		t.Fatalf("season/week = %d/%d, want row values 2023/5", event.Season, event.Week)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   bool
	}{
		{fasthttp.StatusOK, false},
		{fasthttp.StatusNotFound, false},
		{fasthttp.StatusBadRequest, false},
		{fasthttp.StatusTooManyRequests, true},
		{fasthttp.StatusInternalServerError, true},
		{fasthttp.StatusBadGateway, true},
	}
	for _, tc := range cases {
		if got := isRetryableStatus(tc.status); got != tc.want {
			t.Fatalf("isRetryableStatus(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestTransientOnly(t *testing.T) {
	t.Parallel()

	transient := fmt.Errorf("%w: feed status=503", errFeedTransient)
	if !IsTransient(transient) {
		t.Fatalf("expected transient error to be recognized")
	}
	if transientOnly(transient) == nil {
		t.Fatalf("transient error must be observed by the breaker")
	}

	permanent := errors.New("feed status=400")
	if IsTransient(permanent) {
		t.Fatalf("permanent error misclassified as transient")
	}
	if transientOnly(permanent) != nil {
		t.Fatalf("permanent error must not trip the breaker")
	}
	if transientOnly(nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
}
