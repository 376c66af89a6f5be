package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironpool/firsttd/internal/domain/pbp"
	"github.com/gridironpool/firsttd/internal/domain/pick"
	"github.com/gridironpool/firsttd/internal/infrastructure/repository/memory"
	"github.com/gridironpool/firsttd/internal/platform/id"
	"github.com/gridironpool/firsttd/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	if err := store.Picks().Create(context.Background(), pick.Pick{
		ID:         "p1",
		UserID:     "alice",
		Season:     2024,
		Week:       1,
		Team:       "Dallas Cowboys",
		PlayerName: "Jake Ferguson",
		GameID:     "2024_01_DAL_PHI",
	}); err != nil {
		t.Fatalf("seed pick: %v", err)
	}

	events := map[int][]pbp.ScoringEvent{
		2024: {
			{GameID: "2024_01_DAL_PHI", PlayID: 300, Season: 2024, Week: 1, Offense: "PHI", Defense: "DAL", Touchdown: true, ReceiverName: "J.Ferguson"},
		},
	}
	provider := usecase.NewTDLookupProvider(memory.NewPBPSource(events), time.Hour, nil)
	grading := usecase.NewGradingService(provider, store.Picks(), store.Results(), usecase.GradingConfig{}, nil)
	picks := usecase.NewPickService(store.Picks(), id.NewRandomGenerator())
	backfill := usecase.NewBackfillService(grading, nil)

	handler := NewHandler(grading, picks, backfill, nil)
	return NewRouter(handler, nil, []string{"*"}, "job-secret")
}

func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return envelope
}

func TestGradeSeasonEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/seasons/2024/grade", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	if got, _ := data["graded"].(float64); got != 1 {
		t.Fatalf("graded = %v, want 1", data["graded"])
	}
	if got, _ := data["correct_first_td"].(float64); got != 1 {
		t.Fatalf("correct_first_td = %v, want 1", data["correct_first_td"])
	}
}

func TestGradeSeasonEndpointRejectsBadSeason(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/seasons/abc/grade", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListSeasonResultsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	grade := httptest.NewRequest(http.MethodPost, "/v1/seasons/2024/grade", nil)
	router.ServeHTTP(httptest.NewRecorder(), grade)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/2024/results", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec.Body.Bytes())
	items, ok := envelope["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one result, got %v", envelope["data"])
	}
	row, _ := items[0].(map[string]any)
	if got, _ := row["is_correct"].(bool); !got {
		t.Fatalf("expected correct pick, got %v", row)
	}
	if got, _ := row["actual_scorer"].(string); got != "J.Ferguson" {
		t.Fatalf("actual_scorer = %v, want J.Ferguson", row["actual_scorer"])
	}
}

func TestCreatePickEndpoint(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"user_id":"bob","season":2024,"week":1,"player_name":"CeeDee Lamb","game_id":"2024_01_DAL_PHI"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, _ := envelope["data"].(map[string]any)
	if got, _ := data["user_id"].(string); got != "bob" {
		t.Fatalf("user_id = %v, want bob", data["user_id"])
	}
}

func TestCreatePickEndpointValidates(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(`{"season":2024}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBackfillEndpointRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/backfill", strings.NewReader(`{"seasons":[2024]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/backfill", strings.NewReader(`{"seasons":[2024]}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestFirstTouchdownsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/2024/touchdowns/first", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	items, ok := envelope["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one first touchdown, got %v", envelope["data"])
	}
	row, _ := items[0].(map[string]any)
	if got, _ := row["scorer"].(string); got != "J.Ferguson" {
		t.Fatalf("scorer = %v, want J.Ferguson", row["scorer"])
	}
}
