package nflverse

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/gridironpool/firsttd/internal/domain/pbp"
	"github.com/gridironpool/firsttd/internal/platform/logging"
	"github.com/gridironpool/firsttd/internal/platform/resilience"
	"github.com/gridironpool/firsttd/internal/usecase"
)

const (
	defaultBaseURL       = "https://feeds.nflverse.com/pbp"
	defaultTimeout       = 20 * time.Second
	defaultMaxWeeks      = 23
	defaultMaxConcurrent = 4
)

var errFeedTransient = crerr.New("play-by-play feed transient failure")

type ClientConfig struct {
	HTTPClient    *fasthttp.Client
	BaseURL       string
	Timeout       time.Duration
	MaxRetries    int
	MaxWeeks      int
	MaxConcurrent int
	Logger        *logging.Logger
	Breaker       resilience.BreakerConfig
}

// Client fetches season play-by-play from the feed, one request per week.
// It implements pbp.Source.
type Client struct {
	httpClient    *fasthttp.Client
	baseURL       string
	timeout       time.Duration
	maxRetries    int
	maxWeeks      int
	maxConcurrent int
	logger        *logging.Logger
	breaker       *resilience.Breaker
	flight        resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxWeeks := cfg.MaxWeeks
	if maxWeeks <= 0 {
		maxWeeks = defaultMaxWeeks
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		timeout:       timeout,
		maxRetries:    maxRetries,
		maxWeeks:      maxWeeks,
		maxConcurrent: maxConcurrent,
		logger:        logger,
		breaker:       resilience.NewBreaker(cfg.Breaker),
	}
}

type feedPlay struct {
	GameID              string `json:"game_id"`
	PlayID              int64  `json:"play_id"`
	Season              int    `json:"season"`
	Week                int    `json:"week"`
	Quarter             int    `json:"qtr"`
	Posteam             string `json:"posteam"`
	Defteam             string `json:"defteam"`
	PlayType            string `json:"play_type"`
	Touchdown           int    `json:"touchdown"`
	ReturnTouchdown     int    `json:"return_touchdown"`
	PasserName          string `json:"passer_player_name"`
	RusherName          string `json:"rusher_player_name"`
	ReceiverName        string `json:"receiver_player_name"`
	ReturnerName        string `json:"returner_player_name"`
	FumbleRecoveryName  string `json:"fumble_recovery_1_player_name"`
	LateralReceiverName string `json:"lateral_receiver_player_name"`
}

type weekEvents struct {
	week   int
	events []pbp.ScoringEvent
}

// SeasonScoringEvents fetches every week of the season concurrently and
// returns the merged scoring events in week then play order. A season the
// feed has never published yields an empty slice, not an error.
func (c *Client) SeasonScoringEvents(ctx context.Context, season int) ([]pbp.ScoringEvent, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	out, err, _ := c.flight.Do("season:"+strconv.Itoa(season), func() (any, error) {
		return c.fetchSeason(ctx, season)
	})
	if err != nil {
		return nil, err
	}

	events, ok := out.([]pbp.ScoringEvent)
	if !ok {
		return nil, fmt.Errorf("unexpected feed payload type %T", out)
	}
	return events, nil
}

func (c *Client) fetchSeason(ctx context.Context, season int) ([]pbp.ScoringEvent, error) {
	p := pool.NewWithResults[weekEvents]().WithContext(ctx).WithMaxGoroutines(c.maxConcurrent)
	for week := 1; week <= c.maxWeeks; week++ {
		week := week
		p.Go(func(ctx context.Context) (weekEvents, error) {
			events, err := c.fetchWeek(ctx, season, week)
			if err != nil {
				return weekEvents{}, fmt.Errorf("fetch season=%d week=%d: %w", season, week, err)
			}
			return weekEvents{week: week, events: events}, nil
		})
	}

	chunks, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(chunks, func(i, j int) bool { return chunks[i].week < chunks[j].week })

	events := make([]pbp.ScoringEvent, 0, 64)
	for _, chunk := range chunks {
		events = append(events, chunk.events...)
	}
	return events, nil
}

func (c *Client) fetchWeek(ctx context.Context, season, week int) ([]pbp.ScoringEvent, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "feed circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: play-by-play feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	url := fmt.Sprintf("%s/seasons/%d/weeks/%d/plays.json", c.baseURL, season, week)
	body, err := c.executeRequest(ctx, url)
	c.breaker.Observe(transientOnly(err))
	if err != nil {
		return nil, err
	}
	if body == nil {
		// Week not published yet.
		return []pbp.ScoringEvent{}, nil
	}
	defer bytebufferpool.Put(body)

	var plays []feedPlay
	if err := sonic.Unmarshal(body.B, &plays); err != nil {
		return nil, fmt.Errorf("decode feed payload: %w", err)
	}

	events := make([]pbp.ScoringEvent, 0, len(plays))
	for _, play := range plays {
		events = append(events, playToEvent(play, season, week))
	}
	return events, nil
}

// executeRequest returns a pooled buffer the caller must release, or nil for
// a 404 response.
func (c *Client) executeRequest(ctx context.Context, url string) (*bytebufferpool.ByteBuffer, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, retryable, err := c.doOnce(url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "feed request failed", "url", url, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(url string) (*bytebufferpool.ByteBuffer, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, true, fmt.Errorf("%w: send request: %v", errFeedTransient, err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return nil, false, nil
	case status >= 200 && status < 300:
		body := bytebufferpool.Get()
		if _, err := body.Write(resp.Body()); err != nil {
			bytebufferpool.Put(body)
			return nil, true, fmt.Errorf("%w: copy response body: %v", errFeedTransient, err)
		}
		return body, false, nil
	case isRetryableStatus(status):
		return nil, true, fmt.Errorf("%w: feed status=%d", errFeedTransient, status)
	default:
		return nil, false, fmt.Errorf("feed status=%d", status)
	}
}

func playToEvent(play feedPlay, season, week int) pbp.ScoringEvent {
	if play.Season == 0 {
		play.Season = season
	}
	if play.Week == 0 {
		play.Week = week
	}
	return pbp.ScoringEvent{
		GameID:              play.GameID,
		PlayID:              play.PlayID,
		Season:              play.Season,
		Week:                play.Week,
		Quarter:             play.Quarter,
		Offense:             play.Posteam,
		Defense:             play.Defteam,
		PlayType:            play.PlayType,
		Touchdown:           play.Touchdown != 0,
		ReturnTouchdown:     play.ReturnTouchdown != 0,
		PasserName:          play.PasserName,
		RusherName:          play.RusherName,
		ReceiverName:        play.ReceiverName,
		ReturnerName:        play.ReturnerName,
		FumbleRecoveryName:  play.FumbleRecoveryName,
		LateralReceiverName: play.LateralReceiverName,
	}
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

// IsTransient reports whether the failure is worth retrying later.
func IsTransient(err error) bool {
	return stderrors.Is(err, errFeedTransient)
}

func transientOnly(err error) error {
	if err == nil || !IsTransient(err) {
		return nil
	}
	return err
}
