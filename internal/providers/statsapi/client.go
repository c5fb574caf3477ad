// Package statsapi reads schedules, boxscores, live feeds and player searches
// from the public MLB Stats API.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

// Config controls how the client reaches the Stats API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client implements providers.StatsAPI.
type Client struct {
	baseURL    string
	httpClient providers.HTTPDoer
	now        func() time.Time
}

// NewClient constructs a Stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// FetchSchedule returns the games on date, with probable pitchers when announced.
func (c *Client) FetchSchedule(ctx context.Context, date string) ([]schedule.Game, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, fmt.Errorf("statsapi: %w", err)
	}
	q := url.Values{}
	q.Set("sportId", sportIDMLB)
	q.Set("date", date)
	q.Set("hydrate", "probablePitcher")

	var resp scheduleResponse
	if err := c.getJSON(ctx, schedulePath, q, &resp); err != nil {
		return nil, err
	}
	return mapSchedule(resp), nil
}

// FetchBoxscore returns the raw player lists for a game.
func (c *Client) FetchBoxscore(ctx context.Context, gamePk int) (schedule.Boxscore, error) {
	var resp boxscoreResponse
	if err := c.getJSON(ctx, fmt.Sprintf(boxscorePath, gamePk), nil, &resp); err != nil {
		return schedule.Boxscore{}, err
	}
	return mapBoxscore(gamePk, resp), nil
}

// FetchGameState returns the live linescore of a game.
func (c *Client) FetchGameState(ctx context.Context, gamePk int) (schedule.GameState, error) {
	var resp liveFeedResponse
	if err := c.getJSON(ctx, fmt.Sprintf(liveFeedPath, gamePk), nil, &resp); err != nil {
		return schedule.GameState{}, err
	}
	return mapGameState(gamePk, resp), nil
}

// SearchPlayers looks up players by first and last name.
func (c *Client) SearchPlayers(ctx context.Context, first, last string) ([]players.Candidate, error) {
	q := url.Values{}
	q.Set("names", strings.TrimSpace(first+" "+last))

	var resp peopleResponse
	if err := c.getJSON(ctx, peoplePath, q, &resp); err != nil {
		return nil, err
	}
	return mapCandidates(resp), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		// The Stats API expects %20 rather than + in names.
		req.URL.RawQuery = strings.ReplaceAll(query.Encode(), "+", "%20")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", upstreamName, err)
	}
	if err := providers.CheckResponse(upstreamName, resp, c.now()); err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode %s: %w", upstreamName, path, err)
	}
	return nil
}
