// Package savant fetches pitch-level Statcast events from Baseball Savant's CSV search.
package savant

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

const (
	upstreamName   = "savant"
	defaultBaseURL = "https://baseballsavant.mlb.com"
	searchPath     = "/statcast_search/csv"
)

// Config controls how the client reaches Baseball Savant.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client implements providers.PitchEventProvider.
type Client struct {
	baseURL    string
	httpClient providers.HTTPDoer
	now        func() time.Time
}

// NewClient constructs a Savant client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// FetchPitchEvents returns every pitch thrown (role pitcher) or faced (role batter)
// by playerID with a game date in [start, end].
func (c *Client) FetchPitchEvents(ctx context.Context, role pitches.Role, playerID int, start, end string) ([]pitches.PitchEvent, error) {
	if _, err := timeutil.ParseDate(start); err != nil {
		return nil, fmt.Errorf("%s: start: %w", upstreamName, err)
	}
	if _, err := timeutil.ParseDate(end); err != nil {
		return nil, fmt.Errorf("%s: end: %w", upstreamName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = buildQuery(role, playerID, start, end)
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", upstreamName, err)
	}
	if err := providers.CheckResponse(upstreamName, resp, c.now()); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	events, err := parseEvents(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", upstreamName, err)
	}
	return events, nil
}

// buildQuery keeps the literal "[]" in the lookup key the search expects.
func buildQuery(role pitches.Role, playerID int, start, end string) string {
	lookup := "pitchers_lookup[]"
	playerType := string(pitches.RolePitcher)
	if role == pitches.RoleBatter {
		lookup = "batters_lookup[]"
		playerType = string(pitches.RoleBatter)
	}
	parts := []string{
		"all=true",
		"type=details",
		"player_type=" + playerType,
		lookup + "=" + strconv.Itoa(playerID),
		"game_date_gt=" + url.QueryEscape(start),
		"game_date_lt=" + url.QueryEscape(end),
	}
	return strings.Join(parts, "&")
}
