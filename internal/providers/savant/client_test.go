package savant

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/stats"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

const sampleCSV = "\ufeffpitch_type,game_date,release_speed,batter,pitcher,events,description,estimated_ba_using_speedangle,estimated_woba_using_speedangle,estimated_slg_using_speedangle\n" +
	"FF,2024-05-01,97.1,600,543037,strikeout,swinging_strike,,,\n" +
	"FF,2024-05-01,96.8,601,543037,single,hit_into_play,0.4,0.45,0.5\n" +
	"SL,2024-05-01,88.0,602,543037,,ball,null,NA,\n" +
	",2024-05-01,80.0,603,543037,,pitchout,,,\n"

func newTestClient(rt roundTripperFunc) *Client {
	return NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})
}

func csvResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchPitchEventsParsesCSV(t *testing.T) {
	var rawQuery, path string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		rawQuery = req.URL.RawQuery
		path = req.URL.Path
		return csvResponse(http.StatusOK, sampleCSV), nil
	})

	events, err := client.FetchPitchEvents(context.Background(), pitches.RolePitcher, 543037, "2024-04-01", "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/statcast_search/csv" {
		t.Fatalf("unexpected path %s", path)
	}
	wantQuery := "all=true&type=details&player_type=pitcher&pitchers_lookup[]=543037&game_date_gt=2024-04-01&game_date_lt=2024-06-01"
	if rawQuery != wantQuery {
		t.Fatalf("unexpected query\n got %s\nwant %s", rawQuery, wantQuery)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	first := events[0]
	if first.PitchType != "FF" || first.Event != "strikeout" || first.Description != "swinging_strike" {
		t.Fatalf("unexpected first event %+v", first)
	}
	if first.EstBA.Valid || first.BatterID != 600 || first.PitcherID != 543037 || first.GameDate != "2024-05-01" {
		t.Fatalf("unexpected first event fields %+v", first)
	}
	second := events[1]
	if !second.EstBA.Valid || second.EstBA.Value != 0.4 || second.EstSLG.Value != 0.5 || second.EstWOBA.Value != 0.45 {
		t.Fatalf("unexpected estimates %+v", second)
	}
	if events[2].EstBA.Valid || events[2].EstWOBA.Valid || events[2].Event != "" {
		t.Fatalf("expected null markers to be absent, got %+v", events[2])
	}
	if events[3].PitchType != "" {
		t.Fatalf("expected absent pitch type, got %q", events[3].PitchType)
	}

	rows := stats.Aggregate(events)
	if len(rows) != 2 || rows[0].Code != "FF" || rows[0].PlateAppearances != 2 {
		t.Fatalf("unexpected aggregate %+v", rows)
	}
}

func TestFetchPitchEventsBatterQuery(t *testing.T) {
	var rawQuery string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		rawQuery = req.URL.RawQuery
		return csvResponse(http.StatusOK, ""), nil
	})

	events, err := client.FetchPitchEvents(context.Background(), pitches.RoleBatter, 646240, "2024-01-01", "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Fatalf("expected empty events for empty body, got %v", events)
	}
	if !strings.Contains(rawQuery, "player_type=batter&batters_lookup[]=646240") {
		t.Fatalf("unexpected batter query %s", rawQuery)
	}
}

func TestFetchPitchEventsErrors(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		client := newTestClient(func(*http.Request) (*http.Response, error) {
			t.Fatal("no request expected")
			return nil, nil
		})
		if _, err := client.FetchPitchEvents(context.Background(), pitches.RolePitcher, 1, "yesterday", "2024-06-01"); err == nil {
			t.Fatal("expected error for malformed start")
		}
	})
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(func(*http.Request) (*http.Response, error) {
			return csvResponse(http.StatusServiceUnavailable, "busy"), nil
		})
		_, err := client.FetchPitchEvents(context.Background(), pitches.RolePitcher, 1, "2024-01-01", "2024-06-01")
		var statusErr *providers.StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("expected status error, got %v", err)
		}
		if !providers.Retryable(err) {
			t.Fatalf("expected 503 to be retryable")
		}
	})
}

func TestClientImplementsPitchEventProvider(t *testing.T) {
	var _ providers.PitchEventProvider = NewClient(Config{})
}
