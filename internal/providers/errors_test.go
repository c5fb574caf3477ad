package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Upstream:   "statsapi",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got != "statsapi: rate limited (status=429)" {
		t.Fatalf("unexpected error string %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got != "provider rate limited" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Upstream: "savant", StatusCode: 502, Body: "bad gateway"}
	if err.Error() != "savant: unexpected status 502: bad gateway" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
	if (&StatusError{Upstream: "savant", StatusCode: 404}).Error() != "savant: unexpected status 404" {
		t.Fatalf("unexpected error string without body")
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", errors.New("connection reset"), true},
		{"rate limit", &RateLimitError{StatusCode: 429}, true},
		{"server error", &StatusError{StatusCode: 503}, true},
		{"not found", &StatusError{StatusCode: 404}, false},
		{"bad request wrapped", fmt.Errorf("x: %w", &StatusError{StatusCode: 400}), false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("x: %w", context.DeadlineExceeded), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Retryable(tc.err); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func newResponse(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
	}
}

func TestCheckResponse(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := CheckResponse("statsapi", newResponse(http.StatusOK, "{}", nil), now); err != nil {
		t.Fatalf("expected nil for 200, got %v", err)
	}

	err := CheckResponse("statsapi", newResponse(http.StatusTooManyRequests, "slow down", http.Header{"Retry-After": []string{"3"}}), now)
	rl, ok := AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 3*time.Second || rl.Message != "slow down" {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}

	err = CheckResponse("savant", newResponse(http.StatusInternalServerError, " oops ", nil), now)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 500 || statusErr.Body != "oops" {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", 0},
		{"10", 10 * time.Second},
		{"-1", 0},
		{now.Add(30 * time.Second).Format(http.TimeFormat), 30 * time.Second},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := ParseRetryAfter(tc.raw, now); got != tc.want {
			t.Fatalf("ParseRetryAfter(%q): expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}

func TestTransportHelpers(t *testing.T) {
	if NormalizeBaseURL("", "https://x.test/") != "https://x.test" {
		t.Fatalf("expected default base url trimmed")
	}
	if NormalizeBaseURL(" http://y.test/ ", "https://x.test") != "http://y.test" {
		t.Fatalf("expected override trimmed")
	}
	custom := &http.Client{}
	if ResolveHTTPClient(custom, 0) != custom {
		t.Fatalf("expected provided client to be used")
	}
	c, ok := ResolveHTTPClient(nil, 0).(*http.Client)
	if !ok || c.Timeout != DefaultHTTPTimeout {
		t.Fatalf("expected default client with timeout, got %+v", c)
	}
}
