package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingMiddlewareSetsRequestIDAndLogs(t *testing.T) {
	logger, buf := newBufferLogger()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected request id in context, got %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/schedule?date=2024-06-10", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	LoggingMiddleware(logger, metrics.NewRecorder(), next).ServeHTTP(rr, req)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected request id echoed")
	}
	out := buf.String()
	for _, want := range []string{"request complete", "request_id=abc-123", "status_code=418", "query=date=2024-06-10"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %q, got %s", want, out)
		}
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenInvalid(t *testing.T) {
	logger, _ := newBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got == "" || got == "bad id" {
			t.Fatalf("expected generated request id, got %q", got)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id")
	rr := httptest.NewRecorder()
	LoggingMiddleware(logger, nil, next).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got == "" || got == "bad id" {
		t.Fatalf("expected generated X-Request-ID header, got %q", got)
	}
}

func TestLoggingMiddlewareNilLoggerUsesDefault(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rr := httptest.NewRecorder()
	LoggingMiddleware(nil, nil, next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRouteLabelUsesMuxPattern(t *testing.T) {
	mux := http.NewServeMux()
	var seen *http.Request
	mux.HandleFunc("/games/{gamePk}/lineup", func(w http.ResponseWriter, r *http.Request) { seen = r })

	req := httptest.NewRequest(http.MethodGet, "/games/745000/lineup", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
	if seen == nil || routeLabel(req) != "/games/{gamePk}/lineup" {
		t.Fatalf("expected mux pattern as route label, got %q", routeLabel(req))
	}

	if got := routeLabel(httptest.NewRequest(http.MethodGet, "/nope", nil)); got != unmatchedRoute {
		t.Fatalf("expected unmatched label, got %q", got)
	}
}

func TestResponseWriterTracksStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted || rr.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", w.status)
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}
	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	//nolint:staticcheck // nil context is handled explicitly
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})
	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
		handler.ServeHTTP(rr, req)
	}
}
