package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
	"github.com/preston-bernstein/mlb-matchup-service/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.Port = "0"
	cfg.Metrics.Enabled = false
	cfg.Snapshots.Enabled = false
	cfg.Snapshots.Dir = filepath.Join(dir, "schedule")
	cfg.Job.DataDir = filepath.Join(dir, "daily")
	cfg.Job.ArchivePath = filepath.Join(dir, "daily", "archive.db")
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	srv := newServerWithUpstreams(cfg, nil, nil, metrics.NewRecorder())
	t.Cleanup(func() {
		for _, closeFn := range srv.closers {
			_ = closeFn()
		}
	})
	return srv
}

func TestServerServesHealthAndSchedule(t *testing.T) {
	srv := newTestServer(t, testConfig(t))
	router := srv.Handler()

	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, "/schedule?date="+testutil.FixtureDate, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var day schedule.DayResponse
	testutil.DecodeJSON(t, rr, &day)
	if day.Date != testutil.FixtureDate || len(day.Games) != 2 {
		t.Fatalf("unexpected schedule %+v", day)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected middleware to set a request id")
	}
}

func TestServerAdminRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, testConfig(t))
	rr := testutil.Serve(srv.Handler(), http.MethodPost, "/admin/jobs/daily-stats", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	cfg := testConfig(t)
	cfg.AdminToken = "secret"
	srv = newTestServer(t, cfg)
	rr = testutil.Serve(srv.Handler(), http.MethodPost, "/admin/snapshots/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestServerAdminTriggersDailyStats(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminToken = "secret"
	srv := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/admin/jobs/daily-stats", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if body["status"] != "ok" || body["count"].(float64) == 0 {
		t.Fatalf("unexpected job response %+v", body)
	}

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/archive", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var dates map[string][]string
	testutil.DecodeJSON(t, rr, &dates)
	if len(dates["dates"]) != 1 {
		t.Fatalf("expected one archived run date, got %+v", dates)
	}
}

func TestReadyReflectsJobOnlyWhenEnabled(t *testing.T) {
	srv := newTestServer(t, testConfig(t))
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil), http.StatusOK)

	cfg := testConfig(t)
	cfg.Job.Enabled = true
	srv = newTestServer(t, cfg)
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
}

func TestNewConstructsServer(t *testing.T) {
	srv := New(testConfig(t), nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	srv.gracefulShutdown()
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	closed := 0
	srv.closers = []func() error{func() error { closed++; return nil }, nil}
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls())
	}
	if closed != 1 {
		t.Fatalf("expected closer to run once, got %d", closed)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &testutil.StubHTTPServer{Block: make(chan struct{})}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls())
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, logger, httpSrv, p)
	srv.closers = []func() error{func() error { return errors.New("close failure") }}
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls())
	}
	if !containsAll(buf.String(), "failed to stop poller", "resource close failed", "shutdown complete") {
		t.Fatalf("unexpected shutdown log %s", buf.String())
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.StubHTTPServer{ListenErr: errors.New("listen failure")}, &testutil.StubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunStartsJobOnlyWhenEnabled(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		ctx, cancel := context.WithCancel(context.Background())
		plr := &testutil.StubPoller{}
		httpSrv := &testutil.StubHTTPServer{ListenErr: http.ErrServerClosed}
		srv := newServerWithDeps(config.Config{Job: config.JobConfig{Enabled: enabled}}, nil, httpSrv, plr)

		done := make(chan struct{})
		go func() {
			srv.Run(ctx, cancel)
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("run did not return after cancel")
		}

		wantStarts := 0
		if enabled {
			wantStarts = 1
		}
		if plr.StartCalls != wantStarts {
			t.Fatalf("enabled=%v: expected %d starts, got %d", enabled, wantStarts, plr.StartCalls)
		}
		if plr.StopCalls != 1 || httpSrv.ShutdownCalls() != 1 {
			t.Fatalf("enabled=%v: expected stop and shutdown, got %d/%d", enabled, plr.StopCalls, httpSrv.ShutdownCalls())
		}
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
