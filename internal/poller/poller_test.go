package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
)

type stubTask struct {
	mu     sync.Mutex
	err    error
	count  int
	calls  atomic.Int32
	notify chan struct{}
}

func (s *stubTask) run(context.Context) (int, error) {
	s.calls.Add(1)
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, s.err
}

func (s *stubTask) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func TestPollerRunsImmediatelyAndOnInterval(t *testing.T) {
	task := &stubTask{count: 3, notify: make(chan struct{}, 1)}
	p := New("daily_stats", task.run, nil, metrics.NewRecorder(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	select {
	case <-task.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial run")
	}
	deadline := time.After(time.Second)
	for task.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected ticker to trigger another run")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	_ = p.Stop(context.Background())

	if st := p.Status(); st.LastCount != 3 || !st.IsReady() {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	task := &stubTask{notify: make(chan struct{}, 1)}
	p := New("t", task.run, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)
	select {
	case <-task.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial run")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	callsAfterStop := task.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if task.calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional runs after stop; before=%d after=%d", callsAfterStop, task.calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New("t", (&stubTask{}).run, nil, nil, time.Hour)
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerSecondStartIsNoop(t *testing.T) {
	task := &stubTask{notify: make(chan struct{}, 4)}
	p := New("t", task.run, nil, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx)
	<-task.notify
	time.Sleep(20 * time.Millisecond)
	if got := task.calls.Load(); got != 1 {
		t.Fatalf("expected a single loop, got %d runs", got)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New("t", (&stubTask{}).run, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	task := &stubTask{err: errors.New("boom")}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New("t", task.run, logger, nil, time.Minute)

	for i := 1; i <= 3; i++ {
		if err := p.RunOnce(context.Background()); err == nil {
			t.Fatalf("expected error from failing task")
		}
		if got := p.Status().ConsecutiveFailures; got != i {
			t.Fatalf("expected %d failures, got %d", i, got)
		}
	}
	status := p.Status()
	if status.LastError != "boom" || !status.LastSuccess.IsZero() || status.IsReady() {
		t.Fatalf("unexpected failing status %+v", status)
	}

	task.setErr(nil)
	if err := p.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status = p.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" || !status.IsReady() {
		t.Fatalf("expected recovery, got %+v", status)
	}
}

func TestStatusIsReady(t *testing.T) {
	now := time.Now()
	cases := []struct {
		status Status
		want   bool
	}{
		{Status{}, false},
		{Status{LastSuccess: now}, true},
		{Status{LastSuccess: now, ConsecutiveFailures: 2}, true},
		{Status{LastSuccess: now, ConsecutiveFailures: 3}, false},
	}
	for i, tc := range cases {
		if got := tc.status.IsReady(); got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}

func BenchmarkPollerRunOnce(b *testing.B) {
	task := &stubTask{count: 1}
	p := New("bench", task.run, nil, nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = p.RunOnce(ctx)
	}
}
