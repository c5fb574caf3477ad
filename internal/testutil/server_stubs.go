package testutil

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-matchup-service/internal/poller"
)

// StubPoller records lifecycle calls and returns canned errors.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	RunCalls   int
	Err        error
	RunErr     error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(context.Context) { p.StartCalls++ }

func (p *StubPoller) Stop(context.Context) error {
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) RunOnce(context.Context) error {
	p.RunCalls++
	return p.RunErr
}

func (p *StubPoller) Status() poller.Status { return p.StatusVal }

// StubHTTPServer stands in for *http.Server. ListenAndServe returns ListenErr
// immediately. When Block is non-nil, Shutdown waits for it or ctx.
type StubHTTPServer struct {
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.listenCalls.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls.Add(1)
	if s.Block != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Block:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string { return ":0" }

func (s *StubHTTPServer) Handler() http.Handler { return http.NotFoundHandler() }

// ListenCalls reports how many times ListenAndServe ran.
func (s *StubHTTPServer) ListenCalls() int { return int(s.listenCalls.Load()) }

// ShutdownCalls reports how many times Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int { return int(s.shutdownCalls.Load()) }
