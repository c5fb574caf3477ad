package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
)

const defaultInterval = 24 * time.Hour

// Task is one cycle of polled work. It returns how many items it produced.
type Task func(ctx context.Context) (int, error)

// Poller runs a Task on an interval and tracks its health.
type Poller struct {
	name     string
	task     Task
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	runMu    sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastCount           int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(name string, task Task, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		name:     name,
		task:     task,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs the task once, then on every interval until ctx is cancelled
// or Stop is called. Later calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logging.Info(p.logger, "poller started", "task", p.name, slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
	_ = p.RunOnce(ctx)
	for {
		select {
		case <-ticker.C:
			_ = p.RunOnce(ctx)
			continue
		case <-ctx.Done():
		case <-p.done:
		}
		logging.Info(p.logger, "poller stopped", "task", p.name)
		return
	}
}

// Stop halts the loop. It does not wait for an in-flight run.
func (p *Poller) Stop(context.Context) error {
	p.stopOnce.Do(func() { close(p.done) })
	return nil
}

// RunOnce runs the task immediately and records the outcome.
// Concurrent calls are serialized.
func (p *Poller) RunOnce(ctx context.Context) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	start := time.Now()
	p.recordAttempt(start)
	count, err := p.task(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "poller task failed", err,
			"task", p.name,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		p.recordFailure(err, start)
		return err
	}
	p.recordSuccess(start, count)
	logging.Info(p.logger, "poller task completed",
		"task", p.name,
		logging.FieldCount, count,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, count int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastCount = count
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
