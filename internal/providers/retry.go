package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
)

const (
	defaultRetryAttempts = 2
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// RetryConfig controls a Retrier.
type RetryConfig struct {
	MaxAttempts int           // total attempts, including the first
	Backoff     time.Duration // initial interval, grows exponentially
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Retrier runs upstream calls with bounded exponential backoff and records each attempt.
type Retrier struct {
	maxAttempts int
	initial     time.Duration
	logger      *slog.Logger
	metrics     *metrics.Recorder
	now         func() time.Time
}

// NewRetrier builds a Retrier. Non-positive settings fall back to defaults.
func NewRetrier(cfg RetryConfig) *Retrier {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultRetryAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoff
	}
	return &Retrier{
		maxAttempts: cfg.MaxAttempts,
		initial:     cfg.Backoff,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		now:         time.Now,
	}
}

func (r *Retrier) policy(ctx context.Context, floor *retryAfterFloor) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initial
	b.MaxInterval = maxBackoff
	b.MaxElapsedTime = 0
	floor.BackOff = b
	return backoff.WithContext(backoff.WithMaxRetries(floor, uint64(r.maxAttempts-1)), ctx)
}

// retryAfterFloor stretches the next exponential delay to at least the
// Retry-After of the last 429. The floor applies to one delay only.
type retryAfterFloor struct {
	backoff.BackOff
	next time.Duration
}

func (f *retryAfterFloor) NextBackOff() time.Duration {
	d := f.BackOff.NextBackOff()
	if d == backoff.Stop {
		return d
	}
	d = max(d, f.next)
	f.next = 0
	return d
}

// Do calls fn until it succeeds, fails permanently or attempts run out.
// A nil Retrier calls fn once.
func Do[T any](ctx context.Context, r *Retrier, upstream, op string, fn func(context.Context) (T, error)) (T, error) {
	if r == nil {
		return fn(ctx)
	}

	var out T
	attempt := 0
	floor := &retryAfterFloor{}
	err := backoff.RetryNotify(func() error {
		attempt++
		start := r.now()
		v, err := fn(ctx)
		r.metrics.RecordUpstreamAttempt(upstream, r.now().Sub(start), err)
		if err != nil {
			if rl, ok := AsRateLimitError(err); ok {
				r.metrics.RecordRateLimit(upstream, rl.RetryAfter)
				floor.next = rl.RetryAfter
			}
			if !Retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		out = v
		return nil
	}, r.policy(ctx, floor), func(err error, delay time.Duration) {
		logWithUpstream(ctx, r.logger, slog.LevelWarn, upstream, "upstream retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), "err", err)
	})
	if err != nil {
		logWithUpstream(ctx, r.logger, slog.LevelWarn, upstream, "upstream call failed",
			"op", op, "attempts", attempt, "err", err)
		var zero T
		return zero, err
	}
	return out, nil
}
