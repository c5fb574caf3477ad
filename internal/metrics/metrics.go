package metrics

import (
	"sync"
	"time"
)

type upstreamStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type cacheStats struct {
	hits   int
	misses int
}

// Recorder keeps in-memory counts of upstream calls, cache lookups, player
// resolutions and matchups. When telemetry is enabled it also forwards to
// OpenTelemetry instruments.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*upstreamStats
	caches      map[string]*cacheStats
	resolutions map[string]int
	matchups    map[string]int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:       make(map[string]*upstreamStats),
		caches:      make(map[string]*cacheStats),
		resolutions: make(map[string]int),
		matchups:    make(map[string]int),
		otel:        otel,
	}
}

// RecordUpstreamAttempt increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordUpstreamAttempt(upstream string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(upstream)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamAttempt(upstream, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(upstream string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(upstream)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(upstream, retryAfter)
	}
}

// RecordCacheLookup counts a hit or miss against the named cache.
func (r *Recorder) RecordCacheLookup(cache string, hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.caches[cache]
	if !ok {
		stats = &cacheStats{}
		r.caches[cache] = stats
	}
	if hit {
		stats.hits++
	} else {
		stats.misses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(cache, hit)
	}
}

// RecordResolution counts one player lookup by outcome (Resolution* constants).
func (r *Recorder) RecordResolution(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.resolutions[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordResolution(outcome)
	}
}

// Resolutions returns how many lookups ended with outcome.
func (r *Recorder) Resolutions(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolutions[outcome]
}

// RecordMatchup counts one computed matchup table.
func (r *Recorder) RecordMatchup(join string, insufficient bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.matchups[join]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordMatchup(join, insufficient)
	}
}

// Matchups returns how many tables were computed with the join mode.
func (r *Recorder) Matchups(join string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matchups[join]
}

// CacheHits returns the number of hits recorded for a cache.
func (r *Recorder) CacheHits(cache string) int {
	hits, _ := r.cacheCounts(cache)
	return hits
}

// CacheMisses returns the number of misses recorded for a cache.
func (r *Recorder) CacheMisses(cache string) int {
	_, misses := r.cacheCounts(cache)
	return misses
}

func (r *Recorder) cacheCounts(cache string) (int, int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.caches[cache]; ok {
		return stats.hits, stats.misses
	}
	return 0, 0
}

// UpstreamCalls returns the total attempts recorded for an upstream.
func (r *Recorder) UpstreamCalls(upstream string) int {
	return r.Snapshot(upstream).Calls
}

// UpstreamErrors returns the total failed attempts recorded for an upstream.
func (r *Recorder) UpstreamErrors(upstream string) int {
	return r.Snapshot(upstream).Errors
}

// RateLimitHits returns the number of rate limit events seen for an upstream.
func (r *Recorder) RateLimitHits(upstream string) int {
	return r.Snapshot(upstream).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for an upstream.
func (r *Recorder) LastRetryAfter(upstream string) time.Duration {
	return r.Snapshot(upstream).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for an upstream call.
func (r *Recorder) LastCallLatency(upstream string) time.Duration {
	return r.Snapshot(upstream).LastCallLatency
}

// Snapshot is a copy of the current stats for an upstream.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(upstream string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[upstream]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks background job cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(upstream string) *upstreamStats {
	stats, ok := r.stats[upstream]
	if !ok {
		stats = &upstreamStats{}
		r.stats[upstream] = stats
	}
	return stats
}
