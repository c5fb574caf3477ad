package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName = "mlb-matchup-service"
	otlpPushInterval   = 15 * time.Second
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup builds a meter provider that always exposes a Prometheus scrape
// handler and also pushes over OTLP/HTTP when an endpoint is set.
// Disabled telemetry yields an in-memory Recorder and a nil handler.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}
	readers := []sdkmetric.Reader{promReader}
	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		readers = append(readers, otlpReader)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, nil, err
	}
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	provider := sdkmetric.NewMeterProvider(opts...)

	inst, err := instrumentFactory(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}
	return newRecorder(inst), promHandler, provider.Shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(otlpPushInterval)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	upstreamAttempts  metric.Int64Counter
	upstreamErrors    metric.Int64Counter
	upstreamLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	pollerCycles      metric.Int64Counter
	pollerErrors      metric.Int64Counter
	pollerLatencyMs   metric.Float64Histogram
	cacheLookups      metric.Int64Counter
	resolutions       metric.Int64Counter
	matchups          metric.Int64Counter
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(defaultServiceName)
	o := &otelInstruments{}

	counters := []struct {
		name, desc string
		dst        *metric.Int64Counter
	}{
		{"http_requests_total", "HTTP requests by route and status", &o.requests},
		{"upstream_attempts_total", "Calls to the Stats API and Savant", &o.upstreamAttempts},
		{"upstream_errors_total", "Failed upstream calls", &o.upstreamErrors},
		{"upstream_rate_limit_hits_total", "Upstream 429 responses", &o.rateLimitHits},
		{"poller_cycles_total", "Daily stats job runs", &o.pollerCycles},
		{"poller_errors_total", "Failed daily stats job runs", &o.pollerErrors},
		{"cache_lookups_total", "Result cache lookups by key kind and result", &o.cacheLookups},
		{"player_resolutions_total", "Player name lookups by outcome", &o.resolutions},
		{"matchups_total", "Computed matchup tables by join mode and result", &o.matchups},
	}
	for _, c := range counters {
		inst, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
		*c.dst = inst
	}

	histograms := []struct {
		name string
		dst  *metric.Float64Histogram
	}{
		{"http_request_duration_ms", &o.requestLatencyMs},
		{"upstream_duration_ms", &o.upstreamLatencyMs},
		{"upstream_retry_after_ms", &o.retryAfterMs},
		{"poller_cycle_duration_ms", &o.pollerLatencyMs},
	}
	for _, h := range histograms {
		inst, err := meter.Float64Histogram(h.name, metric.WithUnit("ms"))
		if err != nil {
			return nil, err
		}
		*h.dst = inst
	}
	return o, nil
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func (o *otelInstruments) recordHTTPRequest(method, route string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, route),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(context.Background(), 1, attrs)
	o.requestLatencyMs.Record(context.Background(), ms(duration), attrs)
}

func (o *otelInstruments) recordUpstreamAttempt(upstream string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String(AttrUpstream, upstream))
	o.upstreamAttempts.Add(context.Background(), 1, attrs)
	o.upstreamLatencyMs.Record(context.Background(), ms(duration), attrs)
	if err != nil {
		o.upstreamErrors.Add(context.Background(), 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(upstream string, retryAfter time.Duration) {
	attrs := metric.WithAttributes(attribute.String(AttrUpstream, upstream))
	o.rateLimitHits.Add(context.Background(), 1, attrs)
	if retryAfter > 0 {
		o.retryAfterMs.Record(context.Background(), ms(retryAfter), attrs)
	}
}

func (o *otelInstruments) recordCacheLookup(kind string, hit bool) {
	o.cacheLookups.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String(AttrCache, kind),
		attribute.String(AttrResult, hitLabel(hit)),
	))
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	o.pollerCycles.Add(context.Background(), 1)
	o.pollerLatencyMs.Record(context.Background(), ms(duration))
	if err != nil {
		o.pollerErrors.Add(context.Background(), 1)
	}
}

func (o *otelInstruments) recordResolution(outcome string) {
	o.resolutions.Add(context.Background(), 1, metric.WithAttributes(attribute.String(AttrResult, outcome)))
}

func (o *otelInstruments) recordMatchup(join string, insufficient bool) {
	result := "ok"
	if insufficient {
		result = "insufficient"
	}
	o.matchups.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String(AttrJoin, join),
		attribute.String(AttrResult, result),
	))
}

func hitLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
