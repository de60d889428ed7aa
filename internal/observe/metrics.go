// Package observe provides application-wide observability primitives for
// orthographer: OpenTelemetry metrics, tracing, and structured logging
// enrichment.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] for hosts that embed the
// engine and scrape /metrics. A package-level default [Metrics] instance
// ([DefaultMetrics]) is provided for convenience; tests should use
// [NewMetrics] with a custom [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all orthographer metrics.
const meterName = "github.com/MrWong99/orthographer"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// TransformDuration tracks the wall time of a full transform call.
	TransformDuration metric.Float64Histogram

	// Tokens counts tokens produced by the tokeniser. Use with attribute:
	//   attribute.String("kind", ...)
	Tokens metric.Int64Counter

	// Lookups counts word resolutions. Use with attribute:
	//   attribute.String("result", "mapped"|"unmapped")
	Lookups metric.Int64Counter

	// Reloads counts engine rebuilds triggered by configuration changes.
	// Use with attribute:
	//   attribute.String("status", "ok"|"error")
	Reloads metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) for
// in-process text transforms, from short sentences to whole books.
var latencyBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.TransformDuration, err = m.Float64Histogram("orthographer.transform.duration",
		metric.WithDescription("Latency of a full tokenize, resolve and reflow pass."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Tokens, err = m.Int64Counter("orthographer.tokens",
		metric.WithDescription("Total tokens processed by kind."),
	); err != nil {
		return nil, err
	}
	if met.Lookups, err = m.Int64Counter("orthographer.lookups",
		metric.WithDescription("Total word resolutions by result."),
	); err != nil {
		return nil, err
	}
	if met.Reloads, err = m.Int64Counter("orthographer.reloads",
		metric.WithDescription("Total engine reloads by status."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordTokens adds n tokens of the given kind.
func (m *Metrics) RecordTokens(ctx context.Context, kind string, n int64) {
	if n == 0 {
		return
	}
	m.Tokens.Add(ctx, n, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordLookups adds mapped and unmapped word resolution counts.
func (m *Metrics) RecordLookups(ctx context.Context, mapped, unmapped int64) {
	if mapped > 0 {
		m.Lookups.Add(ctx, mapped, metric.WithAttributes(attribute.String("result", "mapped")))
	}
	if unmapped > 0 {
		m.Lookups.Add(ctx, unmapped, metric.WithAttributes(attribute.String("result", "unmapped")))
	}
}

// RecordReload records one engine reload with the given status.
func (m *Metrics) RecordReload(ctx context.Context, status string) {
	m.Reloads.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
