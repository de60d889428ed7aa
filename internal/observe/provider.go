package observe

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const defaultServiceName = "orthographer"

// ProviderConfig configures the OpenTelemetry SDK for a host embedding the
// transform engine.
type ProviderConfig struct {
	// ServiceName is reported in telemetry. Default: "orthographer".
	ServiceName string

	ServiceVersion string

	// Registerer receives the Prometheus collectors. Nil means
	// [prometheus.DefaultRegisterer].
	Registerer prometheus.Registerer

	// TraceExporter receives finished spans. When nil spans are sampled but
	// dropped on End.
	TraceExporter sdktrace.SpanExporter
}

// Provider is an initialised SDK. Metrics is built on the provider's meter
// and is what hosts pass to engine.WithMetrics.
type Provider struct {
	Metrics *Metrics

	shutdown []func(context.Context) error
}

// InitProvider builds a meter provider exporting to Prometheus and a tracer
// provider, registers both as the global OTel providers and creates the
// transform instruments on the new meter.
//
// Call [Provider.Shutdown] before the host exits to flush pending spans.
func InitProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("observe: build resource: %w", err)
	}

	exp, err := promexporter.New(promexporter.WithRegisterer(cfg.Registerer))
	if err != nil {
		return nil, fmt.Errorf("observe: prometheus exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(exp))

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.TraceExporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(cfg.TraceExporter))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)

	p := &Provider{shutdown: []func(context.Context) error{mp.Shutdown, tp.Shutdown}}
	if p.Metrics, err = NewMetrics(mp); err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("observe: create instruments: %w", err)
	}

	otel.SetMeterProvider(mp)
	otel.SetTracerProvider(tp)
	return p, nil
}

// Shutdown flushes and stops both providers. Later calls are no-ops.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range p.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	p.shutdown = nil
	return errors.Join(errs...)
}
