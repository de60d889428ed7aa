package observe

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for the orthographer tracer.
const tracerName = "github.com/MrWong99/orthographer"

// Tracer returns the package-level [trace.Tracer]. It uses the globally
// registered [trace.TracerProvider].
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan starts a new span and returns the updated context and span. The
// caller must call span.End() when done.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// CorrelationID returns the trace ID of the span in ctx, or "" when there is
// none. Log lines carry it to tie a transform or reload to its trace.
func CorrelationID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}

// Logger returns the default slog logger enriched through [WithSpan].
func Logger(ctx context.Context) *slog.Logger {
	return WithSpan(ctx, slog.Default())
}

// WithSpan returns l with trace_id and span_id attributes taken from the span
// in ctx. Without an active span l is returned as is.
func WithSpan(ctx context.Context, l *slog.Logger) *slog.Logger {
	id := CorrelationID(ctx)
	if id == "" {
		return l
	}
	return l.With(
		slog.String("trace_id", id),
		slog.String("span_id", trace.SpanContextFromContext(ctx).SpanID().String()),
	)
}

// NewLogger returns a text-handler logger writing to w whose level follows
// lvl. Hosts keep lvl to apply log_level changes on config reload.
func NewLogger(w io.Writer, lvl *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
