package logging

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// SpanContextHandler decorates every record with the trace and span ids of the
// active span, if any, so log lines can be correlated with traces.
type SpanContextHandler struct {
	next slog.Handler
}

func NewSpanContextHandler(next slog.Handler) *SpanContextHandler {
	return &SpanContextHandler{next: next}
}

func (h *SpanContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *SpanContextHandler) Handle(ctx context.Context, r slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)

	if spanCtx.IsValid() {
		r.AddAttrs(slog.String("trace_id", spanCtx.TraceID().String()))
		r.AddAttrs(slog.String("span_id", spanCtx.SpanID().String()))
	}

	return h.next.Handle(ctx, r)
}

func (h *SpanContextHandler) WithGroup(name string) slog.Handler {
	return NewSpanContextHandler(h.next.WithGroup(name))
}

func (h *SpanContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewSpanContextHandler(h.next.WithAttrs(attrs))
}

func SetupGlobalHandler(serviceName string) {
	jsonHandler := slog.NewJSONHandler(os.Stdout, nil)
	logger := slog.New(NewSpanContextHandler(jsonHandler)).With(slog.String("service", serviceName))
	slog.SetDefault(logger)

	slog.Info("Logger initialized", "service", serviceName)
}
