package logger

import (
	"context"
	"log/slog"

	"PlisioPay/pkg/correlation"
)

// CorrelationKey is the attribute carrying the payment session correlation ID.
const CorrelationKey = "correlation_id"

// CorrelationHandler adds CorrelationKey from the context to each record,
// unless the logger already carries that attribute.
type CorrelationHandler struct {
	inner slog.Handler
	bound bool
}

func NewCorrelationHandler(inner slog.Handler) *CorrelationHandler {
	return &CorrelationHandler{inner: inner}
}

func (h *CorrelationHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.bound {
		if id := correlation.FromContext(ctx); id != "" {
			r.AddAttrs(slog.String(CorrelationKey, id))
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *CorrelationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *CorrelationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := h.bound
	for _, a := range attrs {
		if a.Key == CorrelationKey {
			bound = true
		}
	}
	return &CorrelationHandler{inner: h.inner.WithAttrs(attrs), bound: bound}
}

// WithGroup nests later attributes; a bound ID stays outside the group.
func (h *CorrelationHandler) WithGroup(name string) slog.Handler {
	return &CorrelationHandler{inner: h.inner.WithGroup(name), bound: h.bound}
}
