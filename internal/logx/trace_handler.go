package logx

import (
	"context"
	"log/slog"
	"strings"

	"rex/internal/trace"
)

// traceHandler forwards log records to a tracer as point events in the log
// scope, so they only show up at debug level.
type traceHandler struct {
	tracer trace.Tracer
	attrs  []slog.Attr
	groups []string
}

func newTraceHandler(t trace.Tracer) *traceHandler {
	return &traceHandler{tracer: t}
}

func (h *traceHandler) Enabled(context.Context, slog.Level) bool {
	return h.tracer.Level().Allows(trace.ScopeLog)
}

func (h *traceHandler) Handle(ctx context.Context, record slog.Record) error {
	attrs := make(map[string]string, len(h.attrs)+record.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.String()
	}
	prefix := h.prefix()
	record.Attrs(func(a slog.Attr) bool {
		attrs[prefix+a.Key] = a.Value.String()
		return true
	})
	if len(attrs) == 0 {
		attrs = nil
	}

	h.tracer.Emit(trace.Event{
		Seq:    trace.NextSeq(),
		Time:   record.Time,
		Kind:   trace.KindPoint,
		Scope:  trace.ScopeLog,
		Parent: trace.SpanID(ctx),
		Name:   "log." + strings.ToLower(record.Level.String()),
		Note:   record.Message,
		Attrs:  attrs,
	})
	return nil
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	prefix := h.prefix()
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		a.Key = prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

func (h *traceHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}
