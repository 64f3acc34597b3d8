package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"rex/internal/trace"
)

// Config selects the sinks of a logger.
type Config struct {
	Writer io.Writer    // text sink, nil disables it
	Level  slog.Leveler // minimum level of the text sink
	Tracer trace.Tracer // bridged only at trace level debug
}

// ParseLevel converts a --log-level value.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q (expected: debug|info|warn|error)", s)
	}
	return l, nil
}

// New creates the fanout logger described by cfg.
func New(cfg Config) *slog.Logger {
	var handlers []slog.Handler

	if cfg.Writer != nil {
		level := cfg.Level
		if level == nil {
			level = slog.LevelInfo
		}
		handlers = append(handlers, slog.NewTextHandler(cfg.Writer, &slog.HandlerOptions{
			Level: level,
		}))
	}

	if cfg.Tracer != nil && cfg.Tracer.Level().Allows(trace.ScopeLog) {
		handlers = append(handlers, newTraceHandler(cfg.Tracer))
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

// Handler stamps records with the span found in the context.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if id := trace.SpanID(ctx); id != 0 {
		record.AddAttrs(slog.Uint64("span", id))
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}

type loggerKey struct{}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
