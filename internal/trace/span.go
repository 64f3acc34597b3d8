package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event number.
func NextSeq() uint64 { return seqCounter.Add(1) }

type tracerKey struct{}

type spanKey struct{}

// WithTracer attaches t to ctx. A nil t stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer in ctx or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// SpanID returns the innermost open span in ctx, 0 if none.
func SpanID(ctx context.Context) uint64 {
	if ctx != nil {
		if id, ok := ctx.Value(spanKey{}).(uint64); ok {
			return id
		}
	}
	return 0
}

// Span is an open begin/end pair. The zero of *Span (nil) is valid and
// records nothing.
type Span struct {
	tracer  Tracer
	begin   Event
	started time.Time
	end     Event
}

// Begin opens a span under the span already in ctx and returns a context
// carrying the new one. When the tracer filters scope out, ctx is returned
// unchanged with a nil span.
func Begin(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Level().Allows(scope) {
		return ctx, nil
	}
	now := time.Now()
	s := &Span{
		tracer:  t,
		started: now,
		begin: Event{
			Seq:    NextSeq(),
			Time:   now,
			Kind:   KindBegin,
			Scope:  scope,
			Span:   spanCounter.Add(1),
			Parent: SpanID(ctx),
			Name:   name,
		},
	}
	t.Emit(s.begin)
	return context.WithValue(ctx, spanKey{}, s.begin.Span), s
}

// ID returns the span number, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.Span
}

// SetFile names the source the span worked on.
func (s *Span) SetFile(path string) *Span {
	if s != nil {
		s.end.File = path
	}
	return s
}

// SetCounts records how many tokens and diagnostics a scan produced.
func (s *Span) SetCounts(tokens, diags int) *Span {
	if s != nil {
		s.end.Tokens, s.end.Diags = tokens, diags
	}
	return s
}

// SetCached marks that the result came from the token cache.
func (s *Span) SetCached(cached bool) *Span {
	if s != nil {
		s.end.Cached = cached
	}
	return s
}

// End emits the closing event with note and returns the span duration.
func (s *Span) End(note string) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	ev := s.end
	ev.Seq = NextSeq()
	ev.Time = now
	ev.Elapsed = now.Sub(s.started)
	ev.Kind = KindEnd
	ev.Scope = s.begin.Scope
	ev.Span = s.begin.Span
	ev.Parent = s.begin.Parent
	ev.Name = s.begin.Name
	ev.Note = note
	s.tracer.Emit(ev)
	return ev.Elapsed
}

// Point emits an instant event about file under the span in ctx.
func Point(ctx context.Context, scope Scope, name, file string) {
	t := FromContext(ctx)
	if !t.Level().Allows(scope) {
		return
	}
	t.Emit(Event{
		Seq:    NextSeq(),
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Parent: SpanID(ctx),
		Name:   name,
		File:   file,
	})
}
