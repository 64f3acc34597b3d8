package trace

import (
	"errors"
	"io"
	"sync"
)

// Tracer receives events. Implementations must be safe for concurrent use
// because directory scans emit from many goroutines.
type Tracer interface {
	Emit(ev Event)
	Level() Level
	Close() error
}

// Nop records nothing.
var Nop Tracer = nopTracer{}

type nopTracer struct{}

func (nopTracer) Emit(Event)   {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Close() error { return nil }

// writerTracer encodes every event to w as it arrives.
type writerTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

// NewWriter returns a tracer that writes events to w. w is closed by Close
// when it is an io.Closer.
func NewWriter(w io.Writer, level Level, format Format) Tracer {
	return &writerTracer{w: w, level: level, format: format}
}

func (t *writerTracer) Emit(ev Event) {
	line := Encode(ev, t.format)
	t.mu.Lock()
	defer t.mu.Unlock()
	// сбой записи трассы не должен ронять сканирование
	_, _ = t.w.Write(line) //nolint:errcheck
}

func (t *writerTracer) Level() Level { return t.level }

func (t *writerTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Ring keeps the last events in memory for the failure dump.
type Ring struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	count int
	level Level
}

// NewRing returns a ring holding up to size events (4096 when size <= 0).
func NewRing(size int, level Level) *Ring {
	if size <= 0 {
		size = 4096
	}
	return &Ring{buf: make([]Event, size), level: level}
}

func (r *Ring) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = ev
	r.next = (r.next + 1) % len(r.buf)
	r.count = min(r.count+1, len(r.buf))
}

func (r *Ring) Level() Level { return r.level }

func (r *Ring) Close() error { return nil }

// Events returns the kept events, oldest first.
func (r *Ring) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.count)
	start := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := range r.count {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// Dump writes the kept events to w.
func (r *Ring) Dump(w io.Writer, format Format) error {
	for _, ev := range r.Events() {
		if _, err := w.Write(Encode(ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// tee sends every event to each tracer.
type tee struct {
	tracers []Tracer
	level   Level
}

func (t *tee) Emit(ev Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *tee) Level() Level { return t.level }

func (t *tee) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// FindRing returns the ring behind t, if any.
func FindRing(t Tracer) (*Ring, bool) {
	switch v := t.(type) {
	case *Ring:
		return v, true
	case *tee:
		for _, inner := range v.tracers {
			if r, ok := FindRing(inner); ok {
				return r, true
			}
		}
	}
	return nil, false
}
