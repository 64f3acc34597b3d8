package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{" phase", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelAllows(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelError, ScopeFile, true},
		{LevelPhase, ScopeCommand, true},
		{LevelPhase, ScopeDir, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeLog, false},
		{LevelDebug, ScopeLog, true},
	}
	for _, tt := range tests {
		if got := tt.level.Allows(tt.scope); got != tt.want {
			t.Errorf("%v.Allows(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestOpenOffIsNop(t *testing.T) {
	tr, err := Open(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tr != Nop {
		t.Fatalf("expected Nop, got %T", tr)
	}
	ctx, span := Begin(WithTracer(context.Background(), tr), ScopeCommand, "tokenize")
	if span != nil || SpanID(ctx) != 0 {
		t.Errorf("disabled tracer opened span %d", span.ID())
	}
	span.SetFile("x.rx").SetCounts(1, 0).End("")
}

func TestScanSpanText(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewWriter(&buf, LevelDetail, FormatText))

	ctx, cmd := Begin(ctx, ScopeCommand, "tokenize")
	_, file := Begin(ctx, ScopeFile, "scan")
	file.SetFile("main.rx").SetCounts(12, 1).SetCached(true).End("")
	cmd.End("ok")

	out := buf.String()
	for _, want := range []string{"→ tokenize", "← scan main.rx", "tokens=12 diags=1 cached", "(ok)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPhaseLevelHidesFiles(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewWriter(&buf, LevelPhase, FormatText))

	ctx, dir := Begin(ctx, ScopeDir, "tokenize-dir")
	fctx, file := Begin(ctx, ScopeFile, "scan")
	if file != nil {
		t.Fatal("file span opened at phase level")
	}
	if SpanID(fctx) != dir.ID() {
		t.Errorf("filtered span must keep the parent in ctx")
	}
	Point(fctx, ScopeFile, "cache-hit", "a.rx")
	dir.End("")

	if strings.Contains(buf.String(), "a.rx") {
		t.Errorf("file events leaked at phase level:\n%s", buf.String())
	}
}

func TestNDJSONCarriesCounts(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewWriter(&buf, LevelDebug, FormatNDJSON))
	ctx, parent := Begin(ctx, ScopeDir, "tokenize-dir")
	_, span := Begin(ctx, ScopeFile, "scan")
	span.SetFile("a.rx").SetCounts(3, 0).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(lines[2]), &got); err != nil {
		t.Fatalf("invalid json %q: %v", lines[2], err)
	}
	if got["kind"] != "end" || got["scope"] != "file" || got["file"] != "a.rx" || got["tokens"] != float64(3) {
		t.Errorf("unexpected event %v", got)
	}
	if got["parent"] != float64(parent.ID()) {
		t.Errorf("parent = %v, want %d", got["parent"], parent.ID())
	}
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRing(3, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ctx, ScopeFile, name, "")
	}
	events := ring.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, want := range []string{"c", "d", "e"} {
		if events[i].Name != want {
			t.Errorf("event %d = %q, want %q", i, events[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("expected 3 dumped lines, got %q", buf.String())
	}
}

func TestOpenModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := Open(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, span := Begin(WithTracer(context.Background(), tr), ScopeFile, "scan")
	span.End("")

	ring, ok := FindRing(tr)
	if !ok {
		t.Fatal("expected a ring behind both mode")
	}
	if n := len(ring.Events()); n != 2 {
		t.Errorf("ring holds %d events, want 2", n)
	}
	if buf.Len() == 0 {
		t.Error("stream side wrote nothing")
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	// error level only feeds the dump
	tr, err = Open(Config{Level: LevelError, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := FindRing(tr); !ok {
		t.Errorf("error level must trace into a ring, got %T", tr)
	}
}

func TestParseFormatAndMode(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Error("expected error for unknown format")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(both) = %v, %v", m, err)
	}
	if formatForPath("out.jsonl") != FormatNDJSON || formatForPath("out.log") != FormatText {
		t.Error("format is not picked from the output extension")
	}
}
