package lexer

import (
	"testing"

	"rex/internal/source"
)

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor("a\nb")

	steps := []struct {
		ch  rune
		pos source.Position
	}{
		{'a', source.Position{Line: 1, Col: 1}},
		{'\n', source.Position{Line: 1, Col: 2}},
		{'b', source.Position{Line: 2, Col: 1}},
	}
	for i, st := range steps {
		if cursor.EOF() {
			t.Fatalf("step %d: unexpected EOF", i)
		}
		if cursor.Current() != st.ch || cursor.Pos != st.pos {
			t.Fatalf("step %d: expected %q at %s, got %q at %s", i, st.ch, st.pos, cursor.Current(), cursor.Pos)
		}
		if got := cursor.Bump(); got != st.ch {
			t.Fatalf("step %d: Bump returned %q", i, got)
		}
	}
	if !cursor.EOF() || cursor.Current() != 0 {
		t.Fatal("expected EOF with NUL current rune")
	}
	if got := cursor.Bump(); got != 0 {
		t.Fatalf("Bump at EOF returned %q", got)
	}
	if cursor.Pos != (source.Position{Line: 2, Col: 2}) {
		t.Fatalf("EOF position %s, want 2:2", cursor.Pos)
	}
}

func TestAdvanceIsClamped(t *testing.T) {
	cursor := NewCursor("abcdef")
	cursor.Advance(10)
	if cursor.Off != 3 || cursor.Current() != 'd' {
		t.Fatalf("Advance(10) moved to %d (%q), want 3", cursor.Off, cursor.Current())
	}
	cursor.Advance(-2)
	if cursor.Off != 3 {
		t.Fatalf("Advance(-2) moved the cursor to %d", cursor.Off)
	}
	cursor.Advance(3)
	cursor.Advance(3)
	if !cursor.EOF() || cursor.Pos.Col != 7 {
		t.Fatalf("expected EOF at col 7, got off=%d pos=%s", cursor.Off, cursor.Pos)
	}
}

func TestPeekDoesNotMove(t *testing.T) {
	cursor := NewCursor("\u03bb\u00e9z")
	if cursor.Peek() != '\u00e9' || cursor.PeekAt(2) != 'z' || cursor.PeekAt(3) != 0 {
		t.Fatalf("unexpected lookahead %q %q %q", cursor.Peek(), cursor.PeekAt(2), cursor.PeekAt(3))
	}
	if cursor.PeekAt(0) != '\u03bb' || cursor.Off != 0 {
		t.Fatal("peeking must not move the cursor")
	}
	cursor.Bump()
	if cursor.Off != 2 || cursor.Pos.Col != 2 {
		t.Fatalf("multi-byte rune should count as one column, got off=%d col=%d", cursor.Off, cursor.Pos.Col)
	}
}

func TestMarkAndReset(t *testing.T) {
	cursor := NewCursor("ab\ncd")
	cursor.Bump()
	m := cursor.Mark()
	cursor.Advance(3)
	if got := cursor.TextFrom(m); got != "b\nc" {
		t.Fatalf("TextFrom = %q", got)
	}
	cursor.Reset(m)
	if cursor.Current() != 'b' || cursor.Pos != m.Pos() {
		t.Fatalf("Reset went to %q at %s", cursor.Current(), cursor.Pos)
	}
	if !cursor.Eat('b') || cursor.Eat('x') {
		t.Fatal("Eat should consume only a matching rune")
	}
}
