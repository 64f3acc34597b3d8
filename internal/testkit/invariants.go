package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"rex/internal/source"
	"rex/internal/token"
)

// CheckTokenInvariants runs the stream checks every scan of text must pass:
// 1) the stream ends with exactly one EOF
// 2) positions are valid, non-decreasing and inside the scanned text
// 3) fixed-spelling kinds carry their canonical text, EOF carries none
// 4) the token after a Newline starts on a later line
func CheckTokenInvariants(tokens []token.Token, text string) error {
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	last := tokens[len(tokens)-1]
	if !last.Kind.IsEOF() {
		return fmt.Errorf("stream ends with %s, want EOF", last.Kind.Name())
	}
	if last.Text != "" {
		return fmt.Errorf("EOF carries text %q", last.Text)
	}

	src, _ := source.TrimLeadingNewlines(text)
	maxLine, err := safecast.Conv[uint32](strings.Count(src, "\n") + 1)
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}

	for i, tok := range tokens {
		if tok.Kind.IsEOF() && i != len(tokens)-1 {
			return fmt.Errorf("token %d: EOF before the end of the stream", i)
		}
		if !tok.Pos.IsValid() {
			return fmt.Errorf("token %d (%s): invalid position %s", i, tok.Kind.Name(), tok.Pos)
		}
		if tok.Pos.Line > maxLine {
			return fmt.Errorf("token %d (%s): line %d beyond text (%d lines)", i, tok.Kind.Name(), tok.Pos.Line, maxLine)
		}
		if w := tok.Kind.Width(); w > 0 && tok.Text != tok.Kind.String() {
			return fmt.Errorf("token %d (%s): text %q, want %q", i, tok.Kind.Name(), tok.Text, tok.Kind.String())
		}
		if i == 0 {
			continue
		}
		prev := tokens[i-1]
		if tok.Pos.Before(prev.Pos) {
			return fmt.Errorf("token %d (%s): position %s before %s", i, tok.Kind.Name(), tok.Pos, prev.Pos)
		}
		if prev.Kind == token.Newline && tok.Pos.Line <= prev.Pos.Line {
			return fmt.Errorf("token %d (%s): still on line %d after Newline", i, tok.Kind.Name(), tok.Pos.Line)
		}
	}
	return nil
}
