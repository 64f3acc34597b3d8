package token

import (
	"rex/internal/source"
)

// Token represents a single source token with its position and file.
type Token struct {
	Kind Kind
	// Text is the lexeme payload for Tag, Integer, Float, String and Regex.
	// For other kinds it holds the consumed source text, or is empty for EOF.
	Text string
	Pos  source.Position
	File string
}

// IsLiteral reports whether the token is a numeric, boolean, string or regex literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsOperator() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsTag reports whether the token is a bare identifier.
func (t Token) IsTag() bool { return t.Kind == Tag }

// Lexeme returns the payload for payload kinds and the canonical text otherwise.
func (t Token) Lexeme() string {
	if t.Kind.HasPayload() {
		return t.Text
	}
	return t.Kind.String()
}

// String renders the token the way it would be written in source: strings
// and regexes get their delimiters back, Illegal shows the offending text.
func (t Token) String() string {
	switch t.Kind {
	case String:
		return `"` + t.Text + `"`
	case Regex:
		return "`" + t.Text + "`"
	case Illegal:
		if t.Text != "" {
			return t.Text
		}
	}
	return t.Lexeme()
}
