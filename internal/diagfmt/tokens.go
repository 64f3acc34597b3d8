package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"rex/internal/source"
	"rex/internal/token"
)

// TokenRecord is the serialized form of one token. Text is kept only where
// the kind does not imply it.
type TokenRecord struct {
	Kind string `json:"kind" msgpack:"kind"`
	Text string `json:"text,omitempty" msgpack:"text,omitempty"`
	Line uint32 `json:"line" msgpack:"line"`
	Col  uint32 `json:"col" msgpack:"col"`
}

// TokenDump is the root object of JSON and msgpack token dumps.
type TokenDump struct {
	File   string        `json:"file" msgpack:"file"`
	Tokens []TokenRecord `json:"tokens" msgpack:"tokens"`
}

// Records converts tokens to their serialized form.
func Records(tokens []token.Token) []TokenRecord {
	out := make([]TokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		rec := TokenRecord{Kind: tok.Kind.Name(), Line: tok.Pos.Line, Col: tok.Pos.Col}
		if tok.Kind.HasPayload() || tok.Kind == token.Illegal {
			rec.Text = tok.Text
		}
		out = append(out, rec)
	}
	return out
}

// Restore rebuilds the token stream of a dump.
func Restore(dump TokenDump) ([]token.Token, error) {
	out := make([]token.Token, 0, len(dump.Tokens))
	for i, rec := range dump.Tokens {
		kind, ok := token.ParseName(rec.Kind)
		if !ok {
			return nil, fmt.Errorf("token %d: unknown kind %q", i, rec.Kind)
		}
		text := rec.Text
		switch {
		case kind == token.EOF:
			text = ""
		case !kind.HasPayload() && kind != token.Illegal:
			text = kind.String()
		}
		out = append(out, token.Token{
			Kind: kind,
			Text: text,
			Pos:  source.Position{Line: rec.Line, Col: rec.Col},
			File: dump.File,
		})
	}
	return out, nil
}

var (
	kwColor      = color.New(color.FgBlue, color.Bold)
	literalColor = color.New(color.FgGreen)
	tagColor     = color.New(color.FgCyan)
	opColor      = color.New(color.FgYellow)
	illegalColor = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

func kindColor(k token.Kind) *color.Color {
	switch {
	case k == token.Illegal:
		return illegalColor
	case k.IsKeyword() && !k.IsLiteral():
		return kwColor
	case k.IsLiteral():
		return literalColor
	case k == token.Tag:
		return tagColor
	case k.IsOperator():
		return opColor
	default:
		return dimColor
	}
}

// paint applies c only when enabled, independent of the global NoColor.
func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}

// displayLexeme renders a token for a listing: control characters escaped,
// delimiters of strings and regexes restored.
func displayLexeme(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return ""
	case token.Newline:
		return `\n`
	case token.String:
		return strconv.Quote(tok.Text)
	case token.Illegal:
		return strconv.QuoteToGraphic(tok.Text)
	}
	return tok.String()
}

// FormatTokensPretty выводит токены в человекочитаемом формате:
//
//	1  1:1     KwLet            let
func FormatTokensPretty(w io.Writer, tokens []token.Token, opts TokenOpts) error {
	for i, tok := range tokens {
		lexeme := displayLexeme(tok)
		if opts.Width > 0 && runewidth.StringWidth(lexeme) > opts.Width {
			lexeme = runewidth.Truncate(lexeme, opts.Width, "...")
		}
		pos := runewidth.FillRight(tok.Pos.String(), 8)
		kind := runewidth.FillRight(tok.Kind.Name(), 16)
		if _, err := fmt.Fprintf(w, "%4d  %s %s %s\n",
			i+1,
			pos,
			paint(kindColor(tok.Kind), opts.Color, kind),
			lexeme,
		); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате.
func FormatTokensJSON(w io.Writer, file string, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(TokenDump{File: file, Tokens: Records(tokens)})
}

// FormatTokensMsgpack writes a binary TokenDump.
func FormatTokensMsgpack(w io.Writer, file string, tokens []token.Token) error {
	return msgpack.NewEncoder(w).Encode(TokenDump{File: file, Tokens: Records(tokens)})
}

// ReadTokensMsgpack decodes a dump written by FormatTokensMsgpack.
func ReadTokensMsgpack(r io.Reader) (string, []token.Token, error) {
	var dump TokenDump
	if err := msgpack.NewDecoder(r).Decode(&dump); err != nil {
		return "", nil, fmt.Errorf("decode token dump: %w", err)
	}
	tokens, err := Restore(dump)
	if err != nil {
		return "", nil, err
	}
	return dump.File, tokens, nil
}
