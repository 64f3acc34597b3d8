package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rex/internal/lexer"
	"rex/internal/token"
)

func TestFormatTokensPretty(t *testing.T) {
	tokens := lexer.Tokenize("main.rx", "let s = \"hi\"\n")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, TokenOpts{}); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(tokens) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(tokens), len(lines), buf.String())
	}
	want := []string{
		"   1  1:1      KwLet            let",
		"   2  1:5      Tag              s",
		"   3  1:7      Assign           =",
		"   4  1:9      String           \"hi\"",
		"   5  1:13     Newline          \\n",
		"   6  2:1      EOF              ",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestFormatTokensPrettyTruncates(t *testing.T) {
	tokens := lexer.Tokenize("t.rx", "\"a very long string payload\"")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, TokenOpts{Width: 10}); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	if !strings.Contains(buf.String(), "...") || strings.Contains(buf.String(), "payload") {
		t.Errorf("expected truncated lexeme, got:\n%s", buf.String())
	}
}

func TestFormatTokensJSON(t *testing.T) {
	tokens := lexer.Tokenize("main.rx", "x <= 1.5")

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, "main.rx", tokens); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var dump TokenDump
	if err := json.Unmarshal(buf.Bytes(), &dump); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := []TokenRecord{
		{Kind: "Tag", Text: "x", Line: 1, Col: 1},
		{Kind: "LtEq", Line: 1, Col: 3},
		{Kind: "Float", Text: "1.5", Line: 1, Col: 6},
		{Kind: "EOF", Line: 1, Col: 9},
	}
	if dump.File != "main.rx" || len(dump.Tokens) != len(want) {
		t.Fatalf("unexpected dump %+v", dump)
	}
	for i := range want {
		if dump.Tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, dump.Tokens[i], want[i])
		}
	}
}

func TestMsgpackRestoresStream(t *testing.T) {
	src := "fn f(a) -> a ** 2 # square\n`^x+$` =~ \"q\\\"\" ~ \u00a7\n"
	tokens := lexer.Tokenize("m.rx", src)

	var buf bytes.Buffer
	if err := FormatTokensMsgpack(&buf, "m.rx", tokens); err != nil {
		t.Fatalf("FormatTokensMsgpack: %v", err)
	}
	file, got, err := ReadTokensMsgpack(&buf)
	if err != nil {
		t.Fatalf("ReadTokensMsgpack: %v", err)
	}
	if file != "m.rx" {
		t.Errorf("file = %q", file)
	}
	if len(got) != len(tokens) {
		t.Fatalf("got %d tokens, want %d", len(got), len(tokens))
	}
	for i := range tokens {
		if got[i] != tokens[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], tokens[i])
		}
	}
}

func TestRestoreUnknownKind(t *testing.T) {
	_, err := Restore(TokenDump{Tokens: []TokenRecord{{Kind: "Bogus"}}})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	toks, err := Restore(TokenDump{File: "f", Tokens: []TokenRecord{{Kind: "Arrow", Line: 1, Col: 1}}})
	if err != nil || toks[0].Kind != token.Arrow || toks[0].Text != "->" {
		t.Errorf("Restore(Arrow) = %+v, %v", toks, err)
	}
}
