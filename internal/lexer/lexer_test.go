package lexer_test

import (
	"fmt"
	"testing"

	"rex/internal/diag"
	"rex/internal/lexer"
	"rex/internal/source"
	"rex/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, file string, pos source.Position, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		File:     file,
		Pos:      pos,
		Notes:    notes,
	})
}

// ErrorMessages возвращает список сообщений об ошибках
func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s %s: %s", d.Code.ID(), d.Location(), d.Severity, d.Message))
	}
	return messages
}

// makeTestScanner создаёт сканер для тестовой строки
func makeTestScanner(input string) (*lexer.Scanner, *testReporter) {
	reporter := &testReporter{diagnostics: make([]diag.Diagnostic, 0)}
	return lexer.New("test.rx", input, lexer.WithReporter(reporter)), reporter
}

// collectAllTokens собирает все токены до EOF включительно
func collectAllTokens(t *testing.T, input string) []token.Token {
	t.Helper()
	s, _ := makeTestScanner(input)
	return s.Tokens()
}

type want struct {
	kind token.Kind
	text string
}

func k(kind token.Kind) want              { return want{kind: kind} }
func p(kind token.Kind, text string) want { return want{kind: kind, text: text} }

// expectTokens сверяет виды токенов и, для видов с полезной нагрузкой, их текст
func expectTokens(t *testing.T, input string, expected ...want) {
	t.Helper()
	toks := collectAllTokens(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("input %q: expected %d tokens, got %d: %v", input, len(expected), len(toks), describe(toks))
	}
	for i, w := range expected {
		got := toks[i]
		if got.Kind != w.kind {
			t.Fatalf("input %q: token %d: expected %s, got %s (%q)", input, i, w.kind.Name(), got.Kind.Name(), got.Text)
		}
		if w.kind.HasPayload() && got.Text != w.text {
			t.Fatalf("input %q: token %d: expected text %q, got %q", input, i, w.text, got.Text)
		}
	}
}

func describe(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, fmt.Sprintf("%s(%q)@%s", tok.Kind.Name(), tok.Text, tok.Pos))
	}
	return out
}

func TestOperators(t *testing.T) {
	expectTokens(t, "+-*/<>!@$%&^=|;:?,.",
		k(token.Plus), k(token.Minus), k(token.Star), k(token.Slash),
		k(token.Lt), k(token.Gt), k(token.Bang), k(token.At), k(token.Cash),
		k(token.Percent), k(token.Amp), k(token.Caret), k(token.Assign),
		k(token.Pipe), k(token.Semicolon), k(token.Colon), k(token.Question),
		k(token.Comma), k(token.Dot), k(token.EOF),
	)
}

func TestSingleCharSequencesMatchKindOf(t *testing.T) {
	inputs := []string{"()[]{}", ",;@$%&^~?/", "~~//", "])}{[(", "?,?,"}
	for _, input := range inputs {
		expected := make([]want, 0, len(input)+1)
		for _, r := range input {
			expected = append(expected, k(token.KindOf(r)))
		}
		expected = append(expected, k(token.EOF))
		expectTokens(t, input, expected...)
	}
}

func TestNumbers(t *testing.T) {
	src := `
        # imma comment
        1234
        12.4 # Another Comment
        12.2.4
        `
	expectTokens(t, src,
		k(token.Newline),
		p(token.Integer, "1234"), k(token.Newline),
		p(token.Float, "12.4"), k(token.Newline),
		p(token.Float, "12.2"), k(token.Dot), p(token.Integer, "4"), k(token.Newline),
		k(token.EOF),
	)
}

func TestNumberEdgeCases(t *testing.T) {
	tests := []struct {
		input    string
		expected []want
	}{
		{"1234", []want{p(token.Integer, "1234"), k(token.EOF)}},
		{"12.4", []want{p(token.Float, "12.4"), k(token.EOF)}},
		{"0", []want{p(token.Integer, "0"), k(token.EOF)}},
		{"1.", []want{p(token.Float, "1."), k(token.EOF)}},
		// первая точка принадлежит числу, остаток читается как оператор
		{"1..5", []want{p(token.Float, "1."), k(token.Dot), p(token.Integer, "5"), k(token.EOF)}},
		{"1...5", []want{p(token.Float, "1."), k(token.RangeExc), p(token.Integer, "5"), k(token.EOF)}},
		{"1....5", []want{p(token.Float, "1."), k(token.RangeInc), p(token.Integer, "5"), k(token.EOF)}},
		{"x..5", []want{p(token.Tag, "x"), k(token.RangeExc), p(token.Integer, "5"), k(token.EOF)}},
		{"12.2..4", []want{p(token.Float, "12.2"), k(token.RangeExc), p(token.Integer, "4"), k(token.EOF)}},
		{".5", []want{k(token.Dot), p(token.Integer, "5"), k(token.EOF)}},
		{"x.0", []want{p(token.Tag, "x"), k(token.Dot), p(token.Integer, "0"), k(token.EOF)}},
		{"99999999999999999999999", []want{p(token.Integer, "99999999999999999999999"), k(token.EOF)}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, tt.expected...)
		})
	}
}

func TestStrings(t *testing.T) {
	src := `
        "12.2.1"
        "hello"
        \\hello, world
        \\!
        `
	expectTokens(t, src,
		p(token.String, "12.2.1"), k(token.Newline),
		p(token.String, "hello"), k(token.Newline),
		p(token.String, "hello, world\n!"),
		k(token.EOF),
	)
}

func TestStringKeepsEscapesRaw(t *testing.T) {
	expectTokens(t, `"a\"b" c`,
		p(token.String, `a\"b`), p(token.Tag, "c"), k(token.EOF),
	)
	expectTokens(t, `"line\n" ""`,
		p(token.String, `line\n`), p(token.String, ""), k(token.EOF),
	)
	expectTokens(t, "\"two\nlines\"",
		p(token.String, "two\nlines"), k(token.EOF),
	)
}

func TestMultilineStringEndsAtPlainLine(t *testing.T) {
	s, _ := makeTestScanner("x = \\\\a\n  \\\\b\ny")
	toks := s.Tokens()
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %v", describe(toks))
	}
	str := toks[2]
	if str.Kind != token.String || str.Text != "a\nb" {
		t.Fatalf("expected multiline string \"a\\nb\", got %s %q", str.Kind.Name(), str.Text)
	}
	// позиция первого символа содержимого, а не маркера
	if str.Pos != (source.Position{Line: 1, Col: 7}) {
		t.Fatalf("multiline string should start at its first content character, got %s", str.Pos)
	}
	if toks[3].Kind != token.Tag || toks[3].Pos != (source.Position{Line: 3, Col: 1}) {
		t.Fatalf("expected tag y at 3:1, got %s at %s", toks[3].Kind.Name(), toks[3].Pos)
	}
}

func TestMultilineStringAtEndOfInput(t *testing.T) {
	expectTokens(t, `\\tail`, p(token.String, "tail"), k(token.EOF))
	expectTokens(t, "\\\\", p(token.String, ""), k(token.EOF))
}

func TestRegex(t *testing.T) {
	expectTokens(t, "`rex(lang|xer)` `a\\`",
		p(token.Regex, "rex(lang|xer)"), p(token.Regex, `a\`), k(token.EOF),
	)
}

func TestTagsAndKeywords(t *testing.T) {
	src := `
        hello
        hey?
        yo!
        let
        `
	expectTokens(t, src,
		p(token.Tag, "hello"), k(token.Newline),
		p(token.Tag, "hey?"), k(token.Newline),
		p(token.Tag, "yo!"), k(token.Newline),
		k(token.KwLet), k(token.Newline),
		k(token.EOF),
	)
}

func TestTagSuffixes(t *testing.T) {
	expectTokens(t, "? ! let? match! a?? _x_1",
		k(token.Question), k(token.Bang),
		p(token.Tag, "let?"), p(token.Tag, "match!"),
		p(token.Tag, "a?"), k(token.Question),
		p(token.Tag, "_x_1"),
		k(token.EOF),
	)
}

func TestAllKeywords(t *testing.T) {
	for _, word := range token.Keywords() {
		kind, _ := token.LookupKeyword(word)
		expectTokens(t, word, k(kind), k(token.EOF))
	}
}

func TestCompoundOperators(t *testing.T) {
	expectTokens(t, "<==>->!!=..:=...=~!~",
		k(token.LtEq), k(token.FatArrow), k(token.Arrow), k(token.Bang),
		k(token.BangEq), k(token.RangeExc), k(token.AssignExp), k(token.RangeInc),
		k(token.PatternMatch), k(token.PatternNotMatch), k(token.EOF),
	)
}

func TestEveryCompoundOperator(t *testing.T) {
	tests := map[string]token.Kind{
		"=": token.Assign, "=>": token.FatArrow, "=~": token.PatternMatch, "==": token.EqEq,
		"+": token.Plus, "++": token.Increment,
		"*": token.Star, "**": token.Power,
		"-": token.Minus, "->": token.Arrow, "--": token.Decrement,
		"<": token.Lt, "<=": token.LtEq, "<<": token.Shl,
		">": token.Gt, ">=": token.GtEq, ">>": token.Shr,
		"!": token.Bang, "!=": token.BangEq, "!~": token.PatternNotMatch,
		":": token.Colon, ":=": token.AssignExp,
		"|": token.Pipe, "|>": token.Pipeline,
		".": token.Dot, "..": token.RangeExc, "...": token.RangeInc,
	}
	for input, kind := range tests {
		toks := collectAllTokens(t, input)
		if len(toks) != 2 || toks[0].Kind != kind || toks[0].Text != input {
			t.Errorf("%q: expected single %s, got %v", input, kind.Name(), describe(toks))
		}
		if kind.String() != input {
			t.Errorf("%q: canonical rendering of %s is %q", input, kind.Name(), kind.String())
		}
	}
}

func TestLongestMatchChains(t *testing.T) {
	expectTokens(t, "....",
		k(token.RangeInc), k(token.Dot), k(token.EOF),
	)
	expectTokens(t, "===",
		k(token.EqEq), k(token.Assign), k(token.EOF),
	)
	expectTokens(t, "+++",
		k(token.Increment), k(token.Plus), k(token.EOF),
	)
	expectTokens(t, "a|>b",
		p(token.Tag, "a"), k(token.Pipeline), p(token.Tag, "b"), k(token.EOF),
	)
}

func TestAssignment(t *testing.T) {
	src := "\n" +
		"        let x: int = 12\n" +
		"        const y: regex = `rex(lang|xer)`\n" +
		"        let z: string = \"rexlang\"\n" +
		"        z =~ y\n" +
		"        "
	expectTokens(t, src,
		k(token.KwLet), p(token.Tag, "x"), k(token.Colon), p(token.Tag, "int"),
		k(token.Assign), p(token.Integer, "12"), k(token.Newline),
		k(token.KwConst), p(token.Tag, "y"), k(token.Colon), p(token.Tag, "regex"),
		k(token.Assign), p(token.Regex, "rex(lang|xer)"), k(token.Newline),
		k(token.KwLet), p(token.Tag, "z"), k(token.Colon), p(token.Tag, "string"),
		k(token.Assign), p(token.String, "rexlang"), k(token.Newline),
		p(token.Tag, "z"), k(token.PatternMatch), p(token.Tag, "y"), k(token.Newline),
		k(token.EOF),
	)
}

func TestCommentsNeverProduceTokens(t *testing.T) {
	expectTokens(t, "a # c d \"e\n# whole line\nb#tail",
		p(token.Tag, "a"), k(token.Newline),
		k(token.Newline),
		p(token.Tag, "b"),
		k(token.EOF),
	)
}

func TestPositions(t *testing.T) {
	toks := collectAllTokens(t, "let x = 12\n  y # c\n\"hi\" `r`")
	expected := []struct {
		kind token.Kind
		pos  source.Position
	}{
		{token.KwLet, source.Position{Line: 1, Col: 1}},
		{token.Tag, source.Position{Line: 1, Col: 5}},
		{token.Assign, source.Position{Line: 1, Col: 7}},
		{token.Integer, source.Position{Line: 1, Col: 9}},
		{token.Newline, source.Position{Line: 1, Col: 11}},
		{token.Tag, source.Position{Line: 2, Col: 3}},
		{token.Newline, source.Position{Line: 2, Col: 8}},
		{token.String, source.Position{Line: 3, Col: 1}},
		{token.Regex, source.Position{Line: 3, Col: 6}},
		{token.EOF, source.Position{Line: 3, Col: 9}},
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %v", len(expected), describe(toks))
	}
	for i, e := range expected {
		if toks[i].Kind != e.kind || toks[i].Pos != e.pos {
			t.Errorf("token %d: expected %s at %s, got %s at %s", i, e.kind.Name(), e.pos, toks[i].Kind.Name(), toks[i].Pos)
		}
		if toks[i].File != "test.rx" {
			t.Errorf("token %d: expected file test.rx, got %q", i, toks[i].File)
		}
	}
}

func TestCompoundPositions(t *testing.T) {
	toks := collectAllTokens(t, "a...b ..c |>d")
	cols := []uint32{1, 2, 5, 7, 9, 11, 13, 14}
	if len(toks) != len(cols) {
		t.Fatalf("expected %d tokens, got %v", len(cols), describe(toks))
	}
	for i, col := range cols {
		if toks[i].Pos.Col != col || toks[i].Pos.Line != 1 {
			t.Errorf("token %d (%s): expected col %d, got %s", i, toks[i].Kind.Name(), col, toks[i].Pos)
		}
	}
}

func TestUnicodeTags(t *testing.T) {
	toks := collectAllTokens(t, "\u03bbx := \u00f1and\u00fa")
	expectTokens(t, "\u03bbx := \u00f1and\u00fa",
		p(token.Tag, "\u03bbx"), k(token.AssignExp), p(token.Tag, "\u00f1and\u00fa"), k(token.EOF),
	)
	cols := []uint32{1, 4, 7, 12}
	for i, col := range cols {
		if toks[i].Pos.Col != col {
			t.Errorf("token %d: columns count characters, expected %d, got %d", i, col, toks[i].Pos.Col)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n\n", "\r\n"} {
		s, _ := makeTestScanner(input)
		tok, ok := s.Next()
		if !ok || tok.Kind != token.EOF {
			t.Fatalf("%q: expected EOF, got %s (ok=%v)", input, tok.Kind.Name(), ok)
		}
		if tok.Pos != source.StartPosition {
			t.Fatalf("%q: expected EOF at 1:1, got %s", input, tok.Pos)
		}
		if _, ok := s.Next(); ok {
			t.Fatalf("%q: expected exhaustion after EOF", input)
		}
	}
}

func TestLeadingNewlinesTrimmed(t *testing.T) {
	toks := collectAllTokens(t, "\n\n\nlet")
	if toks[0].Kind != token.KwLet || toks[0].Pos != source.StartPosition {
		t.Fatalf("expected let at 1:1, got %s at %s", toks[0].Kind.Name(), toks[0].Pos)
	}
}

func TestExhaustionIsSticky(t *testing.T) {
	s, _ := makeTestScanner("a")
	count := 0
	for {
		_, ok := s.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected Tag and EOF, got %d tokens", count)
	}
	for range 3 {
		if _, ok := s.Next(); ok {
			t.Fatal("Next must keep reporting exhaustion")
		}
	}
}

func TestResetIsIdempotent(t *testing.T) {
	inputs := []string{
		"let x: int = 12\nx =~ `a|b`\n",
		"\\\\one\n\\\\two\n\"s\" 1..2 ...",
		"a § b # c\n\"open",
	}
	for _, input := range inputs {
		s, _ := makeTestScanner(input)
		first := s.Tokens()
		s.Reset()
		second := s.Tokens()
		if len(first) != len(second) {
			t.Fatalf("%q: first scan %d tokens, second %d", input, len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("%q: token %d differs after reset: %v vs %v", input, i, first[i], second[i])
			}
		}
		if s.FileName() != "test.rx" {
			t.Fatalf("reset changed the file name to %q", s.FileName())
		}
	}
}

func TestResetMidStream(t *testing.T) {
	s, _ := makeTestScanner("a b c")
	s.Next()
	s.Next()
	s.Reset()
	tok, _ := s.Next()
	if tok.Text != "a" || tok.Pos != source.StartPosition {
		t.Fatalf("expected a at 1:1 after reset, got %q at %s", tok.Text, tok.Pos)
	}
}

func TestPositionsAreMonotoneAndNonZero(t *testing.T) {
	inputs := []string{
		"let x = 1\n\n  y := x ** 2 # sq\n",
		"\\\\a\n \\\\b\n`re` \"s\" ...\t\r\n!~",
		"été == 漢字\n§§",
		"\"unterminated\nstring",
	}
	for _, input := range inputs {
		toks := collectAllTokens(t, input)
		for i, tok := range toks {
			if !tok.Pos.IsValid() {
				t.Fatalf("%q: token %d has zero coordinate %s", input, i, tok.Pos)
			}
			if i > 0 && tok.Pos.Before(toks[i-1].Pos) {
				t.Fatalf("%q: token %d at %s precedes previous %s", input, i, tok.Pos, toks[i-1].Pos)
			}
		}
		if toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("%q: stream must end with EOF", input)
		}
	}
}

func TestIllegalCharacters(t *testing.T) {
	s, reporter := makeTestScanner("a § b \\ c")
	toks := s.Tokens()
	expected := []token.Kind{token.Tag, token.Illegal, token.Tag, token.Illegal, token.Tag, token.EOF}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %v", len(expected), describe(toks))
	}
	for i, kind := range expected {
		if toks[i].Kind != kind {
			t.Fatalf("token %d: expected %s, got %s", i, kind.Name(), toks[i].Kind.Name())
		}
	}
	if toks[1].Text != "§" || toks[1].Pos != (source.Position{Line: 1, Col: 3}) {
		t.Fatalf("unexpected illegal token %q at %s", toks[1].Text, toks[1].Pos)
	}
	if len(reporter.diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", reporter.ErrorMessages())
	}
	d := reporter.diagnostics[0]
	if d.Code != diag.LexIllegalChar || d.Pos != toks[1].Pos || d.File != "test.rx" {
		t.Fatalf("unexpected diagnostic %v", reporter.ErrorMessages())
	}
}

func TestEmbeddedNUL(t *testing.T) {
	s, reporter := makeTestScanner("a\x00b")
	toks := s.Tokens()
	if len(toks) != 4 || toks[1].Kind != token.Illegal || toks[2].Kind != token.Tag || toks[3].Kind != token.EOF {
		t.Fatalf("expected Tag Illegal Tag EOF, got %v", describe(toks))
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexEmbeddedNUL {
		t.Fatalf("expected LexEmbeddedNUL, got %v", reporter.ErrorMessages())
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
		code  diag.Code
	}{
		{`x = "abc`, token.String, "abc", diag.LexUnterminatedString},
		{`x = "ab\"`, token.String, `ab\"`, diag.LexUnterminatedString},
		{"x = `ab", token.Regex, "ab", diag.LexUnterminatedRegex},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, reporter := makeTestScanner(tt.input)
			toks := s.Tokens()
			if len(toks) != 4 {
				t.Fatalf("expected 4 tokens, got %v", describe(toks))
			}
			lit := toks[2]
			if lit.Kind != tt.kind || lit.Text != tt.text {
				t.Fatalf("expected %s %q, got %s %q", tt.kind.Name(), tt.text, lit.Kind.Name(), lit.Text)
			}
			if lit.Pos != (source.Position{Line: 1, Col: 5}) {
				t.Fatalf("literal should sit at its opening delimiter, got %s", lit.Pos)
			}
			if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != tt.code {
				t.Fatalf("expected %s, got %v", tt.code.ID(), reporter.ErrorMessages())
			}
			if reporter.diagnostics[0].Pos != lit.Pos {
				t.Fatalf("diagnostic at %s, literal at %s", reporter.diagnostics[0].Pos, lit.Pos)
			}
		})
	}
}

func TestReporterDoesNotChangeStream(t *testing.T) {
	input := "a § \"open\n`re"
	plain := lexer.Tokenize("test.rx", input)
	s, _ := makeTestScanner(input)
	reported := s.Tokens()
	if len(plain) != len(reported) {
		t.Fatalf("token counts differ: %d vs %d", len(plain), len(reported))
	}
	for i := range plain {
		if plain[i] != reported[i] {
			t.Fatalf("token %d differs: %v vs %v", i, plain[i], reported[i])
		}
	}
}

func TestDiagnosticPathKeepsTokenName(t *testing.T) {
	reporter := &testReporter{}
	s := lexer.New("main.rx", "x = §", lexer.WithReporter(reporter), lexer.WithDiagnosticPath("/src/app/main.rx"))
	toks := s.Tokens()
	for i, tok := range toks {
		if tok.File != "main.rx" {
			t.Fatalf("token %d: expected file main.rx, got %q", i, tok.File)
		}
	}
	if len(reporter.diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", reporter.ErrorMessages())
	}
	if got := reporter.diagnostics[0].File; got != "/src/app/main.rx" {
		t.Fatalf("diagnostic file = %q, want /src/app/main.rx", got)
	}
}

func TestAllStopsEarly(t *testing.T) {
	s, _ := makeTestScanner("a b c")
	n := 0
	for range s.All() {
		n++
		if n == 2 {
			break
		}
	}
	tok, ok := s.Next()
	if !ok || tok.Text != "c" {
		t.Fatalf("expected scanning to resume at c, got %q (ok=%v)", tok.Text, ok)
	}
}

func TestTokenTextIsSourceSlice(t *testing.T) {
	toks := collectAllTokens(t, "foo ... \"bar\"\n")
	texts := []string{"foo", "...", "bar", "\n", ""}
	for i, text := range texts {
		if toks[i].Text != text {
			t.Errorf("token %d: expected text %q, got %q", i, text, toks[i].Text)
		}
	}
}
