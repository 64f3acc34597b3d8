package lexer

import (
	"iter"

	"rex/internal/source"
	"rex/internal/token"
)

// Scanner превращает текст одного файла в поток токенов.
// Каждый вызов Next отдаёт один токен, поток заканчивается токеном EOF.
type Scanner struct {
	file   string
	src    string
	cursor Cursor
	opts   Options
	done   bool // EOF уже отдан
}

// New создаёт сканер. Ведущие переводы строк отрезаются, так что (1,1) это
// первый символ после них.
func New(fileName, text string, opts ...Option) *Scanner {
	src, _ := source.TrimLeadingNewlines(text)
	s := &Scanner{
		file:   fileName,
		src:    src,
		cursor: NewCursor(src),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// FileName returns the logical file name stamped on every token.
func (s *Scanner) FileName() string { return s.file }

// Reset перематывает сканер в начало текста. Имя файла и опции не меняются.
func (s *Scanner) Reset() {
	s.cursor = NewCursor(s.src)
	s.done = false
}

// Next возвращает следующий токен. После того как отдан EOF,
// возвращает false при каждом следующем вызове.
func (s *Scanner) Next() (token.Token, bool) {
	if s.done {
		return token.Token{}, false
	}

	// 1) пробелы и комментарии не дают токенов
	s.skipTrivia()

	// 2) конец текста → EOF
	if s.cursor.EOF() {
		s.done = true
		return s.emit(token.EOF, "", s.cursor.Pos), true
	}

	// 3) выбрать сканер по текущему символу
	ch := s.cursor.Current()
	var tok token.Token

	switch {
	case isIdentStartRune(ch):
		tok = s.scanTag()

	case isDec(ch):
		tok = s.scanNumber()

	case ch == '"':
		tok = s.scanString()

	case ch == '\\' && s.cursor.Peek() == '\\':
		tok = s.scanMultiline()

	case ch == '`':
		tok = s.scanRegex()

	default:
		// составные операторы и всё односимвольное, включая Illegal
		tok = s.scanOperatorOrPunct()
	}

	return tok, true
}

// All exposes the remaining tokens as a range-over-func sequence, EOF included.
func (s *Scanner) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokens drains the scanner and returns every remaining token, EOF included.
func (s *Scanner) Tokens() []token.Token {
	out := make([]token.Token, 0, len(s.src)/4+1)
	for tok := range s.All() {
		out = append(out, tok)
	}
	return out
}

// Tokenize scans text in one go.
func Tokenize(fileName, text string, opts ...Option) []token.Token {
	return New(fileName, text, opts...).Tokens()
}

func (s *Scanner) emit(k token.Kind, text string, pos source.Position) token.Token {
	return token.Token{Kind: k, Text: text, Pos: pos, File: s.file}
}
