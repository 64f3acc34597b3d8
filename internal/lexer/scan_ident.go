package lexer

import (
	"rex/internal/token"
)

// scanTag сканирует [Tag] и проверяет через LookupKeyword.
// Один хвостовой '?' или '!' входит в тег ("hey?", "yo!"); такое слово
// уже не ключевое. Token.Text совпадает с исходным срезом.
func (s *Scanner) scanTag() token.Token {
	start := s.cursor.Mark()

	s.cursor.Bump()
	for isIdentContinueRune(s.cursor.Current()) {
		s.cursor.Bump()
	}
	if c := s.cursor.Current(); c == '?' || c == '!' {
		s.cursor.Bump()
	}

	text := s.cursor.TextFrom(start)
	if k, ok := token.LookupKeyword(text); ok {
		return s.emit(k, text, start.Pos())
	}
	return s.emit(token.Tag, text, start.Pos())
}
