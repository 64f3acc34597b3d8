package lexer

import (
	"rex/internal/token"
)

// scanNumber читает 0, 123, 1.5 и 1. (float без дробной части).
// Значение не вычисляется, числа остаются текстом до следующих стадий.
//
// Первая точка всегда переводит в режим float, вторая его завершает и
// остаётся в потоке: "12.2.4" даёт Float "12.2", Dot, Integer "4", а
// "1..5" даёт Float "1.", Dot, Integer "5".
func (s *Scanner) scanNumber() token.Token {
	start := s.cursor.Mark()
	kind := token.Integer

	for isDec(s.cursor.Current()) {
		s.cursor.Bump()
	}

	// дробная часть
	if s.cursor.Current() == '.' {
		kind = token.Float
		s.cursor.Bump() // '.'
		for isDec(s.cursor.Current()) {
			s.cursor.Bump()
		}
	}

	return s.emit(kind, s.cursor.TextFrom(start), start.Pos())
}
