package lexer

import (
	"strings"

	"rex/internal/diag"
	"rex/internal/token"
)

// scanString читает "...". Текст токена это содержимое без кавычек, как есть.
// '\' только защищает следующий символ от роли закрывающей кавычки;
// escape-последовательности декодирует Unescape, вне сканера.
// Позиция токена совпадает с открывающей кавычкой.
func (s *Scanner) scanString() token.Token {
	text, closed, open := s.scanDelimited('"', true)
	pos := open.Pos()
	if !closed {
		s.errLex(diag.LexUnterminatedString, pos, "unterminated string literal")
	}
	return s.emit(token.String, text, pos)
}

// scanRegex читает `...` без какой-либо обработки '\'.
func (s *Scanner) scanRegex() token.Token {
	text, closed, open := s.scanDelimited('`', false)
	pos := open.Pos()
	if !closed {
		s.errLex(diag.LexUnterminatedRegex, pos, "unterminated regex literal")
	}
	return s.emit(token.Regex, text, pos)
}

func (s *Scanner) scanDelimited(delim rune, escapes bool) (text string, closed bool, open Mark) {
	open = s.cursor.Mark()
	s.cursor.Bump() // открывающий разделитель
	body := s.cursor.Mark()
	for !s.cursor.EOF() {
		c := s.cursor.Current()
		if c == delim {
			text = s.cursor.TextFrom(body)
			s.cursor.Bump()
			return text, true, open
		}
		s.cursor.Bump()
		if escapes && c == '\\' && !s.cursor.EOF() {
			s.cursor.Bump()
		}
	}
	// EOF без закрывающего разделителя, берём всё до конца
	return s.cursor.TextFrom(body), false, open
}

// scanMultiline читает строку-продолжение:
//
//	\\первая строка
//	\\вторая строка
//
// Каждый сегмент тянется до конца строки. Следующая строка (после ведущих
// пробелов) продолжает литерал, только если начинается с `\\`. Сегменты
// склеиваются через '\n'. Завершающий перевод строки съедается литералом.
// Позиция токена указывает на первый символ содержимого, сразу за
// открывающим `\\`.
func (s *Scanner) scanMultiline() token.Token {
	var (
		b     strings.Builder
		start Mark
	)

	for first := true; ; first = false {
		s.cursor.Advance(2) // `\\`
		seg := s.cursor.Mark()
		if first {
			start = seg
		}
		for !s.cursor.EOF() && s.cursor.Current() != '\n' {
			s.cursor.Bump()
		}
		b.WriteString(s.cursor.TextFrom(seg))

		if !s.cursor.Eat('\n') {
			break
		}
		s.skipWhitespace()
		if s.cursor.Current() != '\\' || s.cursor.Peek() != '\\' {
			break
		}
		b.WriteByte('\n')
	}

	return s.emit(token.String, b.String(), start.Pos())
}
