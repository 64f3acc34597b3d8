package lexer

// skipTrivia пропускает пробелы и комментарии перед значимым токеном.
// '\n' не трогаем, он всегда становится токеном Newline.
func (s *Scanner) skipTrivia() {
	for !s.cursor.EOF() {
		s.skipWhitespace()
		if s.cursor.Current() != '#' || s.cursor.EOF() {
			return
		}
		s.skipComment()
	}
}

// skipWhitespace съедает подряд идущие ' ', '\t', '\r'.
func (s *Scanner) skipWhitespace() {
	for !s.cursor.EOF() && isBlank(s.cursor.Current()) {
		s.cursor.Bump()
	}
}

// skipComment съедает "# ..." до '\n' (не включая) или до конца текста.
func (s *Scanner) skipComment() {
	for !s.cursor.EOF() && s.cursor.Current() != '\n' {
		s.cursor.Bump()
	}
}
