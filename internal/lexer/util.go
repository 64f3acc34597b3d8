package lexer

import (
	"unicode"
)

// ===== Классификаторы =====

// ASCII fast-path для идентификаторов, остальное через unicode.IsLetter/IsDigit.
func isIdentStartRune(r rune) bool {
	if r < unicode.MaxASCII {
		return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
	}
	return unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	if r < unicode.MaxASCII {
		return isIdentStartRune(r) || isDec(r)
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(r rune) bool { return r >= '0' && r <= '9' }

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'f') ||
		(r >= 'A' && r <= 'F')
}

// пробелы без '\n': перевод строки: отдельный токен
func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
