package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ErrBadEscape is wrapped by every error returned from Unescape.
var ErrBadEscape = errors.New("invalid escape sequence")

// Unescape декодирует escape-последовательности в тексте строкового токена:
// \n \r \t \0 \\ \" \' и \u{X..} (1–6 шестнадцатеричных цифр).
// Сканер его не вызывает: токен String всегда хранит сырой текст.
func Unescape(raw string) (string, error) {
	if !strings.Contains(raw, `\`) {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(raw) {
			return "", fmt.Errorf("%w: trailing backslash", ErrBadEscape)
		}
		switch e := raw[i+1]; e {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(e)
		case 'u':
			r, n, err := decodeUnicodeEscape(raw[i+2:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += 2 + n
			continue
		default:
			return "", fmt.Errorf("%w: \\%c at byte %d", ErrBadEscape, e, i)
		}
		i += 2
	}
	return b.String(), nil
}

// decodeUnicodeEscape разбирает "{XXXX}" после \u; возвращает руну и число
// съеденных байт.
func decodeUnicodeEscape(s string) (rune, int, error) {
	if s == "" || s[0] != '{' {
		return 0, 0, fmt.Errorf("%w: expected '{' after \\u", ErrBadEscape)
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return 0, 0, fmt.Errorf("%w: unclosed \\u{", ErrBadEscape)
	}
	digits := s[1:end]
	if digits == "" || len(digits) > 6 {
		return 0, 0, fmt.Errorf("%w: \\u{%s} needs 1 to 6 hex digits", ErrBadEscape, digits)
	}
	for _, d := range digits {
		if !isHex(d) {
			return 0, 0, fmt.Errorf("%w: \\u{%s} is not hexadecimal", ErrBadEscape, digits)
		}
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBadEscape, err)
	}
	r, err := safecast.Conv[rune](v)
	if err != nil || !utf8.ValidRune(r) {
		return 0, 0, fmt.Errorf("%w: \\u{%s} is not a valid code point", ErrBadEscape, digits)
	}
	return r, end + 1, nil
}
