package lexer

import (
	"fmt"

	"rex/internal/diag"
	"rex/internal/token"
)

// rule описывает продолжение составного оператора, то есть ожидаемый символ и итоговый вид.
type rule struct {
	next rune
	kind token.Kind
}

// compound задаёт для ведущего символа упорядоченный список правил и
// односимвольный вид по умолчанию. Побеждает первое совпавшее правило.
type compound struct {
	rules []rule
	def   token.Kind
}

var compounds = map[rune]compound{
	'=': {[]rule{{'>', token.FatArrow}, {'~', token.PatternMatch}, {'=', token.EqEq}}, token.Assign},
	'+': {[]rule{{'+', token.Increment}}, token.Plus},
	'*': {[]rule{{'*', token.Power}}, token.Star},
	'-': {[]rule{{'>', token.Arrow}, {'-', token.Decrement}}, token.Minus},
	'<': {[]rule{{'=', token.LtEq}, {'<', token.Shl}}, token.Lt},
	'>': {[]rule{{'=', token.GtEq}, {'>', token.Shr}}, token.Gt},
	'!': {[]rule{{'=', token.BangEq}, {'~', token.PatternNotMatch}}, token.Bang},
	':': {[]rule{{'=', token.AssignExp}}, token.Colon},
	'|': {[]rule{{'>', token.Pipeline}}, token.Pipe},
	'.': {[]rule{{'.', token.RangeExc}}, token.Dot},
}

// Жадность: сначала 3-символьные (только "..."), затем 2-символьные,
// затем 1-символьные.
func (s *Scanner) scanOperatorOrPunct() token.Token {
	start := s.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return s.emit(k, s.cursor.TextFrom(start), start.Pos())
	}

	ch := s.cursor.Current()

	if ch == '.' && s.cursor.Peek() == '.' && s.cursor.PeekAt(2) == '.' {
		s.cursor.Advance(3)
		return emit(token.RangeInc)
	}

	if c, ok := compounds[ch]; ok {
		s.cursor.Bump()
		for _, r := range c.rules {
			if s.cursor.Eat(r.next) {
				return emit(r.kind)
			}
		}
		return emit(c.def)
	}

	// односимвольные
	s.cursor.Bump()
	k := token.KindOf(ch)
	switch {
	case ch == 0:
		// NUL внутри текста: KindOf(0) означает конец ввода, а здесь он не конец
		s.errLex(diag.LexEmbeddedNUL, start.Pos(), "NUL character inside source")
		k = token.Illegal
	case k == token.Illegal:
		s.errLex(diag.LexIllegalChar, start.Pos(), fmt.Sprintf("illegal character %q", ch))
	}
	return emit(k)
}
