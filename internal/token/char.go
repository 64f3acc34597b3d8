package token

var singleChar = map[rune]Kind{
	'=':  Assign,
	'.':  Dot,
	',':  Comma,
	'(':  LParen,
	')':  RParen,
	'[':  LBracket,
	']':  RBracket,
	'{':  LBrace,
	'}':  RBrace,
	':':  Colon,
	';':  Semicolon,
	'@':  At,
	'$':  Cash,
	'#':  Pound,
	'!':  Bang,
	'?':  Question,
	'+':  Plus,
	'-':  Minus,
	'*':  Star,
	'/':  Slash,
	'%':  Percent,
	'&':  Amp,
	'|':  Pipe,
	'^':  Caret,
	'~':  Tilde,
	'<':  Lt,
	'>':  Gt,
	'\n': Newline,
	0:    EOF,
}

// KindOf classifies a single character. The table is total: anything that
// is not a one-character token is Illegal.
func KindOf(r rune) Kind {
	if k, ok := singleChar[r]; ok {
		return k
	}
	return Illegal
}
