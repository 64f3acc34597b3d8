package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Illegal indicates a character that matches no token.
	Illegal Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is emitted for every '\n' outside literals and comments.
	Newline

	// Tag represents an identifier, optionally ending in '?' or '!'.
	Tag
	// Integer represents an integer literal kept as text.
	Integer
	// Float represents a float literal kept as text.
	Float
	// String represents a quoted or multiline string, delimiters stripped.
	String
	// Regex represents a backtick-delimited regex, delimiters stripped.
	Regex

	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwRecord represents the 'record' keyword.
	KwRecord // record
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwModule represents the 'module' keyword.
	KwModule // module
	// KwDefer represents the 'defer' keyword.
	KwDefer // defer
	// KwWhen represents the 'when' keyword.
	KwWhen // when
	// KwInline represents the 'inline' keyword.
	KwInline // inline
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwDyn represents the 'dyn' keyword.
	KwDyn // dyn
	// KwAnytype represents the 'anytype' keyword.
	KwAnytype // anytype
	// KwMut represents the 'mut' binding mode.
	KwMut // mut
	// KwMov represents the 'mov' binding mode.
	KwMov // mov
	// KwLoc represents the 'loc' binding mode.
	KwLoc // loc
	// KwCtime represents the 'ctime' binding mode.
	KwCtime // ctime

	// Assign represents the assign operator token.
	Assign // =
	// AssignExp represents the infer-and-assign operator token.
	AssignExp // :=

	// Dot represents the dot token.
	Dot // .
	// Comma represents the comma token.
	Comma // ,
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Arrow represents the arrow token.
	Arrow // ->
	// FatArrow represents the fat arrow token.
	FatArrow // =>

	// At represents the address operator token.
	At // @
	// Cash represents the dollar operator token.
	Cash // $
	// Pound represents the pound token. The scanner treats '#' as a comment
	// start, so it only shows up through KindOf.
	Pound // #
	// Bang represents the bang operator token.
	Bang // !
	// Question represents the question operator token.
	Question // ?
	// RangeExc represents the exclusive range operator token.
	RangeExc // ..
	// RangeInc represents the inclusive range operator token.
	RangeInc // ...
	// Pipeline represents the pipeline operator token.
	Pipeline // |>

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Increment represents the increment operator token.
	Increment // ++
	// Decrement represents the decrement operator token.
	Decrement // --
	// Power represents the power operator token.
	Power // **

	// Amp represents the bitwise and operator token.
	Amp // &
	// Pipe represents the bitwise or operator token.
	Pipe // |
	// Caret represents the bitwise xor operator token.
	Caret // ^
	// Tilde represents the bitwise not operator token.
	Tilde // ~
	// Shl represents the shift left operator token.
	Shl // <<
	// Shr represents the shift right operator token.
	Shr // >>

	// Lt represents the less than operator token.
	Lt // <
	// LtEq represents the less or equal operator token.
	LtEq // <=
	// Gt represents the greater than operator token.
	Gt // >
	// GtEq represents the greater or equal operator token.
	GtEq // >=
	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=
	// PatternMatch represents the pattern match operator token.
	PatternMatch // =~
	// PatternNotMatch represents the negated pattern match operator token.
	PatternNotMatch // !~

	kindCount
)

var kindText = [kindCount]string{
	Illegal: "illegal",
	EOF:     "\x00",
	Newline: "\n",

	Tag:     "tag",
	Integer: "integer",
	Float:   "float",
	String:  "string",
	Regex:   "regex",

	KwConst:    "const",
	KwLet:      "let",
	KwReturn:   "return",
	KwFn:       "fn",
	KwRecord:   "record",
	KwEnum:     "enum",
	KwTrait:    "trait",
	KwModule:   "module",
	KwDefer:    "defer",
	KwWhen:     "when",
	KwInline:   "inline",
	KwTrue:     "true",
	KwFalse:    "false",
	KwFor:      "for",
	KwWhile:    "while",
	KwBreak:    "break",
	KwContinue: "continue",
	KwMatch:    "match",
	KwIf:       "if",
	KwElse:     "else",
	KwAs:       "as",
	KwAnd:      "and",
	KwOr:       "or",
	KwDyn:      "dyn",
	KwAnytype:  "anytype",
	KwMut:      "mut",
	KwMov:      "mov",
	KwLoc:      "loc",
	KwCtime:    "ctime",

	Assign:    "=",
	AssignExp: ":=",

	Dot:       ".",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
	LBracket:  "[",
	RBracket:  "]",
	LBrace:    "{",
	RBrace:    "}",
	Colon:     ":",
	Semicolon: ";",
	Arrow:     "->",
	FatArrow:  "=>",

	At:       "@",
	Cash:     "$",
	Pound:    "#",
	Bang:     "!",
	Question: "?",
	RangeExc: "..",
	RangeInc: "...",
	Pipeline: "|>",

	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Increment: "++",
	Decrement: "--",
	Power:     "**",

	Amp:   "&",
	Pipe:  "|",
	Caret: "^",
	Tilde: "~",
	Shl:   "<<",
	Shr:   ">>",

	Lt:              "<",
	LtEq:            "<=",
	Gt:              ">",
	GtEq:            ">=",
	EqEq:            "==",
	BangEq:          "!=",
	PatternMatch:    "=~",
	PatternNotMatch: "!~",
}

var kindNames = [kindCount]string{
	Illegal: "Illegal", EOF: "EOF", Newline: "Newline",
	Tag: "Tag", Integer: "Integer", Float: "Float", String: "String", Regex: "Regex",
	KwConst: "KwConst", KwLet: "KwLet", KwReturn: "KwReturn", KwFn: "KwFn",
	KwRecord: "KwRecord", KwEnum: "KwEnum", KwTrait: "KwTrait", KwModule: "KwModule",
	KwDefer: "KwDefer", KwWhen: "KwWhen", KwInline: "KwInline", KwTrue: "KwTrue",
	KwFalse: "KwFalse", KwFor: "KwFor", KwWhile: "KwWhile", KwBreak: "KwBreak",
	KwContinue: "KwContinue", KwMatch: "KwMatch", KwIf: "KwIf", KwElse: "KwElse",
	KwAs: "KwAs", KwAnd: "KwAnd", KwOr: "KwOr", KwDyn: "KwDyn", KwAnytype: "KwAnytype",
	KwMut: "KwMut", KwMov: "KwMov", KwLoc: "KwLoc", KwCtime: "KwCtime",
	Assign: "Assign", AssignExp: "AssignExp",
	Dot: "Dot", Comma: "Comma", LParen: "LParen", RParen: "RParen",
	LBracket: "LBracket", RBracket: "RBracket", LBrace: "LBrace", RBrace: "RBrace",
	Colon: "Colon", Semicolon: "Semicolon", Arrow: "Arrow", FatArrow: "FatArrow",
	At: "At", Cash: "Cash", Pound: "Pound", Bang: "Bang", Question: "Question",
	RangeExc: "RangeExc", RangeInc: "RangeInc", Pipeline: "Pipeline",
	Plus: "Plus", Minus: "Minus", Star: "Star", Slash: "Slash", Percent: "Percent",
	Increment: "Increment", Decrement: "Decrement", Power: "Power",
	Amp: "Amp", Pipe: "Pipe", Caret: "Caret", Tilde: "Tilde", Shl: "Shl", Shr: "Shr",
	Lt: "Lt", LtEq: "LtEq", Gt: "Gt", GtEq: "GtEq", EqEq: "EqEq", BangEq: "BangEq",
	PatternMatch: "PatternMatch", PatternNotMatch: "PatternNotMatch",
}

// String returns the canonical text of k: the spelling for keywords and
// operators, "\n" for Newline, "illegal" and "\x00" for the sentinels and
// the lowercase class name for payload kinds.
func (k Kind) String() string {
	if k >= kindCount {
		return "illegal"
	}
	return kindText[k]
}

// Name returns the Go-style identifier of k, used by token dumps.
func (k Kind) Name() string {
	if k >= kindCount {
		return "Illegal"
	}
	return kindNames[k]
}

// ParseName is the inverse of Name.
func ParseName(name string) (Kind, bool) {
	for k := Illegal; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Illegal, false
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Illegal; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// HasPayload reports whether tokens of kind k carry lexeme text that is not
// implied by the kind.
func (k Kind) HasPayload() bool {
	switch k {
	case Tag, Integer, Float, String, Regex:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KwConst && k <= KwCtime }

// IsLiteral reports whether k is a numeric, boolean, string or regex literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case Integer, Float, String, Regex, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsOperator reports whether k is punctuation or an operator.
func (k Kind) IsOperator() bool { return k >= Assign && k < kindCount }

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// Width returns the number of source characters consumed by a fixed-spelling
// kind, 0 for payload kinds and sentinels.
func (k Kind) Width() int {
	if k.HasPayload() || k == Illegal || k == EOF {
		return 0
	}
	return len(kindText[k])
}
