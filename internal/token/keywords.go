package token

var keywords = map[string]Kind{
	"const":    KwConst,
	"let":      KwLet,
	"return":   KwReturn,
	"fn":       KwFn,
	"record":   KwRecord,
	"enum":     KwEnum,
	"trait":    KwTrait,
	"module":   KwModule,
	"defer":    KwDefer,
	"when":     KwWhen,
	"inline":   KwInline,
	"true":     KwTrue,
	"false":    KwFalse,
	"for":      KwFor,
	"while":    KwWhile,
	"break":    KwBreak,
	"continue": KwContinue,
	"match":    KwMatch,
	"if":       KwIf,
	"else":     KwElse,
	"as":       KwAs,
	"and":      KwAnd,
	"or":       KwOr,
	"dyn":      KwDyn,
	"anytype":  KwAnytype,
	"mut":      KwMut,
	"mov":      KwMov,
	"loc":      KwLoc,
	"ctime":    KwCtime,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые, распознаются только lowercase версии.
// Идентификаторы с хвостовым '?' или '!' никогда не ключевые слова.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns the keyword spellings in declaration order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := KwConst; k <= KwCtime; k++ {
		out = append(out, k.String())
	}
	return out
}
