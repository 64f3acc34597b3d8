package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"const":   KwConst,
		"let":     KwLet,
		"return":  KwReturn,
		"fn":      KwFn,
		"record":  KwRecord,
		"trait":   KwTrait,
		"when":    KwWhen,
		"match":   KwMatch,
		"and":     KwAnd,
		"or":      KwOr,
		"dyn":     KwDyn,
		"anytype": KwAnytype,
		"mov":     KwMov,
		"ctime":   KwCtime,
		"true":    KwTrue,
		"false":   KwFalse,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want.Name())
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got.Name(), want.Name())
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"Fn", "LET", "Const", // регистр важен
		"comptime", "any", "import", "in", // чужие ключевые слова
		"let?", "match!", // хвостовой суффикс делает из слова тег
		"identifier", "",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKeywordsMatchRenderings(t *testing.T) {
	words := Keywords()
	if len(words) != len(keywords) {
		t.Fatalf("Keywords() returned %d words, table has %d", len(words), len(keywords))
	}
	for _, w := range words {
		k, ok := keywords[w]
		if !ok {
			t.Fatalf("%q rendered by a keyword kind but missing from the table", w)
		}
		if k.String() != w {
			t.Fatalf("%q maps to %s which renders as %q", w, k.Name(), k.String())
		}
	}
}
