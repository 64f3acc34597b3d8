package main

import (
	"fmt"
	"io"

	"rex/internal/diag"
	"rex/internal/diagfmt"
	"rex/internal/source"
	"rex/internal/token"
)

type tokenFormat string

const (
	formatPretty  tokenFormat = "pretty"
	formatJSON    tokenFormat = "json"
	formatMsgpack tokenFormat = "msgpack"
)

func readTokenFormat(value string) (tokenFormat, error) {
	switch f := tokenFormat(value); f {
	case formatPretty, formatJSON, formatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown format: %s (expected pretty|json|msgpack)", value)
}

// prettyLexemeWidth limits long string payloads in the pretty listing.
const prettyLexemeWidth = 60

func (a *app) writeTokens(w io.Writer, format tokenFormat, name string, tokens []token.Token) error {
	switch format {
	case formatJSON:
		return diagfmt.FormatTokensJSON(w, name, tokens)
	case formatMsgpack:
		return diagfmt.FormatTokensMsgpack(w, name, tokens)
	default:
		return diagfmt.FormatTokensPretty(w, tokens, diagfmt.TokenOpts{Color: a.colorOut, Width: prettyLexemeWidth})
	}
}

// reportDiagnostics prints the bag to w and returns errDiagnostics if it
// holds errors.
func (a *app) reportDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	bag.Dedup()
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     a.colorErr,
		Context:   1,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: !a.quiet,
	})
	if !bag.HasErrors() {
		return nil
	}
	return fmt.Errorf("%w: %d error(s)", errDiagnostics, bag.Count(diag.SevError))
}

// displayName is the file name written into token dumps.
func displayName(f *source.File, baseDir string) string {
	if f == nil {
		return ""
	}
	return f.FormatPath("relative", baseDir)
}
