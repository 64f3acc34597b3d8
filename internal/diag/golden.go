package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"rex/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files. Paths are made relative to baseDir,
// entries are sorted deterministically and joined into one string (empty when
// nothing remains).
func FormatGoldenDiagnostics(diags []Diagnostic, baseDir string, includeNotes bool) string {
	return formatDiagnostics(diags, baseDir, includeNotes)
}

// FormatShortDiagnostics renders diagnostics one per line with paths as reported.
func FormatShortDiagnostics(diags []Diagnostic, includeNotes bool) string {
	return formatDiagnostics(diags, "", includeNotes)
}

func formatDiagnostics(diags []Diagnostic, baseDir string, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], baseDir, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, baseDir string, includeNotes bool) []goldenDiagnostic {
	path := displayPath(d.File, baseDir)
	out = append(out, goldenDiagnostic{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     d.Pos.Line,
		Column:   d.Pos.Col,
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			out = append(out, goldenDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     path,
				Line:     note.Pos.Line,
				Column:   note.Pos.Col,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	return out
}

func displayPath(path, baseDir string) string {
	if baseDir != "" && filepath.IsAbs(path) {
		if rel, err := source.RelativePath(path, baseDir); err == nil {
			path = rel
		}
	}
	return normalizePath(path)
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
