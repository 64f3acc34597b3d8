package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rex/internal/diag"
	"rex/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	gutterColor  = color.New(color.FgBlue)
	caretColor   = color.New(color.FgRed, color.Bold)
	noteColor    = color.New(color.FgGreen)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст и строку с ошибкой с кареткой ^ под позицией, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	path := displayPath(fs, d.File, opts.PathMode)
	loc := d.Pos.String()
	if path != "" {
		loc = path + ":" + loc
	}
	header := fmt.Sprintf("%s %s", d.Severity, d.Code.ID())
	fmt.Fprintf(w, "%s: %s: %s\n", loc, paint(severityColor(d.Severity), opts.Color, header), d.Message)

	file := lookupFile(fs, d.File)
	if file != nil && d.Pos.IsValid() {
		writeSnippet(w, file, d.Pos, opts)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		label := paint(noteColor, opts.Color, "note")
		if n.Pos.IsValid() {
			fmt.Fprintf(w, "  %s: %s: %s\n", label, n.Pos, n.Msg)
		} else {
			fmt.Fprintf(w, "  %s: %s\n", label, n.Msg)
		}
	}
}

func writeSnippet(w io.Writer, file *source.File, pos source.Position, opts PrettyOpts) {
	first := pos.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context)
		if ctx >= first {
			first = 1
		} else {
			first -= ctx
		}
	}
	gutter := len(fmt.Sprint(pos.Line))
	for line := first; line <= pos.Line; line++ {
		num := fmt.Sprintf("%*d |", gutter, line)
		fmt.Fprintf(w, " %s %s\n", paint(gutterColor, opts.Color, num), file.SourceLine(line))
	}
	pad := caretPadding(file.SourceLine(pos.Line), pos.Col)
	blank := strings.Repeat(" ", gutter) + " |"
	fmt.Fprintf(w, " %s %s%s\n", paint(gutterColor, opts.Color, blank), pad, paint(caretColor, opts.Color, "^"))
}

// caretPadding returns whitespace spanning the first col-1 characters of line.
// Tabs are kept so the caret lines up in terminals; wide runes take two cells.
func caretPadding(line string, col uint32) string {
	var sb strings.Builder
	var seen uint32
	for _, r := range line {
		if seen+1 >= col {
			break
		}
		seen++
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	// позиция за концом строки (EOF, незакрытая строка)
	if seen+1 < col {
		sb.WriteString(strings.Repeat(" ", int(col-1-seen)))
	}
	return sb.String()
}

func lookupFile(fs *source.FileSet, name string) *source.File {
	if fs == nil || name == "" {
		return nil
	}
	f, ok := fs.GetByPath(name)
	if !ok {
		return nil
	}
	return f
}

func displayPath(fs *source.FileSet, name string, mode PathMode) string {
	f := lookupFile(fs, name)
	if f == nil {
		return name
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
