package lexer

import (
	"rex/internal/diag"
	"rex/internal/source"
)

// Options collects optional scanner collaborators.
type Options struct {
	Reporter diag.Reporter // если nil, ошибки молча пропускаются
	DiagPath string        // путь в диагностиках, по умолчанию имя файла сканера
}

// Option configures a Scanner.
type Option func(*Options)

// WithReporter routes lexical diagnostics to r. The token stream is the same
// with or without a reporter.
func WithReporter(r diag.Reporter) Option {
	return func(o *Options) { o.Reporter = r }
}

// WithDiagnosticPath keys diagnostics by path while tokens keep the short
// logical name given to New. Renderers look sources up by path.
func WithDiagnosticPath(path string) Option {
	return func(o *Options) { o.DiagPath = path }
}

func (s *Scanner) errLex(code diag.Code, pos source.Position, msg string) {
	if s.opts.Reporter == nil {
		return
	}
	file := s.opts.DiagPath
	if file == "" {
		file = s.file
	}
	diag.ReportError(s.opts.Reporter, code, file, pos, msg).Emit()
}
