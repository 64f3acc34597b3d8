package driver

import (
	"context"
	"time"

	"rex/internal/diag"
	"rex/internal/lexer"
	"rex/internal/logx"
	"rex/internal/observ"
	"rex/internal/project"
	"rex/internal/source"
	"rex/internal/token"
	"rex/internal/trace"
)

// Options configures Tokenize and TokenizeDir.
type Options struct {
	// Ext is the required extension without the dot. Empty accepts any
	// single file and selects project.DefaultCompileExt for directories.
	Ext            string
	MaxDiagnostics int
	Jobs           int           // 0 - по числу CPU
	Cache          *TokenCache   // nil disables caching
	Timer          *observ.Timer // nil disables timings
	Progress       ProgressSink  // only used by TokenizeDir
}

// TokenizeResult is the outcome of scanning one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Cached  bool
}

// Tokenize loads path, checks its extension and scans it to the end.
// I/O and extension problems are returned as errors; lexical problems end up
// in the result's Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.Begin(ctx, trace.ScopeCommand, "tokenize")
	defer span.End("")
	span.SetFile(path)

	fs := source.NewFileSet()
	done := beginPhase(opts.Timer, "load")
	var (
		id  source.FileID
		err error
	)
	if opts.Ext == "" {
		id, err = fs.Load(path)
	} else {
		id, err = fs.LoadExpect(path, opts.Ext)
	}
	done(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)

	done = beginPhase(opts.Timer, "tokenize")
	tokens, bag, cached := scanFile(ctx, file, opts)
	done("")

	span.SetCounts(len(tokens), bag.Len()).SetCached(cached)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Cached:  cached,
	}, nil
}

// scanFile produces the token stream of one loaded file, from the cache when
// possible. It is safe to call concurrently for different files.
func scanFile(ctx context.Context, file *source.File, opts Options) ([]token.Token, *diag.Bag, bool) {
	log := logx.FromContext(ctx)
	bag := diag.NewBag(opts.MaxDiagnostics)

	var key project.Digest
	if opts.Cache != nil {
		key = CacheKey(file, opts.MaxDiagnostics)
		start := time.Now()
		tokens, diags, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			log.WarnContext(ctx, "token cache read failed", "file", file.Path, "error", err)
		case ok:
			for _, d := range diags {
				bag.Add(d)
			}
			addTime(opts.Timer, "cache", time.Since(start))
			trace.Point(ctx, trace.ScopeFile, "cache-hit", file.Path)
			return tokens, bag, true
		}
	}

	start := time.Now()
	reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()
	tokens := lexer.New(file.Name(), string(file.Content),
		lexer.WithReporter(reporter),
		lexer.WithDiagnosticPath(file.Path),
	).Tokens()
	addTime(opts.Timer, "scan", time.Since(start))
	log.DebugContext(ctx, "scanned", "file", file.Path, "tokens", len(tokens), "diagnostics", bag.Len())

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, file, tokens, bag.Items()); err != nil {
			log.WarnContext(ctx, "token cache write failed", "file", file.Path, "error", err)
		}
	}
	return tokens, bag, false
}

func beginPhase(t *observ.Timer, name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	idx := t.Begin(name)
	return func(note string) { t.End(idx, note) }
}

func addTime(t *observ.Timer, name string, d time.Duration) {
	if t != nil {
		t.Add(name, d)
	}
}
