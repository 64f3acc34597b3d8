package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"rex/internal/diag"
	"rex/internal/logx"
	"rex/internal/project"
	"rex/internal/source"
	"rex/internal/token"
	"rex/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Путь к файлу, как его нашёл обход директории
	FileID source.FileID // ID файла в FileSet; не определён, если файл не загрузился
	Tokens []token.Token // Токены файла
	Bag    *diag.Bag     // Диагностики
	Cached bool
}

// listFiles возвращает отсортированный список всех файлов с расширением ext
func listFiles(dir, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && source.Ext(path) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ListFiles exposes the file discovery of TokenizeDir, e.g. to label a
// progress view before the run starts.
func ListFiles(dir string, opts Options) ([]string, error) {
	return listFiles(dir, dirExt(opts))
}

func dirExt(opts Options) string {
	if opts.Ext == "" {
		return project.DefaultCompileExt
	}
	return opts.Ext
}

// TokenizeDir токенизирует все файлы с нужным расширением в директории параллельно.
// Ошибка возвращается только при отмене ctx или сбое обхода директории;
// проблемы отдельных файлов попадают в их Bag.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	ctx, span := trace.Begin(ctx, trace.ScopeDir, "tokenize-dir")
	defer span.End("")
	span.SetFile(dir)
	log := logx.FromContext(ctx)

	done := beginPhase(opts.Timer, "discover")
	files, err := listFiles(dir, dirExt(opts))
	done(strconv.Itoa(len(files)) + " files")
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен, поэтому загружаем всё заранее
	done = beginPhase(opts.Timer, "load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		notify(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	done("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log.DebugContext(ctx, "tokenize dir", "dir", dir, "files", len(files), "jobs", jobs)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	notify(opts.Progress, Event{Stage: StageScan, Status: StatusWorking})
	done = beginPhase(opts.Timer, "tokenize")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fctx, fspan := trace.Begin(gctx, trace.ScopeFile, "scan")
			defer fspan.End("")
			fspan.SetFile(path)
			started := time.Now()

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, path, source.Position{}, "failed to load file: "+loadErr.Error()))
				results[i] = TokenizeDirResult{Path: path, Bag: bag}
				fspan.SetCounts(0, bag.Len())
				notify(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			notify(opts.Progress, Event{File: path, Stage: StageScan, Status: StatusWorking})
			fileID := fileIDs[path]
			tokens, bag, cached := scanFile(fctx, fileSet.Get(fileID), opts)
			fspan.SetCounts(len(tokens), bag.Len()).SetCached(cached)

			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: tokens,
				Bag:    bag,
				Cached: cached,
			}

			ev := Event{File: path, Stage: StageScan, Status: StatusDone, Tokens: len(tokens), Elapsed: time.Since(started)}
			if cached {
				ev.Stage = StageCache
			}
			if bag.HasErrors() {
				ev.Status = StatusError
			}
			notify(opts.Progress, ev)
			return nil
		})
	}

	err = g.Wait()
	done("")
	status := StatusDone
	if err != nil {
		status = StatusError
	}
	notify(opts.Progress, Event{Stage: StageScan, Status: status, Err: err})
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
