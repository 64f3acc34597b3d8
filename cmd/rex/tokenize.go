package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rex/internal/diag"
	"rex/internal/driver"
	"rex/internal/source"
	"rex/internal/ui"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file|dir>",
		Short: "Tokenize a Rex source file or every source in a directory",
		Long: `Tokenize breaks Rex sources into tokens. A file must carry the compile or
run extension; a directory is scanned recursively for --ext files in parallel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokenize(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().StringP("output", "o", "", "write tokens to this file instead of stdout")
	cmd.Flags().String("ext", "", "extension scanned in directory mode (default: [scan].compile_ext)")
	cmd.Flags().Int("jobs", 0, "parallel workers in directory mode (default: [scan].jobs or CPU count)")
	cmd.Flags().Bool("cache", false, "reuse token streams cached on disk")
	cmd.Flags().String("cache-dir", "", "token cache location (default: $XDG_CACHE_HOME/rex)")
	cmd.Flags().String("ui", "auto", "progress view in directory mode (auto|on|off)")
	return cmd
}

type tokenizeFlags struct {
	format   tokenFormat
	output   string
	ext      string
	jobs     int
	cache    bool
	cacheDir string
	ui       uiMode
}

func readTokenizeFlags(cmd *cobra.Command) (tokenizeFlags, error) {
	var f tokenizeFlags
	flags := cmd.Flags()

	formatStr, err := flags.GetString("format")
	if err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.format, err = readTokenFormat(formatStr); err != nil {
		return f, err
	}
	if f.output, err = flags.GetString("output"); err != nil {
		return f, fmt.Errorf("failed to get output flag: %w", err)
	}
	if f.ext, err = flags.GetString("ext"); err != nil {
		return f, fmt.Errorf("failed to get ext flag: %w", err)
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.cache, err = flags.GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.cacheDir, err = flags.GetString("cache-dir"); err != nil {
		return f, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	return f, nil
}

func (a *app) runTokenize(cmd *cobra.Command, target string) (err error) {
	flags, err := readTokenizeFlags(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		out = f
	} else if flags.format == formatMsgpack && isTerminal(out) {
		return fmt.Errorf("refusing to write msgpack to a terminal; use --output")
	}

	opts := driver.Options{
		MaxDiagnostics: a.cfg.Scan.MaxDiagnostics,
		Jobs:           a.cfg.Scan.Jobs,
		Timer:          a.timer,
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs = flags.jobs
	}
	if flags.cache {
		if flags.cacheDir != "" {
			opts.Cache, err = driver.NewTokenCache(flags.cacheDir)
		} else {
			opts.Cache, err = driver.OpenTokenCache("rex")
		}
		if err != nil {
			return err
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if info.IsDir() {
		opts.Ext = flags.ext
		if opts.Ext == "" {
			opts.Ext = a.cfg.Scan.CompileExt
		}
		return a.tokenizeDir(cmd, out, target, flags, opts)
	}

	// файл: расширение компиляции или запуска
	opts.Ext = a.cfg.Scan.CompileExt
	if source.Ext(target) == a.cfg.Scan.RunExt {
		opts.Ext = a.cfg.Scan.RunExt
	}
	res, err := driver.Tokenize(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	diagErr := a.reportDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet)
	if err := a.writeTokens(out, flags.format, displayName(res.File, res.FileSet.BaseDir()), res.Tokens); err != nil {
		return err
	}
	if err := driver.WriteTimings(cmd.ErrOrStderr(), "tokenize", target, a.timer, flags.format == formatJSON); err != nil {
		return err
	}
	return diagErr
}

func (a *app) tokenizeDir(cmd *cobra.Command, out io.Writer, dir string, flags tokenizeFlags, opts driver.Options) error {
	var (
		fs      *source.FileSet
		results []driver.TokenizeDirResult
		err     error
	)
	if shouldUseTUI(flags.ui, cmd.ErrOrStderr(), a.quiet) {
		fs, results, err = ui.RunTokenizeDir(cmd.Context(), cmd.ErrOrStderr(), "tokenize "+dir, dir, opts)
	} else {
		fs, results, err = driver.TokenizeDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	all := diag.NewBag(opts.MaxDiagnostics)
	totalTokens, cached := 0, 0
	for _, r := range results {
		all.Merge(r.Bag)
		if r.Tokens == nil {
			continue
		}
		totalTokens += len(r.Tokens)
		if r.Cached {
			cached++
		}
		name := displayName(fs.Get(r.FileID), dir)
		if flags.format == formatPretty {
			if _, err := fmt.Fprintf(out, "==> %s <==\n", filepath.ToSlash(name)); err != nil {
				return err
			}
		}
		if err := a.writeTokens(out, flags.format, name, r.Tokens); err != nil {
			return err
		}
	}

	diagErr := a.reportDiagnostics(cmd.ErrOrStderr(), all, fs)
	if !a.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "scanned %d file(s), %d token(s), %d from cache\n", len(results), totalTokens, cached)
	}
	if err := driver.WriteTimings(cmd.ErrOrStderr(), "tokenize-dir", dir, a.timer, flags.format == formatJSON); err != nil {
		return err
	}
	return diagErr
}
