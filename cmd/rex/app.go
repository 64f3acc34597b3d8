package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rex/internal/logx"
	"rex/internal/observ"
	"rex/internal/project"
	"rex/internal/trace"
)

// app holds what the persistent flags and rex.toml resolve to.
type app struct {
	cfg      project.Config
	manifest *project.Manifest

	colorOut bool
	colorErr bool
	quiet    bool
	timer    *observ.Timer // nil without --timings

	tracer  trace.Tracer
	logger  *slog.Logger
	cleanup []func(io.Writer)
}

func (a *app) setup(cmd *cobra.Command) error {
	root := cmd.Root()
	pf := root.PersistentFlags()

	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		a.colorOut, a.colorErr = true, true
	case "off":
		a.colorOut, a.colorErr = false, false
	case "auto":
		a.colorOut = isTerminal(cmd.OutOrStdout())
		a.colorErr = isTerminal(cmd.ErrOrStderr())
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !a.colorOut

	if a.quiet, err = pf.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		a.timer = observ.NewTimer()
	}

	cleanupTrace, err := a.setupTracing(cmd)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, cleanupTrace)

	if err := a.setupLogging(cmd); err != nil {
		return err
	}

	cleanupProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, cleanupProf)
	return nil
}

// loadConfig reads rex.toml above the working directory and lets explicit
// flags override it.
func (a *app) loadConfig(cmd *cobra.Command) error {
	a.cfg = project.DefaultConfig()
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return err
	}
	if ok {
		a.manifest = manifest
		a.cfg = manifest.Config
	}

	pf := cmd.Root().PersistentFlags()
	if pf.Changed("max-diagnostics") || !ok {
		if a.cfg.Scan.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	return nil
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	levelStr, err := pf.GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := logx.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	if a.quiet && level < slog.LevelError {
		level = slog.LevelError
	}
	a.logger = logx.New(logx.Config{
		Writer: cmd.ErrOrStderr(),
		Level:  level,
		Tracer: a.tracer,
	})
	if a.manifest != nil {
		a.logger.Debug("loaded manifest", "path", a.manifest.Path, "package", a.cfg.Package.Name)
	}
	ctx := logx.WithLogger(cmd.Context(), a.logger)
	cmd.SetContext(ctx)
	return nil
}

// dumpTrace writes the ring buffer, if any, after a failed command.
func (a *app) dumpTrace(w io.Writer) {
	ring, ok := trace.FindRing(a.tracer)
	if !ok {
		return
	}
	fmt.Fprintln(w, "trace: last events before failure:")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

// close runs the cleanups in reverse order.
func (a *app) close(w io.Writer) {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i](w)
	}
	a.cleanup = nil
}
