package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rex/internal/project"
	"rex/internal/version"
)

// errDiagnostics marks a run that printed error diagnostics; main only sets
// the exit code for it.
var errDiagnostics = errors.New("lexical errors")

// newRootCmd builds the command tree. The returned app owns the resources
// the persistent pre-run opens; the caller must close it.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:           "rex",
		Short:         "Rex language toolchain",
		Long:          `Rex scans .rx and .rxi sources and dumps their token streams`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", project.DefaultMaxDiagnostics, "maximum number of diagnostics to show")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode ring|both")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(newTokenizeCmd(a))
	root.AddCommand(newCompileCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newVersionCmd())
	return root, a
}

// main initializes the CLI and exits with status 1 if the command fails.
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errDiagnostics) {
		a.dumpTrace(stderr)
	}
	a.close(stderr)

	if err == nil {
		return 0
	}
	label := "error:"
	if a.colorErr {
		label = color.New(color.FgRed, color.Bold).Sprint(label)
	}
	fmt.Fprintln(stderr, label, err)
	return 1
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
