package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rex/internal/driver"
)

func newCompileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [flags] file.rx",
		Short: "Scan a Rex source file",
		Long: `Compile reads a .rx file (see [scan].compile_ext in rex.toml), scans it
and dumps the token stream. Later compiler stages are not part of rex yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scanOne(cmd, "compile", args[0], a.cfg.Scan.CompileExt)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] file.rxi",
		Short: "Scan a Rex script",
		Long: `Run reads a .rxi file (see [scan].run_ext in rex.toml), scans it and dumps
the token stream. Interpretation is not part of rex yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scanOne(cmd, "run", args[0], a.cfg.Scan.RunExt)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	return cmd
}

// scanOne is the shared body of compile and run.
func (a *app) scanOne(cmd *cobra.Command, kind, path, ext string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readTokenFormat(formatStr)
	if err != nil {
		return err
	}

	res, err := driver.Tokenize(cmd.Context(), path, driver.Options{
		Ext:            ext,
		MaxDiagnostics: a.cfg.Scan.MaxDiagnostics,
		Timer:          a.timer,
	})
	if err != nil {
		return fmt.Errorf("%s failed: %w", kind, err)
	}

	diagErr := a.reportDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet)
	if err := a.writeTokens(cmd.OutOrStdout(), format, displayName(res.File, res.FileSet.BaseDir()), res.Tokens); err != nil {
		return err
	}
	if err := driver.WriteTimings(cmd.ErrOrStderr(), kind, path, a.timer, format == formatJSON); err != nil {
		return err
	}
	return diagErr
}
