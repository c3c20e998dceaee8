// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfpages/internal/convert"
	"github.com/pdiddy/pdfpages/internal/ledger"
	"github.com/pdiddy/pdfpages/internal/render"
	"github.com/pdiddy/pdfpages/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every PDF in the input directory to PNG pages",
	Long: `Render scans the input directory (non-recursively) for *.pdf files and
writes one PNG per page into <output-dir>/<pdf-name>/page_NNN.png. The
output directory and per-document directories are created as needed and
reused on later runs; existing page images are overwritten.

Failures are per document: they are logged with the file name and cause and
the next PDF is processed. The command exits successfully even when some
documents fail; use "pdfpages status" to review outcomes.`,
	RunE: runRender,
}

func init() {
	addRenderFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

// addRenderFlags registers the render flags on cmd. Both the root command and
// the render subcommand accept them.
func addRenderFlags(cmd *cobra.Command) {
	def := types.DefaultRenderConfig()
	cmd.Flags().String("input-dir", def.InputDir, "directory scanned for PDF files")
	cmd.Flags().String("output-dir", def.OutputDir, "image root; one subdirectory per PDF")
	cmd.Flags().Float64("scale", def.Scale, "resolution multiplier in both axes (1 = 72 DPI)")
	cmd.Flags().String("backend", string(def.Backend), "rendering backend: fitz or poppler")
}

// bindRenderFlags points the render config keys at the flags of the command
// being executed.
func bindRenderFlags(cmd *cobra.Command) {
	for key, flag := range map[string]string{
		"render.input_dir":  "input-dir",
		"render.output_dir": "output-dir",
		"render.scale":      "scale",
		"render.backend":    "backend",
	} {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

// renderConfig builds a RenderConfig from flags, config file, and environment.
func renderConfig() types.RenderConfig {
	return types.RenderConfig{
		InputDir:   viper.GetString("render.input_dir"),
		OutputDir:  viper.GetString("render.output_dir"),
		Scale:      viper.GetFloat64("render.scale"),
		Backend:    types.RenderBackend(viper.GetString("render.backend")),
		LedgerPath: viper.GetString("render.ledger"),
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	bindRenderFlags(cmd)
	cfg := renderConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(cmd.ErrOrStderr(), viper.GetString("log.level"), viper.GetString("log.format"))
	if err != nil {
		return err
	}

	r, err := render.New(cfg.Backend)
	if err != nil {
		return err
	}

	// The ledger is opened on the first recorded document, so a run that
	// finds no input leaves the working tree untouched.
	var rec convert.Recorder
	if cfg.LedgerPath != "" {
		l := ledger.NewLazy(cfg.LedgerPath)
		defer func() {
			if err := l.Close(); err != nil {
				log.Warn("Closing ledger failed", "path", cfg.LedgerPath, "error", err)
			}
		}()
		rec = l
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := convert.Run(ctx, cfg, r, rec, log)
	printSummary(cmd.OutOrStdout(), result)
	return nil
}

// printSummary writes a one-line batch summary. Nothing is printed when no
// document was attempted; the log already says why.
func printSummary(w io.Writer, r types.BatchResult) {
	if r.Total() == 0 {
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	failed := fmt.Sprint(r.Failed)
	if r.HasFailures() {
		failed = red(failed)
	}
	fmt.Fprintf(w, "\nBatch summary: %s rendered, %s failed, %d pages (total: %d)\n",
		green(r.Rendered), failed, r.Pages, r.Total())
}
