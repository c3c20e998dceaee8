// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfpages/internal/ledger"
	"github.com/pdiddy/pdfpages/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest render outcome for each PDF",
	Long: `Status reads the run ledger and lists the most recent outcome recorded
for every PDF: page count, output directory, and the failure reason for
documents that did not render. Use --run to list a single run instead.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().String("run", "", "show the results of one run ID")
	statusCmd.Flags().Bool("yaml", false, "print results as YAML")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	path := viper.GetString("render.ledger")
	if path == "" {
		return errors.New("ledger disabled: set --ledger or render.ledger")
	}

	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	runID, _ := cmd.Flags().GetString("run")
	var results []types.DocumentResult
	if runID != "" {
		results, err = l.Run(context.Background(), runID)
	} else {
		results, err = l.Latest(context.Background())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(results)
	}
	return printStatus(out, results)
}

// printStatus writes results as an aligned table with the status last so
// color codes do not disturb column widths.
func printStatus(w io.Writer, results []types.DocumentResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No documents recorded.")
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PDF\tPAGES\tOUTPUT\tRENDERED AT\tSTATUS")
	for _, r := range results {
		status := green(string(r.Status))
		if r.Status == types.RenderFailed {
			status = red(string(r.Status)) + ": " + r.Error
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			r.PDFPath, r.Pages, r.OutputDir, r.RenderedAt.Local().Format("2006-01-02 15:04:05"), status)
	}
	return tw.Flush()
}
