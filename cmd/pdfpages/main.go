// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfpages CLI, which renders every
// PDF in a directory to per-page PNG images.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfpages/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd renders the default input directory when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "pdfpages",
	Short: "Render PDF pages to PNG images",
	Long: `pdfpages converts each PDF found directly inside an input directory
(default references/) into one PNG per page, written to
references/images/<pdf-name>/page_001.png, page_002.png, ...

Pages are rendered at twice their native resolution by default. A document
that fails to open or render is logged and skipped; the rest of the batch
still runs. Running pdfpages with no subcommand is the same as "pdfpages render".`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		bindGlobalFlags()
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	},
	RunE: runRender,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdfpages.yaml or ~/.config/pdfpages/config.yaml)")
	pf.String("ledger", types.DefaultLedgerPath, "SQLite run ledger path (empty disables recording)")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Bool("no-color", false, "disable colored summary output")

	addRenderFlags(rootCmd)
}

// bindGlobalFlags points the shared config keys at the root persistent flags.
// It runs before every command so the bindings hold for the active viper
// instance.
func bindGlobalFlags() {
	pf := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("render.ledger", pf.Lookup("ledger"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfpages")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfpages"))
		}
	}

	viper.SetEnvPrefix("PDFPAGES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
