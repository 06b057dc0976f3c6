package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/msquant/msquant-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile       string
	flagDelimiter string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "msquant",
	Short: "msquant: quantitation metrics from LC/GC-MS peak tables",
	Long: `msquant computes recoveries, matrix correction factors and blank-corrected
analyte concentrations from the tabular peak-area/concentration exports of
LC/GC-MS instruments, replacing the spreadsheet arithmetic analysts would
otherwise do by hand.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.msquant/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed by extension if omitted)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}
