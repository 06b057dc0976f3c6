package cmd

import (
	"fmt"

	"github.com/msquant/msquant-cli/internal/quant"
	"github.com/msquant/msquant-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	calcInputs    inputFlags
	calcOutputDir string
	calcFloor     float64
	calcIncludeQC bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Run the full quantitation pipeline on a batch",
	Long: `Runs validation, recovery (when spike amounts are supplied), correction
factors and final concentrations, in that order. Results print as markdown,
or export as CSV files plus a run record when --output is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, sources, err := calcInputs.load()
		if err != nil {
			return err
		}
		opts := pipelineOptions(cmd, calcFloor, calcIncludeQC)

		pipeline := quant.NewPipeline(quant.NewMassBased(in, opts))
		res, err := pipeline.Execute()
		if err != nil {
			return err
		}

		run := report.NewRun(opts, sources)
		run.RecoveryComputed = res.Recovery != nil
		if res.Recovery == nil {
			run.Warnings = append(run.Warnings, "recovery skipped: no spike amounts supplied")
		}

		if calcOutputDir == "" && cfg != nil {
			calcOutputDir = cfg.OutputDir
		}
		if calcOutputDir != "" {
			written, err := report.WriteCSV(res, calcOutputDir)
			if err != nil {
				return err
			}
			if err := run.Save(calcOutputDir); err != nil {
				return err
			}
			for _, p := range written {
				fmt.Printf("✓ Wrote %s\n", p)
			}
			fmt.Printf("✓ Run %s recorded in %s\n", run.ID, calcOutputDir)
			return nil
		}
		fmt.Println(report.Markdown(res, run))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calculateCmd)
	calcInputs.register(calculateCmd)
	calculateCmd.Flags().StringVarP(&calcOutputDir, "output", "o", "", "directory for CSV exports and the run record (markdown to stdout if omitted)")
	calculateCmd.Flags().Float64Var(&calcFloor, "floor", 1, "sentinel for non-positive concentrations (overrides config)")
	calculateCmd.Flags().BoolVar(&calcIncludeQC, "include-qc", false, "include qc samples in the concentration table (overrides config)")
}
