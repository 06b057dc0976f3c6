package cmd

import (
	"fmt"
	"os"

	"github.com/msquant/msquant-cli/internal/quant"
	"github.com/spf13/cobra"
)

var recoveryInputs inputFlags

var recoveryCmd = &cobra.Command{
	Use:   "recovery",
	Short: "Compute only response factors and standard recoveries",
	Long: `Runs validation and the recovery stage alone. Unlike calculate, which
skips recovery when no spike amounts are supplied, asking for recovery
directly without them is an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _, err := recoveryInputs.load()
		if err != nil {
			return err
		}
		if err := quant.NewValidator(in).Validate(); err != nil {
			return err
		}

		calc := quant.NewRecoveryCalculator(in)
		rf, err := calc.ResponseFactors()
		if err != nil {
			return err
		}
		rec, err := calc.Recoveries()
		if err != nil {
			return err
		}

		res := &quant.Result{Recovery: rec, ResponseFactors: rf}
		fmt.Println("[RESPONSE FACTORS]")
		if err := res.Render(quant.RenderResponseFactor, os.Stdout); err != nil {
			return err
		}
		fmt.Println("\n[RECOVERY %]")
		return res.Render(quant.RenderRecovery, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(recoveryCmd)
	recoveryInputs.register(recoveryCmd)
}
