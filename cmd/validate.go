package cmd

import (
	"fmt"

	"github.com/msquant/msquant-cli/internal/quant"
	"github.com/spf13/cobra"
)

var validateInputs inputFlags

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a batch's input files without calculating",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _, err := validateInputs.load()
		if err != nil {
			return err
		}
		if err := quant.NewValidator(in).Validate(); err != nil {
			return err
		}
		fmt.Println("✓ Batch is valid")
		if in.SpikeAmounts == nil {
			fmt.Println("⚠ No spike amounts: recovery will be skipped")
		}
		if in.QCReference == nil {
			fmt.Println("⚠ No qc reference: correction factors default to 1")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateInputs.register(validateCmd)
}
