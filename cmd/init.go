package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/msquant/msquant-cli/internal/utils"
	"github.com/spf13/cobra"
)

// Template files for a fresh batch folder. Headers match the schema the
// ingest readers expect; rows are examples to replace.
var batchTemplates = map[string]string{
	"batch.yaml": `quant: quant.csv
is_correspondence: is_correspondence.csv
sample_properties: sample_properties.csv
# Optional: remove these lines to skip recovery / default correction to 1.
qc_reference: qc_reference.csv
is_concentration: is_concentration.csv
`,
	"quant.csv": `name,type,blank_1,qc_1,isrs_1,sample_1
native_analyte,area,50,50,50,50
native_analyte,concentration,0.1,50,0,45
internal_standard,area,40,40,40,40
internal_standard,concentration,0,0,0,0
reconstitution_standard,area,100,100,100,100
reconstitution_standard,concentration,0,0,0,0
`,
	"is_correspondence.csv": `native,internal_standard,external_standard
native_analyte,internal_standard,reconstitution_standard
`,
	"sample_properties.csv": `sample_name,sample_type,volume
blank_1,blank,0.5
qc_1,qc,0.5
isrs_1,isrs,0.5
sample_1,sample,0.5
`,
	"qc_reference.csv": `native,concentration
native_analyte,0.1
`,
	"is_concentration.csv": `name,amount
internal_standard,1000
reconstitution_standard,1000
`,
}

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Scaffold a batch folder with template input files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		// Refuse to clobber an existing batch.
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("inspect batch directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to scaffold", dir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat batch directory: %w", err)
		}
		if err := utils.EnsureDir(dir); err != nil {
			return err
		}
		for name, content := range batchTemplates {
			if err := utils.SafeWriteFile(filepath.Join(dir, name), []byte(content)); err != nil {
				return err
			}
		}
		fmt.Printf("✓ Batch scaffolded: %s\n", dir)
		fmt.Println("Edit the CSV files, then run: msquant calculate --batch", filepath.Join(dir, "batch.yaml"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
