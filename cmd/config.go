package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/msquant/msquant-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set msquant configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		fmt.Printf("delimiter: %s\n", cfg.Delimiter)
		fmt.Printf("floor_sentinel: %g\n", cfg.FloorSentinel)
		fmt.Printf("include_qc: %t\n", cfg.IncludeQC)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "output_dir":
			cfg.OutputDir = val
		case "delimiter":
			switch val {
			case "", ",", ";", "tab":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %s (use ',' | ';' | 'tab')", val)
			}
		case "floor_sentinel":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid floor_sentinel: %s", val)
			}
			cfg.FloorSentinel = f
		case "include_qc":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid include_qc: %s (use true|false)", val)
			}
			cfg.IncludeQC = b
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
