package cmd

import (
	"fmt"

	"github.com/msquant/msquant-cli/internal/ingest"
	"github.com/msquant/msquant-cli/internal/quant"
	"github.com/spf13/cobra"
)

// inputFlags is the shared input-selection surface of calculate, recovery
// and validate: either one --batch manifest, or the individual table files.
type inputFlags struct {
	batch          string
	quant          string
	correspondence string
	properties     string
	qc             string
	spikes         string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.batch, "batch", "b", "", "yaml batch manifest naming the input files")
	cmd.Flags().StringVar(&f.quant, "quant", "", "quant table (peak areas + raw concentrations)")
	cmd.Flags().StringVar(&f.correspondence, "correspondence", "", "native to IS/RS correspondence table")
	cmd.Flags().StringVar(&f.properties, "properties", "", "sample properties table (name, type, volume)")
	cmd.Flags().StringVar(&f.qc, "qc", "", "optional qc reference table (theoretical concentrations)")
	cmd.Flags().StringVar(&f.spikes, "spikes", "", "optional spike amounts table (enables recovery)")
}

// load materializes the selected inputs and returns them together with a
// path map for the run record.
func (f *inputFlags) load() (*quant.Inputs, map[string]string, error) {
	delim, err := configuredDelimiter()
	if err != nil {
		return nil, nil, err
	}
	if f.batch != "" {
		in, err := ingest.LoadBatch(f.batch, delim)
		if err != nil {
			return nil, nil, err
		}
		return in, map[string]string{"batch": f.batch}, nil
	}
	if f.quant == "" || f.correspondence == "" || f.properties == "" {
		return nil, nil, fmt.Errorf("either --batch or all of --quant, --correspondence and --properties are required")
	}
	batch := ingest.Batch{
		Quant:          f.quant,
		Correspondence: f.correspondence,
		Properties:     f.properties,
		QCReference:    f.qc,
		SpikeAmounts:   f.spikes,
	}
	in, err := ingest.LoadInputs(batch, "", delim)
	if err != nil {
		return nil, nil, err
	}
	sources := map[string]string{
		"quant":             f.quant,
		"is_correspondence": f.correspondence,
		"sample_properties": f.properties,
	}
	if f.qc != "" {
		sources["qc_reference"] = f.qc
	}
	if f.spikes != "" {
		sources["is_concentration"] = f.spikes
	}
	return in, sources, nil
}

// configuredDelimiter resolves the --delimiter flag, falling back to config.
func configuredDelimiter() (rune, error) {
	d := flagDelimiter
	if d == "" && cfg != nil {
		d = cfg.Delimiter
	}
	switch d {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", d)
	}
}

// pipelineOptions layers config values and per-command flag overrides over
// the default reporting policy.
func pipelineOptions(cmd *cobra.Command, flagFloor float64, flagIncludeQC bool) quant.Options {
	opts := quant.DefaultOptions()
	if cfg != nil {
		opts.Floor = cfg.FloorSentinel
		opts.IncludeQC = cfg.IncludeQC
	}
	if cmd.Flags().Changed("floor") {
		opts.Floor = flagFloor
	}
	if cmd.Flags().Changed("include-qc") {
		opts.IncludeQC = flagIncludeQC
	}
	return opts
}
