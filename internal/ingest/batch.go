package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/msquant/msquant-cli/internal/quant"
	"gopkg.in/yaml.v3"
)

// Batch names the input files of one analytical batch. The two optional
// entries gate the optional pipeline stages: no is_concentration file means
// no recovery, no qc_reference file means unity correction factors.
type Batch struct {
	Quant          string `yaml:"quant"`
	Correspondence string `yaml:"is_correspondence"`
	Properties     string `yaml:"sample_properties"`
	QCReference    string `yaml:"qc_reference,omitempty"`
	SpikeAmounts   string `yaml:"is_concentration,omitempty"`
}

// LoadBatch reads a yaml batch manifest and materializes the inputs it
// names. Relative paths resolve against the manifest's directory so a batch
// folder can be moved or shared as a unit.
func LoadBatch(manifestPath string, delim rune) (*quant.Inputs, error) {
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read batch manifest: %w", err)
	}
	var batch Batch
	if err := yaml.Unmarshal(b, &batch); err != nil {
		return nil, fmt.Errorf("parse batch manifest: %w", err)
	}
	return LoadInputs(batch, filepath.Dir(manifestPath), delim)
}

// LoadInputs reads and types every table the batch names. Required files
// must parse; the optional ones are loaded only when named.
func LoadInputs(batch Batch, baseDir string, delim rune) (*quant.Inputs, error) {
	for name, p := range map[string]string{
		"quant":             batch.Quant,
		"is_correspondence": batch.Correspondence,
		"sample_properties": batch.Properties,
	} {
		if p == "" {
			return nil, &quant.ValidationError{Msg: fmt.Sprintf("batch manifest does not name a %s file", name)}
		}
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || baseDir == "" {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	quantRec, err := ReadRecords(resolve(batch.Quant), delim)
	if err != nil {
		return nil, err
	}
	areas, concs, err := BuildQuant(quantRec)
	if err != nil {
		return nil, err
	}
	corrRec, err := ReadRecords(resolve(batch.Correspondence), delim)
	if err != nil {
		return nil, err
	}
	correspondence, err := BuildCorrespondence(corrRec)
	if err != nil {
		return nil, err
	}
	propRec, err := ReadRecords(resolve(batch.Properties), delim)
	if err != nil {
		return nil, err
	}
	properties, err := BuildProperties(propRec)
	if err != nil {
		return nil, err
	}

	in := &quant.Inputs{
		Areas:          areas,
		Concentrations: concs,
		Properties:     properties,
		Correspondence: correspondence,
	}

	if batch.SpikeAmounts != "" {
		rec, err := ReadRecords(resolve(batch.SpikeAmounts), delim)
		if err != nil {
			return nil, err
		}
		spikes, err := BuildSpikeAmounts(rec)
		if err != nil {
			return nil, err
		}
		in.SpikeAmounts = &spikes
	}
	if batch.QCReference != "" {
		rec, err := ReadRecords(resolve(batch.QCReference), delim)
		if err != nil {
			return nil, err
		}
		ref, err := BuildQCReference(rec)
		if err != nil {
			return nil, err
		}
		in.QCReference = &ref
	}
	return in, nil
}
