package quant

import "fmt"

// Validator runs the cross-table checks of the Validate stage. A failure
// halts the pipeline before any calculation; no partial results are ever
// produced from inputs that fail here.
type Validator struct {
	inputs *Inputs
}

// NewValidator returns a validator over the given inputs.
func NewValidator(in *Inputs) *Validator {
	return &Validator{inputs: in}
}

// Validate checks that the inputs form a coherent batch: non-empty tables,
// matching area/concentration halves, full sample-property coverage in both
// directions, positive volumes, resolvable standards, and the categories
// each requested stage depends on.
func (v *Validator) Validate() error {
	if err := v.checkNonEmpty(); err != nil {
		return err
	}
	if err := v.checkParity(); err != nil {
		return err
	}
	if err := v.checkPropertyCoverage(); err != nil {
		return err
	}
	if err := v.checkStandards(); err != nil {
		return err
	}
	return v.checkCategories()
}

func (v *Validator) checkNonEmpty() error {
	in := v.inputs
	if in.Areas == nil || len(in.Areas.Analytes()) == 0 {
		return &ValidationError{Msg: "quant table has no area rows"}
	}
	if in.Concentrations == nil || len(in.Concentrations.Analytes()) == 0 {
		return &ValidationError{Msg: "quant table has no concentration rows"}
	}
	if len(in.Properties) == 0 {
		return &ValidationError{Msg: "sample properties table is empty"}
	}
	if len(in.Correspondence) == 0 {
		return &ValidationError{Msg: "standard correspondence table is empty"}
	}
	if in.SpikeAmounts != nil && in.SpikeAmounts.Len() == 0 {
		return &ValidationError{Msg: "spike amounts table is empty"}
	}
	if in.QCReference != nil && in.QCReference.Len() == 0 {
		return &ValidationError{Msg: "qc reference table is empty"}
	}
	return nil
}

// checkParity enforces the quant-table invariant: every analyte present in
// the area half is present in the concentration half and vice versa, over
// the same sample columns.
func (v *Validator) checkParity() error {
	in := v.inputs
	areaRows := toSet(in.Areas.Analytes())
	concRows := toSet(in.Concentrations.Analytes())
	for a := range areaRows {
		if !concRows[a] {
			return &ValidationError{Msg: fmt.Sprintf("analyte %q has area rows but no concentration rows", a)}
		}
	}
	for a := range concRows {
		if !areaRows[a] {
			return &ValidationError{Msg: fmt.Sprintf("analyte %q has concentration rows but no area rows", a)}
		}
	}
	areaCols := toSet(in.Areas.Samples())
	concCols := toSet(in.Concentrations.Samples())
	for s := range areaCols {
		if !concCols[s] {
			return &ValidationError{Msg: fmt.Sprintf("sample %q appears in area rows but not concentration rows", s)}
		}
	}
	for s := range concCols {
		if !areaCols[s] {
			return &ValidationError{Msg: fmt.Sprintf("sample %q appears in concentration rows but not area rows", s)}
		}
	}
	return nil
}

// checkPropertyCoverage requires a one-to-one match between measured sample
// columns and sample-property rows, in both directions, and positive volumes.
func (v *Validator) checkPropertyCoverage() error {
	in := v.inputs
	props := make(map[string]SampleProperty, len(in.Properties))
	for _, p := range in.Properties {
		if _, dup := props[p.Name]; dup {
			return &ConfigurationError{Sample: p.Name, Msg: "duplicate sample properties row"}
		}
		if p.Volume <= 0 {
			return &ConfigurationError{Sample: p.Name, Msg: "volume must be positive"}
		}
		props[p.Name] = p
	}
	measured := toSet(in.Areas.Samples())
	for s := range measured {
		if _, ok := props[s]; !ok {
			return &ConfigurationError{Sample: s, Msg: "measured sample has no sample properties row"}
		}
	}
	for name := range props {
		if !measured[name] {
			return &ConfigurationError{Sample: name, Msg: "sample properties row has no measured sample"}
		}
	}
	return nil
}

// checkStandards requires every standard named by the correspondence table
// to exist as a quant row, and — when spike amounts were supplied — to have
// a spiked amount.
func (v *Validator) checkStandards() error {
	in := v.inputs
	for _, c := range in.Correspondence {
		if !in.Areas.HasAnalyte(c.Native) {
			return &ValidationError{Msg: fmt.Sprintf("native analyte %q is not a quant table row", c.Native)}
		}
		for _, std := range []string{c.InternalStandard, c.ExternalStandard} {
			if !in.Areas.HasAnalyte(std) {
				return &ValidationError{Msg: fmt.Sprintf("standard %q referenced by %q is not a quant table row", std, c.Native)}
			}
			if in.SpikeAmounts != nil {
				if _, ok := in.SpikeAmounts.Value(std); !ok {
					return &ValidationError{Msg: fmt.Sprintf("standard %q has no spike amount", std)}
				}
			}
		}
	}
	return nil
}

// checkCategories requires blank and sample categories always, isrs when
// recovery will run, and qc when correction factors will be measured.
func (v *Validator) checkCategories() error {
	counts := make(map[SampleType]int)
	for _, p := range v.inputs.Properties {
		counts[p.Type]++
	}
	if counts[TypeBlank] == 0 {
		return &ValidationError{Msg: "no blank samples: blank subtraction needs at least one"}
	}
	if counts[TypeSample] == 0 {
		return &ValidationError{Msg: "no study samples to report"}
	}
	if v.inputs.SpikeAmounts != nil && counts[TypeISRS] == 0 {
		return &ValidationError{Msg: "spike amounts supplied but no isrs samples to derive response factors from"}
	}
	if v.inputs.QCReference != nil && counts[TypeQC] == 0 {
		return &ValidationError{Msg: "qc reference supplied but no qc samples"}
	}
	return nil
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
