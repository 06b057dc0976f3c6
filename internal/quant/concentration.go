package quant

import (
	"fmt"
	"math"
)

// ConcentrationCalculator produces the analyst-facing final concentration
// table: blank subtraction, correction-factor multiplication and volume
// normalization, with non-positive results clamped to a floor sentinel.
type ConcentrationCalculator struct {
	inputs  *Inputs
	catalog *Catalog
	factors Series
	opts    Options
}

// NewConcentrationCalculator returns a calculator that applies the given
// correction factors under the given policy options.
func NewConcentrationCalculator(in *Inputs, factors Series, opts Options) *ConcentrationCalculator {
	return &ConcentrationCalculator{inputs: in, catalog: NewCatalog(in), factors: factors, opts: opts}
}

// Concentrations computes, for every reportable sample:
//
//	conc = (raw - meanBlank) * factor / volume
//
// Reportable means category "sample", plus "qc" when IncludeQC is set.
// Results at or below zero (below-detection) become the floor sentinel.
// A factor or volume missing for a cell is a MissingInputError rather than
// a silent NaN.
func (c *ConcentrationCalculator) Concentrations() (*Table, error) {
	types := []SampleType{TypeSample}
	if c.opts.IncludeQC {
		types = append(types, TypeQC)
	}
	raw := c.catalog.ConcentrationsByType(types...)
	meanBlanks := NewCorrectionFactorCalculator(c.inputs).MeanBlanks()

	out := NewTable()
	for _, native := range c.inputs.Natives() {
		factor, ok := c.factors.Value(native)
		if !ok {
			return nil, &MissingInputError{Input: fmt.Sprintf("correction factor for analyte %q", native)}
		}
		mb, _ := meanBlanks.Value(native)
		for _, s := range raw.Samples() {
			v, ok := raw.Value(native, s)
			if !ok {
				return nil, &MissingInputError{Input: fmt.Sprintf("raw concentration for analyte %q in sample %q", native, s)}
			}
			vol, ok := c.catalog.Volume(s)
			if !ok {
				return nil, &MissingInputError{Input: fmt.Sprintf("extraction volume for sample %q", s)}
			}
			conc := (v - mb) * factor / vol
			if conc <= 0 || math.IsNaN(conc) {
				conc = c.opts.Floor
			}
			out.Set(native, s, conc)
		}
	}
	return out, nil
}
