package quant

import (
	"fmt"
	"math"
)

// CorrectionFactorCalculator derives a per-analyte multiplicative correction
// that reconciles the theoretical QC concentration with what was measured,
// compensating for systematic matrix bias. Without a QC reference every
// native analyte gets factor 1 (no correction).
type CorrectionFactorCalculator struct {
	inputs  *Inputs
	catalog *Catalog
}

// NewCorrectionFactorCalculator returns a calculator over the given inputs.
func NewCorrectionFactorCalculator(in *Inputs) *CorrectionFactorCalculator {
	return &CorrectionFactorCalculator{inputs: in, catalog: NewCatalog(in)}
}

// MeanBlanks returns the mean raw concentration of each native analyte
// across blank-category samples, the background subtracted everywhere else.
func (c *CorrectionFactorCalculator) MeanBlanks() Series {
	blanks := c.catalog.ConcentrationsByType(TypeBlank).MeanAcrossSamples()
	out := NewSeries()
	for _, native := range c.inputs.Natives() {
		v, _ := blanks.Value(native)
		out.Set(native, v)
	}
	return out
}

// MeasuredQC computes the blank-corrected, volume-normalized concentration
// of each native analyte in each qc sample, converted from pg/mL to ng/mL:
//
//	measured = (raw - meanBlank) / volume / 1000
func (c *CorrectionFactorCalculator) MeasuredQC() (*Table, error) {
	raw := c.catalog.ConcentrationsByType(TypeQC)
	volumes, err := c.catalog.VolumesByType(TypeQC)
	if err != nil {
		return nil, err
	}
	meanBlanks := c.MeanBlanks()

	out := NewTable()
	for _, native := range c.inputs.Natives() {
		mb, _ := meanBlanks.Value(native)
		for _, s := range raw.Samples() {
			v, ok := raw.Value(native, s)
			if !ok {
				return nil, &MissingInputError{Input: fmt.Sprintf("raw concentration for analyte %q in qc sample %q", native, s)}
			}
			vol, ok := volumes[s]
			if !ok {
				return nil, &MissingInputError{Input: fmt.Sprintf("extraction volume for qc sample %q", s)}
			}
			out.Set(native, s, (v-mb)/vol/1000)
		}
	}
	return out, nil
}

// Factors returns the per-analyte correction factor: the theoretical QC
// concentration divided by the mean measured one. Factors that come out
// non-positive or non-finite (QC measurement at or below blank, or no usable
// QC signal) are replaced with 1 so they never invert or zero a
// concentration. Natives absent from the reference also default to 1.
func (c *CorrectionFactorCalculator) Factors() (Series, error) {
	out := NewSeries()
	if c.inputs.QCReference == nil {
		for _, native := range c.inputs.Natives() {
			out.Set(native, 1)
		}
		return out, nil
	}

	measured, err := c.MeasuredQC()
	if err != nil {
		return Series{}, err
	}
	meanMeasured := measured.MeanAcrossSamples()
	for _, native := range c.inputs.Natives() {
		ref, ok := c.inputs.QCReference.Value(native)
		if !ok {
			out.Set(native, 1)
			continue
		}
		mean, _ := meanMeasured.Value(native)
		factor := ref / mean
		if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
			factor = 1
		}
		out.Set(native, factor)
	}
	return out, nil
}
