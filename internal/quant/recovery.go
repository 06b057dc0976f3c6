package quant

import "fmt"

// RecoveryCalculator quantifies how faithfully each analyte's internal and
// reconstitution standards were recovered through extraction. It needs the
// spike amounts table; without it both methods return MissingInputError.
type RecoveryCalculator struct {
	inputs  *Inputs
	catalog *Catalog
}

// NewRecoveryCalculator returns a calculator over the given inputs.
func NewRecoveryCalculator(in *Inputs) *RecoveryCalculator {
	return &RecoveryCalculator{inputs: in, catalog: NewCatalog(in)}
}

// ResponseFactors computes the per-analyte, per-standard-mix-sample response
// factor:
//
//	RF = (IS area * RS amount) / (RS area * IS amount)
//
// Rows are native analytes, columns the isrs-category samples. No averaging
// happens here; Recoveries consumes the mean.
func (r *RecoveryCalculator) ResponseFactors() (*Table, error) {
	if r.inputs.SpikeAmounts == nil {
		return nil, &MissingInputError{Input: "spike amounts (is_concentration table) are required to compute response factors"}
	}
	isrs := r.catalog.NamesByType(TypeISRS)
	out := NewTable()
	for _, corr := range r.inputs.Correspondence {
		isAmt, rsAmt, err := r.spikeAmounts(corr)
		if err != nil {
			return nil, err
		}
		for _, s := range isrs {
			isArea, rsArea, err := r.standardAreas(corr, s)
			if err != nil {
				return nil, err
			}
			out.Set(corr.Native, s, (isArea*rsAmt)/(rsArea*isAmt))
		}
	}
	return out, nil
}

// Recoveries computes the recovery percentage for every blank, qc and study
// sample: the spiked internal-standard mass back-calculated through the mean
// response factor, as a percentage of the nominal spike. Well-behaved
// extractions sit near 100.
func (r *RecoveryCalculator) Recoveries() (*Table, error) {
	rf, err := r.ResponseFactors()
	if err != nil {
		return nil, err
	}
	meanRF := rf.MeanAcrossSamples()

	samples := r.catalog.NamesByType(TypeSample, TypeBlank, TypeQC)
	out := NewTable()
	for _, corr := range r.inputs.Correspondence {
		isAmt, rsAmt, err := r.spikeAmounts(corr)
		if err != nil {
			return nil, err
		}
		mean, _ := meanRF.Value(corr.Native)
		for _, s := range samples {
			isArea, rsArea, err := r.standardAreas(corr, s)
			if err != nil {
				return nil, err
			}
			isMass := (isArea * rsAmt) / rsArea / mean
			out.Set(corr.Native, s, 100*isMass/isAmt)
		}
	}
	return out, nil
}

func (r *RecoveryCalculator) spikeAmounts(corr Correspondence) (isAmt, rsAmt float64, err error) {
	isAmt, ok := r.inputs.SpikeAmounts.Value(corr.InternalStandard)
	if !ok {
		return 0, 0, &MissingInputError{Input: fmt.Sprintf("spike amount for internal standard %q", corr.InternalStandard)}
	}
	rsAmt, ok = r.inputs.SpikeAmounts.Value(corr.ExternalStandard)
	if !ok {
		return 0, 0, &MissingInputError{Input: fmt.Sprintf("spike amount for external standard %q", corr.ExternalStandard)}
	}
	return isAmt, rsAmt, nil
}

func (r *RecoveryCalculator) standardAreas(corr Correspondence, sample string) (isArea, rsArea float64, err error) {
	isArea, ok := r.inputs.Areas.Value(corr.InternalStandard, sample)
	if !ok {
		return 0, 0, &MissingInputError{Input: fmt.Sprintf("peak area for standard %q in sample %q", corr.InternalStandard, sample)}
	}
	rsArea, ok = r.inputs.Areas.Value(corr.ExternalStandard, sample)
	if !ok {
		return 0, 0, &MissingInputError{Input: fmt.Sprintf("peak area for standard %q in sample %q", corr.ExternalStandard, sample)}
	}
	return isArea, rsArea, nil
}
