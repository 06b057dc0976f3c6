package quant

// SampleType categorizes a sample for the calculation stages. The set is
// open-ended: unknown categories are carried through and simply never
// selected by the calculators.
type SampleType string

const (
	TypeBlank  SampleType = "blank"
	TypeQC     SampleType = "qc"
	TypeISRS   SampleType = "isrs"
	TypeSample SampleType = "sample"
)

// SampleProperty describes one sample: its category and the extraction
// volume in milliliters.
type SampleProperty struct {
	Name   string
	Type   SampleType
	Volume float64
}

// Correspondence maps a native analyte to the internal standard that tracks
// it and the reconstitution (external) standard used for normalization.
type Correspondence struct {
	Native           string
	InternalStandard string
	ExternalStandard string
}

// Inputs is the immutable snapshot of all tables for one pipeline run.
// Areas and Concentrations are the two halves of the quant table and share
// analyte rows and sample columns. SpikeAmounts (pg per standard) and
// QCReference (ng/mL per native) are optional; their absence disables the
// recovery stage and degrades correction factors to unity, respectively.
type Inputs struct {
	Areas          *Table
	Concentrations *Table
	Properties     []SampleProperty
	Correspondence []Correspondence

	SpikeAmounts *Series
	QCReference  *Series
}

// Natives returns the native analyte names from the correspondence table,
// deduplicated in first-appearance order.
func (in *Inputs) Natives() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range in.Correspondence {
		if !seen[c.Native] {
			seen[c.Native] = true
			out = append(out, c.Native)
		}
	}
	return out
}

// StandardNames returns the set of internal and external standard names.
func (in *Inputs) StandardNames() map[string]bool {
	out := make(map[string]bool)
	for _, c := range in.Correspondence {
		out[c.InternalStandard] = true
		out[c.ExternalStandard] = true
	}
	return out
}
