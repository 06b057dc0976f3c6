package quant

import (
	"fmt"
	"math"
	"testing"
)

// fixtureInputs builds the reference batch used across the calculator
// tests: three replicates each of qc, isrs, blank and sample categories,
// internal-standard areas stepping 20/40/60 per replicate, constant
// reconstitution-standard area 100, equal 1000 pg spikes, 0.5 mL volumes.
func fixtureInputs(t *testing.T) *Inputs {
	t.Helper()
	areas, concs := NewTable(), NewTable()
	categories := []struct {
		prefix string
		typ    SampleType
		conc   float64
	}{
		{"qc", TypeQC, 50},
		{"isrs", TypeISRS, 0},
		{"blank", TypeBlank, 0.1},
		{"sample", TypeSample, 45},
	}
	isAreas := []float64{20, 40, 60}
	var props []SampleProperty
	for _, cat := range categories {
		for i := 0; i < 3; i++ {
			name := fmt.Sprintf("%s_%d", cat.prefix, i+1)
			areas.Set("internal_standard_name", name, isAreas[i])
			areas.Set("reconstitution_standard_name", name, 100)
			areas.Set("native_name", name, 50)
			concs.Set("internal_standard_name", name, 0)
			concs.Set("reconstitution_standard_name", name, 0)
			concs.Set("native_name", name, cat.conc)
			props = append(props, SampleProperty{Name: name, Type: cat.typ, Volume: 0.5})
		}
	}
	spikes := NewSeries()
	spikes.Set("internal_standard_name", 1000)
	spikes.Set("reconstitution_standard_name", 1000)
	ref := NewSeries()
	ref.Set("native_name", 0.1)

	return &Inputs{
		Areas:          areas,
		Concentrations: concs,
		Properties:     props,
		Correspondence: []Correspondence{{
			Native:           "native_name",
			InternalStandard: "internal_standard_name",
			ExternalStandard: "reconstitution_standard_name",
		}},
		SpikeAmounts: &spikes,
		QCReference:  &ref,
	}
}

func approx(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Fatalf("%s: got %v, want %v (±%v)", what, got, want, tol)
	}
}

func tableValue(t *testing.T, tab *Table, analyte, sample string) float64 {
	t.Helper()
	v, ok := tab.Value(analyte, sample)
	if !ok {
		t.Fatalf("no value for %s/%s", analyte, sample)
	}
	return v
}
