package quant

import "testing"

func TestMeasuredQC(t *testing.T) {
	in := fixtureInputs(t)
	measured, err := NewCorrectionFactorCalculator(in).MeasuredQC()
	if err != nil {
		t.Fatalf("MeasuredQC: %v", err)
	}
	// (50 - 0.1) / 0.5 / 1000
	for _, s := range []string{"qc_1", "qc_2", "qc_3"} {
		approx(t, tableValue(t, measured, "native_name", s), 0.0998, 1e-9, "measured qc "+s)
	}
}

func TestCorrectionFactors(t *testing.T) {
	in := fixtureInputs(t)
	factors, err := NewCorrectionFactorCalculator(in).Factors()
	if err != nil {
		t.Fatalf("Factors: %v", err)
	}
	f, ok := factors.Value("native_name")
	if !ok {
		t.Fatal("no factor for native_name")
	}
	approx(t, f, 0.1/0.0998, 1e-9, "correction factor")
}

func TestCorrectionFactorsDefaultToUnity(t *testing.T) {
	in := fixtureInputs(t)
	in.QCReference = nil
	factors, err := NewCorrectionFactorCalculator(in).Factors()
	if err != nil {
		t.Fatalf("Factors: %v", err)
	}
	f, ok := factors.Value("native_name")
	if !ok || f != 1 {
		t.Fatalf("factor without qc reference = %v, want exactly 1", f)
	}
	// Only natives get factors, never the standards themselves.
	if factors.Len() != 1 {
		t.Fatalf("factors has %d entries, want 1", factors.Len())
	}
}

func TestCorrectionFactorClampsNonPositive(t *testing.T) {
	in := fixtureInputs(t)
	// QC measurement at or below the blank mean drives the raw factor
	// negative; it must come back as 1, never as a sign-inverting multiplier.
	for _, s := range []string{"qc_1", "qc_2", "qc_3"} {
		in.Concentrations.Set("native_name", s, 0.05)
	}
	factors, err := NewCorrectionFactorCalculator(in).Factors()
	if err != nil {
		t.Fatalf("Factors: %v", err)
	}
	f, _ := factors.Value("native_name")
	if f != 1 {
		t.Fatalf("clamped factor = %v, want 1", f)
	}
}

func TestCorrectionFactorMissingReferenceEntry(t *testing.T) {
	in := fixtureInputs(t)
	other := NewSeries()
	other.Set("some_other_analyte", 0.2)
	in.QCReference = &other
	factors, err := NewCorrectionFactorCalculator(in).Factors()
	if err != nil {
		t.Fatalf("Factors: %v", err)
	}
	f, _ := factors.Value("native_name")
	if f != 1 {
		t.Fatalf("factor for native missing from reference = %v, want 1", f)
	}
}

func TestCorrectionFactorsAlwaysPositive(t *testing.T) {
	in := fixtureInputs(t)
	// Zero out the qc signal entirely; division yields a non-finite factor
	// which must clamp to 1.
	for _, s := range []string{"qc_1", "qc_2", "qc_3", "blank_1", "blank_2", "blank_3"} {
		in.Concentrations.Set("native_name", s, 0)
	}
	factors, err := NewCorrectionFactorCalculator(in).Factors()
	if err != nil {
		t.Fatalf("Factors: %v", err)
	}
	for _, k := range factors.Keys() {
		f, _ := factors.Value(k)
		if f <= 0 {
			t.Fatalf("factor[%s] = %v, want > 0", k, f)
		}
	}
}
