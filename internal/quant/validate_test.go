package quant

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateFixture(t *testing.T) {
	if err := NewValidator(fixtureInputs(t)).Validate(); err != nil {
		t.Fatalf("reference batch should validate: %v", err)
	}
}

func TestValidateParity(t *testing.T) {
	in := fixtureInputs(t)
	in.Areas.Set("extra_analyte", "sample_1", 12)
	err := NewValidator(in).Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(ve.Msg, "extra_analyte") {
		t.Fatalf("error should name the odd analyte: %v", ve)
	}

	in = fixtureInputs(t)
	in.Concentrations.Set("native_name", "orphan_sample", 3)
	if err := NewValidator(in).Validate(); err == nil {
		t.Fatal("sample column present in only one half should fail")
	}
}

func TestValidatePropertyCoverage(t *testing.T) {
	in := fixtureInputs(t)
	in.Properties = in.Properties[1:]
	err := NewValidator(in).Validate()
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("want ConfigurationError, got %T: %v", err, err)
	}
	if cfg.Sample != "qc_1" {
		t.Fatalf("error names sample %q, want qc_1", cfg.Sample)
	}

	in = fixtureInputs(t)
	in.Properties = append(in.Properties, SampleProperty{Name: "ghost", Type: TypeSample, Volume: 0.5})
	if err := NewValidator(in).Validate(); err == nil {
		t.Fatal("properties row without measured columns should fail")
	}

	in = fixtureInputs(t)
	in.Properties = append(in.Properties, in.Properties[0])
	err = NewValidator(in).Validate()
	if !errors.As(err, &cfg) || cfg.Msg != "duplicate sample properties row" {
		t.Fatalf("duplicate row: got %v", err)
	}

	in = fixtureInputs(t)
	in.Properties[4].Volume = -1
	if err := NewValidator(in).Validate(); err == nil {
		t.Fatal("negative volume should fail")
	}
}

func TestValidateStandards(t *testing.T) {
	in := fixtureInputs(t)
	in.Correspondence[0].InternalStandard = "nonexistent_standard"
	if err := NewValidator(in).Validate(); err == nil {
		t.Fatal("correspondence pointing at a missing quant row should fail")
	}

	in = fixtureInputs(t)
	spikes := NewSeries()
	spikes.Set("internal_standard_name", 1000)
	in.SpikeAmounts = &spikes
	err := NewValidator(in).Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) || !strings.Contains(ve.Msg, "reconstitution_standard_name") {
		t.Fatalf("standard without a spike amount: got %v", err)
	}
}

func TestValidateCategories(t *testing.T) {
	drop := func(in *Inputs, typ SampleType) {
		var kept []SampleProperty
		var names []string
		for _, p := range in.Properties {
			if p.Type != typ {
				kept = append(kept, p)
				names = append(names, p.Name)
			}
		}
		in.Properties = kept
		in.Areas = in.Areas.SelectSamples(names)
		in.Concentrations = in.Concentrations.SelectSamples(names)
	}

	in := fixtureInputs(t)
	drop(in, TypeBlank)
	if err := NewValidator(in).Validate(); err == nil {
		t.Fatal("no blanks should fail")
	}

	in = fixtureInputs(t)
	drop(in, TypeSample)
	if err := NewValidator(in).Validate(); err == nil {
		t.Fatal("no study samples should fail")
	}

	in = fixtureInputs(t)
	drop(in, TypeISRS)
	if err := NewValidator(in).Validate(); err == nil {
		t.Fatal("spike amounts without isrs samples should fail")
	}
	in.SpikeAmounts = nil
	if err := NewValidator(in).Validate(); err != nil {
		t.Fatalf("dropping spike amounts should make the batch valid again: %v", err)
	}

	in = fixtureInputs(t)
	drop(in, TypeQC)
	if err := NewValidator(in).Validate(); err == nil {
		t.Fatal("qc reference without qc samples should fail")
	}
	in.QCReference = nil
	if err := NewValidator(in).Validate(); err != nil {
		t.Fatalf("dropping qc reference should make the batch valid again: %v", err)
	}
}
