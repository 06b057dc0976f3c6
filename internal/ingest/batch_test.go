package ingest

import (
	"fmt"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/msquant/msquant-cli/internal/quant"
)

// writeBatchDir lays out a complete batch folder: manifest plus the five
// input CSVs of the reference fixture (three replicates per category, IS
// areas stepping 20/40/60, 1000 pg spikes, 0.5 mL volumes).
func writeBatchDir(t *testing.T, dir string) string {
	t.Helper()

	categories := []struct {
		prefix string
		conc   float64
	}{
		{"qc", 50},
		{"isrs", 0},
		{"blank", 0.1},
		{"sample", 45},
	}
	var samples []string
	for _, cat := range categories {
		for i := 1; i <= 3; i++ {
			samples = append(samples, fmt.Sprintf("%s_%d", cat.prefix, i))
		}
	}

	var b strings.Builder
	b.WriteString("name,type," + strings.Join(samples, ",") + "\n")
	row := func(name, typ string, value func(cat string, rep int) float64) {
		b.WriteString(name + "," + typ)
		for _, cat := range categories {
			for i := 1; i <= 3; i++ {
				b.WriteString(fmt.Sprintf(",%g", value(cat.prefix, i)))
			}
		}
		b.WriteString("\n")
	}
	isAreas := []float64{20, 40, 60}
	row("internal_standard_name", "area", func(cat string, rep int) float64 { return isAreas[rep-1] })
	row("reconstitution_standard_name", "area", func(string, int) float64 { return 100 })
	row("native_name", "area", func(string, int) float64 { return 50 })
	row("internal_standard_name", "concentration", func(string, int) float64 { return 0 })
	row("reconstitution_standard_name", "concentration", func(string, int) float64 { return 0 })
	row("native_name", "concentration", func(cat string, rep int) float64 {
		for _, c := range categories {
			if c.prefix == cat {
				return c.conc
			}
		}
		return 0
	})
	writeFile(t, dir, "quant.csv", b.String())

	writeFile(t, dir, "is_correspondence.csv",
		"native,internal_standard,external_standard\n"+
			"native_name,internal_standard_name,reconstitution_standard_name\n")

	var props strings.Builder
	props.WriteString("sample_name,sample_type,volume\n")
	for _, cat := range categories {
		for i := 1; i <= 3; i++ {
			props.WriteString(fmt.Sprintf("%s_%d,%s,0.5\n", cat.prefix, i, cat.prefix))
		}
	}
	writeFile(t, dir, "sample_properties.csv", props.String())

	writeFile(t, dir, "is_concentration.csv",
		"name,amount\ninternal_standard_name,1000\nreconstitution_standard_name,1000\n")
	writeFile(t, dir, "qc_reference.csv",
		"native,concentration\nnative_name,0.1\n")

	manifest := writeFile(t, dir, "batch.yaml",
		"quant: quant.csv\n"+
			"is_correspondence: is_correspondence.csv\n"+
			"sample_properties: sample_properties.csv\n"+
			"is_concentration: is_concentration.csv\n"+
			"qc_reference: qc_reference.csv\n")
	return manifest
}

func TestLoadBatchEndToEnd(t *testing.T) {
	manifest := writeBatchDir(t, t.TempDir())
	in, err := LoadBatch(manifest, 0)
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}

	res, err := quant.NewPipeline(quant.NewMassBased(in, quant.DefaultOptions())).Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	f, _ := res.CorrectionFactors.Value("native_name")
	if math.Abs(f-1.002004) > 1e-6 {
		t.Fatalf("correction factor = %v, want ~1.002004", f)
	}
	v, ok := res.Concentrations.Value("native_name", "sample_1")
	if !ok || math.Abs(v-89.98) > 0.005 {
		t.Fatalf("concentration = %v, %v, want ~89.98", v, ok)
	}
}

func TestLoadBatchOptionalFilesAbsent(t *testing.T) {
	dir := t.TempDir()
	writeBatchDir(t, dir)
	manifest := writeFile(t, dir, "minimal.yaml",
		"quant: quant.csv\n"+
			"is_correspondence: is_correspondence.csv\n"+
			"sample_properties: sample_properties.csv\n")
	in, err := LoadBatch(manifest, 0)
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if in.SpikeAmounts != nil || in.QCReference != nil {
		t.Fatal("unnamed optional tables should stay nil")
	}
	res, err := quant.NewPipeline(quant.NewMassBased(in, quant.DefaultOptions())).Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Recovery != nil {
		t.Fatal("recovery should be skipped without spike amounts")
	}
}

func TestLoadBatchMissingRequiredEntry(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "bad.yaml", "quant: quant.csv\n")
	if _, err := LoadBatch(manifest, 0); err == nil {
		t.Fatal("manifest without required entries should fail")
	}
}

func TestLoadBatchResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	manifest := writeBatchDir(t, dir)

	// Load via a path from a different working directory; the manifest's own
	// directory is the base.
	other := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(other); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	if _, err := LoadBatch(manifest, 0); err != nil {
		t.Fatalf("LoadBatch from elsewhere: %v", err)
	}
}
