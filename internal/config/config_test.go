package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Global{
		OutputDir:     "/data/results",
		Delimiter:     ";",
		FloorSentinel: 0,
		IncludeQC:     true,
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip: got %+v, want %+v", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	// A missing config file is not an error; defaults apply.
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.FloorSentinel != 1.0 || got.IncludeQC || got.Delimiter != "" || got.OutputDir != "" {
		t.Fatalf("defaults = %+v", got)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MSQUANT_FLOOR_SENTINEL", "0.5")
	t.Setenv("MSQUANT_INCLUDE_QC", "true")
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.FloorSentinel != 0.5 || !got.IncludeQC {
		t.Fatalf("env override = %+v", got)
	}
}
