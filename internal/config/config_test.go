package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	p := Defaults()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	body := `
run:
  bench_min: 40
  bench_max: 44
  cutoff: 2.5
  milling_option: 2
prices:
  zn: 1.35
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Run.BenchMin != 40 || p.Run.BenchMax != 44 {
		t.Fatalf("bench range: %d-%d", p.Run.BenchMin, p.Run.BenchMax)
	}
	if p.Run.Cutoff != 2.5 || p.Run.MillingOption != 2 {
		t.Fatalf("run overlay: %+v", p.Run)
	}
	if p.Prices.Zn != 1.35 {
		t.Fatalf("price overlay: %v", p.Prices.Zn)
	}
	// Untouched values keep their defaults.
	if p.Prices.Pb != 0.90 {
		t.Fatalf("default lost: %v", p.Prices.Pb)
	}
	if p.Costs.Tails != 7.94 {
		t.Fatalf("default cost lost: %v", p.Costs.Tails)
	}
}

func TestLoad_RejectsBadOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	body := `
run:
  milling_option: 9
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "params") {
		t.Fatalf("milling option 9 should fail validation, got %v", err)
	}
}

func TestLoad_RejectsZeroPrice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	body := `
prices:
  zn: 0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("zero zinc price should fail validation")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file should error")
	}
}
