package config_test

import (
	"testing"

	"github.com/signalnine/graphbench/internal/config"
)

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load("../../testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trials != 3 {
		t.Errorf("expected 3 trials, got %d", cfg.Trials)
	}
	if cfg.Guards.AllPairsMaxNodes != 100000 {
		t.Errorf("expected default all-pairs guard, got %d", cfg.Guards.AllPairsMaxNodes)
	}
	if cfg.Guards.DistanceMatrixBudgetBytes != 1.26e11 {
		t.Errorf("expected default memory budget, got %g", cfg.Guards.DistanceMatrixBudgetBytes)
	}
	if cfg.Results.Dir != "." {
		t.Errorf("expected results dir '.', got %q", cfg.Results.Dir)
	}
	if len(cfg.Backends) != 0 {
		t.Errorf("expected no backend filter, got %v", cfg.Backends)
	}
	if got := cfg.Isomorphism.Groups["bvg"]; len(got) != 3 {
		t.Errorf("expected default bvg types, got %v", got)
	}
	if cfg.Report.ChartsDir != "" {
		t.Errorf("expected charts dir to follow the report input, got %q", cfg.Report.ChartsDir)
	}
}

func TestLoadFull(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Backends) != 2 || cfg.Backends[0] != "native" {
		t.Errorf("unexpected backends %v", cfg.Backends)
	}
	if cfg.Guards.DistanceMatrixBudgetBytes != 1e9 {
		t.Errorf("expected budget 1e9, got %g", cfg.Guards.DistanceMatrixBudgetBytes)
	}
	if cfg.Report.Theme != "plain" || !cfg.Report.TexExport || cfg.Report.ChartsDir != "charts" {
		t.Errorf("unexpected report options %+v", cfg.Report)
	}
	if cfg.Metrics.Textfile == "" {
		t.Error("expected metrics textfile to be set")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected json logs, got %q", cfg.Log.Format)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load("nonexistent.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := config.LoadOrDefault("nonexistent.yaml", false)
	if err != nil {
		t.Fatalf("expected defaults, got %v", err)
	}
	if cfg.Trials != config.DefaultTrials {
		t.Errorf("expected %d trials, got %d", config.DefaultTrials, cfg.Trials)
	}
	if _, err := config.LoadOrDefault("nonexistent.yaml", true); err == nil {
		t.Error("expected error for explicitly named missing file")
	}
	if _, err := config.LoadOrDefault("../../testdata/invalid.yaml", false); err == nil {
		t.Error("expected parse error to surface")
	}
}

func TestLoadInvalid(t *testing.T) {
	for _, path := range []string{"../../testdata/invalid.yaml", "../../testdata/bad_theme.yaml"} {
		if _, err := config.Load(path); err == nil {
			t.Errorf("expected error for %s", path)
		}
	}
}
