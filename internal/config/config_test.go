package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected data dir %s, got %s", DefaultDataDir, cfg.DataDir)
	}
	if !cfg.Estimate.PoolNoise {
		t.Error("expected pooled noise by default")
	}
	if cfg.Synth.Subjects < 2 {
		t.Error("default cohort must have at least two subjects")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("estimate:\n  pool_noise: false\n  scalar_subjects: true\nsynth:\n  subjects: 50\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Estimate.PoolNoise {
		t.Error("pool_noise override not applied")
	}
	if !cfg.Estimate.ScalarSubjects {
		t.Error("scalar_subjects override not applied")
	}
	if cfg.Synth.Subjects != 50 {
		t.Errorf("expected 50 subjects, got %d", cfg.Synth.Subjects)
	}
	// untouched fields keep their defaults
	if cfg.Synth.NoiseSD != DefaultNoiseSD {
		t.Errorf("expected default noise sd, got %f", cfg.Synth.NoiseSD)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Synth.Seed = 99
	cfg.Estimate.X1 = "x1.csv"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Synth.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Synth.Seed)
	}
	if loaded.Estimate.X1 != "x1.csv" {
		t.Errorf("expected x1.csv, got %s", loaded.Estimate.X1)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("noisy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Synth.NoiseSD <= cfg.Synth.BetweenSD {
		t.Error("noisy preset should be noise-dominated")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Error("presets not sorted")
		}
	}
}

func TestOptionsMapping(t *testing.T) {
	e := EstimateConfig{PoolNoise: true, ScalarSubjects: true}
	opts := e.Options()
	if !opts.PoolNoise || !opts.ScalarSubjects {
		t.Error("options mapping dropped a flag")
	}
}
