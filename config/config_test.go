package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Step != 0.01 {
		t.Errorf("expected default step 0.01, got %f", cfg.Step)
	}
	if cfg.Params.M2 != 3.0 || cfg.Params.L2 != 0.9 {
		t.Errorf("unexpected default params: %+v", cfg.Params)
	}
	if err := cfg.MechParams().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
	if math.Abs(cfg.Init.Theta1-math.Pi/2) > 1e-15 || math.Abs(cfg.Init.Theta2-math.Pi) > 1e-15 {
		t.Errorf("unexpected default initial angles: %+v", cfg.Init)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Step = 0.02
	cfg.Horizon = 25
	cfg.Params.M1 = 2.5
	cfg.Divergence.Perturbation = 1e-8

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Step != 0.02 || loaded.Horizon != 25 {
		t.Errorf("run settings lost: %+v", loaded)
	}
	if loaded.Params.M1 != 2.5 {
		t.Errorf("params lost: %+v", loaded.Params)
	}
	if loaded.Divergence.Perturbation != 1e-8 {
		t.Errorf("divergence settings lost: %+v", loaded.Divergence)
	}
}

func TestLoadAppliesDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	if err := os.WriteFile(path, []byte("step: 0.05\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Step != 0.05 {
		t.Errorf("expected step 0.05, got %f", cfg.Step)
	}
	if cfg.Params.G != 9.8 {
		t.Errorf("expected default gravity, got %f", cfg.Params.G)
	}
}

func TestInitState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Init = InitConfig{Theta1: 0.1, Theta2: 0.2, Omega1: 0.3, Omega2: 0.4}

	s := cfg.InitState()
	if s.Q[0] != 0.1 || s.Q[1] != 0.2 || s.QDot[0] != 0.3 || s.QDot[1] != 0.4 {
		t.Errorf("unexpected initial state: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("initial state invalid: %v", err)
	}
}
