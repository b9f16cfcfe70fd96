package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendlab/config"
)

func divergenceCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "divergence"}
	addRunFlags(cmd)
	addDivergenceFlags(cmd)
	return cmd
}

func TestEffectiveConfigUsesDivergenceSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := config.DefaultConfig()
	cfg.Divergence.Perturbation = 1e-8
	cfg.Divergence.Coordinate = 1
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cmd := divergenceCommand()
	configFile = path
	defer func() { configFile = "" }()

	got, err := effectiveConfig(cmd)
	if err != nil {
		t.Fatalf("effectiveConfig failed: %v", err)
	}

	if got.Divergence.Perturbation != 1e-8 {
		t.Errorf("perturbation from file ignored: got %g", got.Divergence.Perturbation)
	}
	if got.Divergence.Coordinate != 1 {
		t.Errorf("coordinate from file ignored: got %d", got.Divergence.Coordinate)
	}
}

func TestEffectiveConfigFlagsOverrideDivergenceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := config.DefaultConfig()
	cfg.Divergence.Perturbation = 1e-8
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	configFile = path
	defer func() { configFile = "" }()

	cmd := divergenceCommand()
	if err := cmd.Flags().Set("perturb", "1e-6"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("coord", "1"); err != nil {
		t.Fatal(err)
	}

	got, err := effectiveConfig(cmd)
	if err != nil {
		t.Fatalf("effectiveConfig failed: %v", err)
	}

	if got.Divergence.Perturbation != 1e-6 {
		t.Errorf("explicit flag should win over file: got %g", got.Divergence.Perturbation)
	}
	if got.Divergence.Coordinate != 1 {
		t.Errorf("explicit flag should win over file: got %d", got.Divergence.Coordinate)
	}
}

func TestEffectiveConfigRunFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := config.DefaultConfig()
	cfg.Step = 0.05
	cfg.Params.M2 = 2.0
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cmd := divergenceCommand()
	configFile = path
	defer func() { configFile = "" }()

	if err := cmd.Flags().Set("step", "0.02"); err != nil {
		t.Fatal(err)
	}

	got, err := effectiveConfig(cmd)
	if err != nil {
		t.Fatalf("effectiveConfig failed: %v", err)
	}

	if got.Step != 0.02 {
		t.Errorf("step flag should win over file: got %g", got.Step)
	}
	if got.Params.M2 != 2.0 {
		t.Errorf("unset flag should keep file value: got %g", got.Params.M2)
	}
}
