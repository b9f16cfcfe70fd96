// Package config loads and saves run configurations in YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendlab/diag"
	"github.com/san-kum/pendlab/mech"
	"github.com/san-kum/pendlab/ode"
)

const (
	DefaultStep    = 0.01
	DefaultHorizon = 50.0
)

type Config struct {
	Step       float64          `yaml:"step"`
	Horizon    float64          `yaml:"horizon"`
	Epsilon    float64          `yaml:"epsilon"`
	Params     ParamsConfig     `yaml:"params"`
	Init       InitConfig       `yaml:"init"`
	Divergence DivergenceConfig `yaml:"divergence"`
}

type ParamsConfig struct {
	M1 float64 `yaml:"m1"`
	M2 float64 `yaml:"m2"`
	L1 float64 `yaml:"l1"`
	L2 float64 `yaml:"l2"`
	G  float64 `yaml:"g"`
}

type InitConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

type DivergenceConfig struct {
	Perturbation float64 `yaml:"perturbation"`
	Coordinate   int     `yaml:"coordinate"`
	Threshold    float64 `yaml:"threshold"`
	Floor        float64 `yaml:"floor"`
}

func DefaultConfig() *Config {
	return &Config{
		Step:    DefaultStep,
		Horizon: DefaultHorizon,
		Epsilon: ode.DefaultEpsilon,
		Params: ParamsConfig{
			M1: mech.DefaultMass1,
			M2: mech.DefaultMass2,
			L1: mech.DefaultLength1,
			L2: mech.DefaultLength2,
			G:  mech.DefaultGravity,
		},
		Init: InitConfig{Theta1: 1.5707963267948966, Theta2: 3.141592653589793},
		Divergence: DivergenceConfig{
			Perturbation: 1e-10,
			Threshold:    diag.DefaultClampThreshold,
			Floor:        diag.DefaultFloorLog,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MechParams converts to the physical parameter set.
func (c *Config) MechParams() mech.Params {
	return mech.Params{
		M1: c.Params.M1, M2: c.Params.M2,
		L1: c.Params.L1, L2: c.Params.L2,
		G: c.Params.G,
	}
}

// InitState builds the initial state from the configured angles and
// velocities.
func (c *Config) InitState() mech.State {
	return mech.NewState(
		[]float64{c.Init.Theta1, c.Init.Theta2},
		[]float64{c.Init.Omega1, c.Init.Omega2},
	)
}

// DivergenceOptions converts the clamping settings.
func (c *Config) DivergenceOptions() diag.DivergenceOptions {
	return diag.DivergenceOptions{
		Threshold: c.Divergence.Threshold,
		Floor:     c.Divergence.Floor,
	}
}
