// Package params defines the run configuration for a sampling run and loads
// it from YAML. Defaults mirror the standard demo: 20 standard-normal
// observations, a N(0,1) prior, and a 15000-step chain.
package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type DataConfig struct {
	// Observations, when set, is used verbatim and the generator fields are
	// ignored.
	Observations []float64 `yaml:"observations,omitempty"`
	N            int       `yaml:"n"`
	Mu           float64   `yaml:"mu"`
	Sigma        float64   `yaml:"sigma"`
}

type PriorConfig struct {
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`
}

type SamplerConfig struct {
	Samples       int     `yaml:"samples"`
	MuInit        float64 `yaml:"mu_init"`
	ProposalWidth float64 `yaml:"proposal_width"`
	Seed          uint64  `yaml:"seed"`
	// Burnin is how many leading trace entries the summary discards. The
	// chain itself always returns the full trace.
	Burnin int `yaml:"burnin"`
}

type RunConfig struct {
	Data    DataConfig    `yaml:"data"`
	Prior   PriorConfig   `yaml:"prior"`
	Sampler SamplerConfig `yaml:"sampler"`
}

func Default() RunConfig {
	return RunConfig{
		Data:  DataConfig{N: 20, Mu: 0, Sigma: 1},
		Prior: PriorConfig{Mu: 0, Sigma: 1},
		Sampler: SamplerConfig{
			Samples:       15000,
			MuInit:        0,
			ProposalWidth: 0.5,
			Seed:          42,
			Burnin:        500,
		},
	}
}

// Load reads a RunConfig from a YAML file. Fields absent from the file keep
// their Default values.
func Load(path string) (RunConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read run config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse run config %s: %w", path, err)
	}
	return cfg, nil
}
