package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/splithalf/internal/shrink"
	"github.com/san-kum/splithalf/internal/synth"
)

const (
	DefaultDataDir    = ".splithalf"
	DefaultSubjects   = 20
	DefaultMeanSpread = 1.0
	DefaultBetweenSD  = 0.5
	DefaultSessionSD  = 0.3
	DefaultNoiseSD    = 0.4
	DefaultSeed       = 1
)

type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Estimate EstimateConfig `yaml:"estimate"`
	Synth    SynthConfig    `yaml:"synth"`
}

// EstimateConfig describes one estimation run: where the replicate CSV
// arrays live and how the estimator is configured.
type EstimateConfig struct {
	X1             string `yaml:"x1"`
	X2             string `yaml:"x2"`
	Odd            string `yaml:"odd"`
	Even           string `yaml:"even"`
	PoolNoise      bool   `yaml:"pool_noise"`
	ScalarSubjects bool   `yaml:"scalar_subjects"`
}

type SynthConfig struct {
	Shape      []int   `yaml:"shape"`
	Subjects   int     `yaml:"subjects"`
	MeanSpread float64 `yaml:"mean_spread"`
	BetweenSD  float64 `yaml:"between_sd"`
	SessionSD  float64 `yaml:"session_sd"`
	NoiseSD    float64 `yaml:"noise_sd"`
	Seed       uint64  `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Estimate: EstimateConfig{
			PoolNoise: true,
		},
		Synth: SynthConfig{
			Shape:      []int{8, 8},
			Subjects:   DefaultSubjects,
			MeanSpread: DefaultMeanSpread,
			BetweenSD:  DefaultBetweenSD,
			SessionSD:  DefaultSessionSD,
			NoiseSD:    DefaultNoiseSD,
			Seed:       DefaultSeed,
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

// Options maps the estimate section onto estimator options.
func (e EstimateConfig) Options() shrink.Options {
	return shrink.Options{
		PoolNoise:      e.PoolNoise,
		ScalarSubjects: e.ScalarSubjects,
	}
}

// Params maps the synth section onto generator parameters.
func (s SynthConfig) Params() synth.Params {
	return synth.Params{
		Shape:      s.Shape,
		Subjects:   s.Subjects,
		MeanSpread: s.MeanSpread,
		BetweenSD:  s.BetweenSD,
		SessionSD:  s.SessionSD,
		NoiseSD:    s.NoiseSD,
		Seed:       s.Seed,
	}
}
