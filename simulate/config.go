package simulate

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gwbench/gwbench2g/metaio"
)

var (
	// ErrNoSimulations is returned when n_simulations is missing or not positive.
	ErrNoSimulations = errors.New("n_simulations must be positive")
	// ErrNoDetectors is returned when the detector list is empty.
	ErrNoDetectors = errors.New("at least one detector is required")
)

// Config holds the dataset-wide simulation parameters.
type Config struct {
	Duration            float64            `yaml:"duration"`
	SamplingFrequency   float64            `yaml:"sampling_frequency"`
	WaveformApproximant string             `yaml:"waveform_approximant"`
	Detectors           []string           `yaml:"detectors"`
	Seed                int64              `yaml:"seed"`
	Blind               bool               `yaml:"blind"`
	NSimulations        int                `yaml:"n_simulations"`
	FixedParameters     map[string]float64 `yaml:"fixed_parameters"`
}

// DefaultConfig returns a Config with the standard dataset defaults. Seed
// and NSimulations have no defaults and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		Duration:            4.0,
		SamplingFrequency:   2048.0,
		WaveformApproximant: "IMRPhenomD",
		Detectors:           []string{"H1", "L1", "V1"},
	}
}

// LoadConfig reads a YAML configuration file over the defaults and
// validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a simulation.
func (c Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.SamplingFrequency <= 0 {
		return fmt.Errorf("sampling_frequency must be positive, got %g", c.SamplingFrequency)
	}
	if c.NSimulations <= 0 {
		return ErrNoSimulations
	}
	if len(c.Detectors) == 0 {
		return ErrNoDetectors
	}
	for _, name := range c.Detectors {
		if _, ok := detectorTable[name]; !ok {
			return fmt.Errorf("unknown detector %q", name)
		}
	}
	return nil
}

// disclosure maps the blinding flag onto the record construction mode.
func (c Config) disclosure() metaio.Disclosure {
	if c.Blind {
		return metaio.Blinded
	}
	return metaio.Disclosed
}

// waveformKwargs reports the waveform-model configuration actually used, in
// the heterogeneous form the metadata record stores.
func (c Config) waveformKwargs() map[string]metaio.Value {
	return map[string]metaio.Value{
		"waveform_approximant": metaio.String(c.WaveformApproximant),
		"reference_frequency":  metaio.Float(referenceFrequency),
		"minimum_frequency":    metaio.Float(minimumFrequency),
		"pn_spin_order":        metaio.Int(-1),
	}
}
