package simulate

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 10
	cfg.NSimulations = 3
	return cfg
}

func collect(t *testing.T, cfg Config) []Event {
	t.Helper()
	var events []Event
	require.NoError(t, Run(Level0, cfg, func(ev Event) error {
		events = append(events, ev)
		return nil
	}))
	return events
}

func TestRunLevel0(t *testing.T) {
	cfg := testConfig()
	events := collect(t, cfg)
	require.Len(t, events, cfg.NSimulations)

	bins := int(cfg.Duration*cfg.SamplingFrequency)/2 + 1
	for i, ev := range events {
		assert.Equal(t, i, ev.Index)
		require.Len(t, ev.Data, len(cfg.Detectors))
		for _, name := range cfg.Detectors {
			d, ok := ev.Data[name]
			require.True(t, ok, "missing data for %s", name)
			assert.Len(t, d.Strain, bins)
			assert.Len(t, d.PSD, bins)
			assert.Len(t, d.FrequencyArray, bins)
			assert.Equal(t, 0.0, d.FrequencyArray[0])
			assert.Equal(t, cfg.SamplingFrequency/2, d.FrequencyArray[bins-1])
		}

		md := ev.Metadata
		require.NotNil(t, md.Seed)
		assert.Equal(t, cfg.Seed, *md.Seed)
		assert.Equal(t, cfg.Duration, md.Duration)
		assert.Equal(t, cfg.SamplingFrequency, md.SamplingFrequency)
		require.Len(t, md.Detectors, len(cfg.Detectors))
		for name, det := range md.Detectors {
			assert.Equal(t, 20.0, det.MinimumFrequency, name)
			assert.Equal(t, cfg.SamplingFrequency/2, det.MaximumFrequency, name)
			require.NotNil(t, det.OptimalSNR, name)
			assert.Greater(t, *det.OptimalSNR, 0.0, name)
		}
		require.NotNil(t, md.NetworkOptimalSNR)
		assert.Greater(t, *md.NetworkOptimalSNR, 0.0)
	}
}

func TestRunLevel0_Deterministic(t *testing.T) {
	cfg := testConfig()
	first := collect(t, cfg)
	second := collect(t, cfg)

	require.Len(t, second, len(first))
	for i := range first {
		if diff := cmp.Diff(first[i].Metadata, second[i].Metadata); diff != "" {
			t.Errorf("event %d metadata differs across runs (-first +second):\n%s", i, diff)
		}
	}
}

func TestRunLevel0_BlindedHasNoTruth(t *testing.T) {
	cfg := testConfig()
	cfg.Blind = true

	for _, ev := range collect(t, cfg) {
		md := ev.Metadata
		assert.Nil(t, md.InjectionParameters)
		assert.Nil(t, md.Seed)
		assert.Nil(t, md.NetworkOptimalSNR)
		assert.Nil(t, md.NetworkMatchedFilterSNR)
		for name, det := range md.Detectors {
			assert.Nil(t, det.OptimalSNR, name)
			assert.Nil(t, det.MatchedFilterSNR, name)
		}
	}
}

func TestRunLevel0_FixedParametersOverride(t *testing.T) {
	cfg := testConfig()
	cfg.FixedParameters = map[string]float64{"mass_1": 40, "mass_2": 35}

	for _, ev := range collect(t, cfg) {
		md := ev.Metadata
		assert.Equal(t, 40.0, md.InjectionParameters["mass_1"])
		assert.Equal(t, 35.0, md.InjectionParameters["mass_2"])
		assert.Equal(t, cfg.FixedParameters, md.FixedParameters)
	}
}

func TestRunLevel0_NetworkSNRIsRootSumSquares(t *testing.T) {
	cfg := testConfig()
	cfg.NSimulations = 1

	ev := collect(t, cfg)[0]
	var sum2 float64
	for _, det := range ev.Metadata.Detectors {
		sum2 += *det.OptimalSNR * *det.OptimalSNR
	}
	assert.InDelta(t, math.Sqrt(sum2), *ev.Metadata.NetworkOptimalSNR, 1e-9)
}

func TestRun_UnknownLevel(t *testing.T) {
	err := Run(Level(7), testConfig(), func(Event) error { return nil })
	var unknown *UnknownLevelError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 7, unknown.Level)

	_, err = ParseLevel(7)
	require.ErrorAs(t, err, &unknown)

	lvl, err := ParseLevel(0)
	require.NoError(t, err)
	assert.Equal(t, Level0, lvl)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing n_simulations", func(c *Config) { c.NSimulations = 0 }, "n_simulations"},
		{"no detectors", func(c *Config) { c.Detectors = nil }, "detector"},
		{"unknown detector", func(c *Config) { c.Detectors = []string{"K9"} }, `"K9"`},
		{"bad duration", func(c *Config) { c.Duration = -4 }, "duration"},
		{"bad sampling rate", func(c *Config) { c.SamplingFrequency = 0 }, "sampling_frequency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, testConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 42
n_simulations: 2
detectors: [H1, L1]
fixed_parameters:
  chi_1: 0.0
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 2, cfg.NSimulations)
	assert.Equal(t, []string{"H1", "L1"}, cfg.Detectors)
	assert.Equal(t, 4.0, cfg.Duration, "defaults apply under the file")
	assert.Equal(t, "IMRPhenomD", cfg.WaveformApproximant)
	assert.Equal(t, map[string]float64{"chi_1": 0.0}, cfg.FixedParameters)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 42\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrNoSimulations)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestPriorRanges(t *testing.T) {
	cfg := testConfig()
	cfg.NSimulations = 25

	for _, ev := range collect(t, cfg) {
		p := ev.Metadata.InjectionParameters
		assert.GreaterOrEqual(t, p["mass_1"], p["mass_2"], "mass labeling convention")
		assert.GreaterOrEqual(t, p["mass_1"], 5.0)
		assert.LessOrEqual(t, p["mass_1"], 100.0)
		assert.GreaterOrEqual(t, p["luminosity_distance"], 100.0)
		assert.LessOrEqual(t, p["luminosity_distance"], 5000.0)
		assert.GreaterOrEqual(t, p["dec"], -math.Pi/2)
		assert.LessOrEqual(t, p["dec"], math.Pi/2)
		assert.GreaterOrEqual(t, p["theta_jn"], 0.0)
		assert.LessOrEqual(t, p["theta_jn"], math.Pi)
	}
}
