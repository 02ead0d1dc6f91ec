package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/gwbench/gwbench2g/metaio"
	"github.com/gwbench/gwbench2g/strain"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard-normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// draft builds a fully disclosed draft whose values are a deterministic
// function of seed, so two fixtures with the same seed compare equal.
func draft(seed int64) metaio.Draft {
	f := float64(seed)
	return metaio.Draft{
		InjectionParameters: map[string]float64{
			"mass_1":              36.0 + f,
			"mass_2":              29.0 + f,
			"chi_1":               0.1,
			"chi_2":               -0.2,
			"luminosity_distance": 410.0 + 10*f,
			"geocent_time":        1.1262594e9 + f,
		},
		FixedParameters: map[string]float64{"theta_jn": 0.4},
		WaveformKwargs: map[string]metaio.Value{
			"waveform_approximant": metaio.String("IMRPhenomD"),
			"reference_frequency":  metaio.Float(50),
			"pn_spin_order":        metaio.Int(-1),
		},
		Seed: seed,
		Detectors: map[string]metaio.DetectorDraft{
			"H1": {MinimumFrequency: 20, MaximumFrequency: 1024, OptimalSNR: 12.5 + f, MatchedFilterSNR: 12.1 + f},
			"L1": {MinimumFrequency: 20, MaximumFrequency: 1024, OptimalSNR: 10.2 + f, MatchedFilterSNR: 9.8 + f},
		},
		Duration:                4.0,
		SamplingFrequency:       2048.0,
		NetworkOptimalSNR:       16.1 + f,
		NetworkMatchedFilterSNR: 15.6 + f,
	}
}

// DisclosedRecord returns a deterministic fully disclosed metadata record.
func DisclosedRecord(seed int64) metaio.InjectionMetaData {
	return metaio.NewInjectionMetaData(metaio.Disclosed, draft(seed))
}

// BlindedRecord returns a deterministic blinded metadata record.
func BlindedRecord(seed int64) metaio.InjectionMetaData {
	return metaio.NewInjectionMetaData(metaio.Blinded, draft(seed))
}

// Records returns n deterministic records built in the given disclosure
// mode, seeded 0..n-1.
func Records(n int, mode metaio.Disclosure) []metaio.InjectionMetaData {
	out := make([]metaio.InjectionMetaData, n)
	for i := range out {
		out[i] = metaio.NewInjectionMetaData(mode, draft(int64(i)))
	}
	return out
}

// StrainEvent builds a random strain event with the given detectors and
// number of frequency bins. The frequency array is shared across detectors.
func StrainEvent(rng *RNG, detectors []string, bins int) *strain.Event {
	if bins < 1 {
		panic(fmt.Sprintf("testutil: invalid bin count %d", bins))
	}

	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * 0.25
	}

	ev := &strain.Event{
		FrequencyArray: freqs,
		Detectors:      make(map[string]strain.Series, len(detectors)),
	}
	for _, name := range detectors {
		s := strain.Series{
			Strain: make([]complex128, bins),
			PSD:    make([]float64, bins),
		}
		for i := range bins {
			s.Strain[i] = complex(rng.NormFloat64(), rng.NormFloat64()) * 1e-23
			s.PSD[i] = (1 + rng.Float64()) * 1e-46
		}
		ev.Detectors[name] = s
	}
	return ev
}
