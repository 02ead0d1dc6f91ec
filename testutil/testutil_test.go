package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwbench/gwbench2g/metaio"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(4711)
	b := NewRNG(4711)

	for range 10 {
		assert.Equal(t, a.Float64(), b.Float64())
	}

	a.Reset()
	c := NewRNG(4711)
	assert.Equal(t, c.Float64(), a.Float64())
	assert.Equal(t, int64(4711), a.Seed())
}

func TestRecords(t *testing.T) {
	recs := Records(5, metaio.Disclosed)
	require.Len(t, recs, 5)

	// Same seed, same record.
	if diff := cmp.Diff(DisclosedRecord(2), recs[2]); diff != "" {
		t.Errorf("fixture mismatch (-want +got):\n%s", diff)
	}

	// Distinct seeds differ.
	assert.NotEqual(t, *recs[0].Seed, *recs[1].Seed)
}

func TestBlindedRecord(t *testing.T) {
	rec := BlindedRecord(3)

	assert.Nil(t, rec.InjectionParameters)
	assert.Nil(t, rec.Seed)
	assert.Nil(t, rec.NetworkOptimalSNR)
	assert.NotNil(t, rec.FixedParameters)
	for name, det := range rec.Detectors {
		assert.Nil(t, det.OptimalSNR, "detector %s", name)
		assert.NotZero(t, det.MinimumFrequency, "detector %s", name)
	}
}

func TestStrainEvent(t *testing.T) {
	rng := NewRNG(1)
	ev := StrainEvent(rng, []string{"H1", "L1", "V1"}, 64)

	require.Len(t, ev.FrequencyArray, 64)
	require.Len(t, ev.Detectors, 3)
	for name, s := range ev.Detectors {
		require.Len(t, s.Strain, 64, "detector %s", name)
		require.Len(t, s.PSD, 64, "detector %s", name)
	}
}
