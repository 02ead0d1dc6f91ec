// Package testutil provides testing utilities for gwbench2g.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic seeded RNG and fixture builders for
// injection metadata records and strain events.
//
// # Deterministic RNG
//
//	rng := testutil.NewRNG(seed)
//	x := rng.Float64()
//	rng.Reset() // back to the initial seed
//
// # Record Fixtures
//
//	rec := testutil.DisclosedRecord(42)
//	recs := testutil.Records(20, metaio.Disclosed)
//
// # Strain Fixtures
//
//	ev := testutil.StrainEvent(rng, []string{"H1", "L1"}, 128)
package testutil
