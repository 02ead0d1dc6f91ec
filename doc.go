// Package gwbench2g generates synthetic gravitational-wave benchmark
// datasets: Gaussian-noise frequency-domain strain with compact-binary
// injections, plus a columnar metadata table describing every injection.
//
// A dataset directory holds one strain file per simulated event
// (simulation_<i>.gws) and a single parquet table
// (injection_metadata.parquet) with one row per event, in event order.
// Datasets can be generated disclosed (truth parameters and SNRs stored)
// or blinded (truth withheld for challenge-style evaluation).
//
// # Quick Start
//
//	cfg := simulate.DefaultConfig()
//	cfg.Seed = 42
//	cfg.NSimulations = 100
//
//	gen, _ := gwbench2g.NewGenerator(cfg, simulate.Level0)
//	report, _ := gen.Run(ctx, "./out/run-42")
//	fmt.Println(report.Events, report.MetadataPath)
//
// Reading metadata back:
//
//	records, _ := metaio.DecodeAll(report.MetadataPath)
//	one, _ := metaio.DecodeOne(report.MetadataPath, 17)
//
// Publishing a finished dataset to object storage:
//
//	store := s3.NewStore(client, "my-bucket", "datasets/")
//	_ = blobstore.Publish(ctx, store, "./out/run-42")
//
// # Key Features
//
//   - Deterministic: one seed fixes the prior draws, the noise, and the
//     stored record order
//   - Blinded or disclosed datasets from the same configuration
//   - Atomic file writes (no partially written artifacts on crash)
//   - Checksummed strain files with optional zstd or lz4 compression
//   - Local, in-memory, S3 and MinIO artifact stores
package gwbench2g
