// Package blobstore provides storage abstraction for completed dataset
// artifacts: the metadata parquet table and the per-event strain files.
//
// Store is the interface for reading and writing artifacts. Implementations
// must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem under a root directory
//   - MemoryStore: in-memory store for tests
//   - s3.Store: Amazon S3 with parallel multipart uploads
//   - minio.Store: MinIO and other S3-compatible object stores
//
// # Publishing
//
// Publish uploads a finished dataset directory to a Store with bounded
// concurrency and optional rate limiting:
//
//	store := s3.NewStore(client, "my-bucket", "datasets/run-42")
//	err := blobstore.Publish(ctx, store, outputDir, blobstore.WithConcurrency(4))
//
// Generation itself never goes through a Store; datasets are produced on
// the local filesystem first and published as a whole.
package blobstore
