// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	client := s3.NewFromConfig(cfg)
//	store := s3.NewStore(client, "my-bucket", "datasets/")
//
//	err = blobstore.Publish(ctx, store, "./out/run-42")
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart manager uploads for large strain files
//   - Automatic pagination for listing
//   - Configurable prefix for multi-dataset isolation
package s3
