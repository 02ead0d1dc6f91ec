package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gwbench/gwbench2g/blobstore"
	minioblob "github.com/gwbench/gwbench2g/blobstore/minio"
	s3blob "github.com/gwbench/gwbench2g/blobstore/s3"
)

func init() {
	publishCmd.Flags().String("backend", "local", "Destination backend (local, s3, minio)")
	publishCmd.Flags().String("target", "", "Local destination directory (backend=local)")
	publishCmd.Flags().String("bucket", "", "Bucket name (backend=s3 or minio)")
	publishCmd.Flags().String("prefix", "", "Key prefix inside the destination")
	publishCmd.Flags().String("endpoint", "localhost:9000", "MinIO endpoint (backend=minio)")
	publishCmd.Flags().String("access-key", "", "MinIO access key (or GWBENCH_ACCESS_KEY)")
	publishCmd.Flags().String("secret-key", "", "MinIO secret key (or GWBENCH_SECRET_KEY)")
	publishCmd.Flags().Bool("secure", false, "Use TLS for the MinIO endpoint")
	publishCmd.Flags().Int("concurrency", 4, "Parallel uploads")
	publishCmd.Flags().Float64("rate", 0, "Upload starts per second (0 = unlimited)")
}

var publishCmd = &cobra.Command{
	Use:   "publish <dataset-dir>",
	Short: "Upload a dataset to an artifact store",
	Long: `Upload every file of a generated dataset directory to the chosen
backend, preserving the directory layout. Uploads run concurrently; the
first failure aborts the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := bindFlags(cmd)

		store, err := newStore(v)
		if err != nil {
			return err
		}

		opts := []blobstore.PublishOption{
			blobstore.WithConcurrency(v.GetInt("concurrency")),
		}
		if prefix := v.GetString("prefix"); prefix != "" {
			opts = append(opts, blobstore.WithPrefix(prefix))
		}
		if rate := v.GetFloat64("rate"); rate > 0 {
			opts = append(opts, blobstore.WithRateLimit(rate))
		}

		if err := blobstore.Publish(cmd.Context(), store, args[0], opts...); err != nil {
			return err
		}

		fmt.Printf("Published %s to %s\n", args[0], v.GetString("backend"))
		return nil
	},
}

func newStore(v *viper.Viper) (blobstore.Store, error) {
	switch backend := v.GetString("backend"); backend {
	case "local":
		target := v.GetString("target")
		if target == "" {
			return nil, fmt.Errorf("backend local requires --target")
		}
		return blobstore.NewLocalStore(target), nil

	case "s3":
		bucket := v.GetString("bucket")
		if bucket == "" {
			return nil, fmt.Errorf("backend s3 requires --bucket")
		}
		cfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, err
		}
		return s3blob.NewStore(awss3.NewFromConfig(cfg), bucket, ""), nil

	case "minio":
		bucket := v.GetString("bucket")
		if bucket == "" {
			return nil, fmt.Errorf("backend minio requires --bucket")
		}
		client, err := miniogo.New(v.GetString("endpoint"), &miniogo.Options{
			Creds:  credentials.NewStaticV4(v.GetString("access-key"), v.GetString("secret-key"), ""),
			Secure: v.GetBool("secure"),
		})
		if err != nil {
			return nil, err
		}
		return minioblob.NewStore(client, bucket, ""), nil

	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
