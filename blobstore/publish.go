package blobstore

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const defaultPublishConcurrency = 4

// PublishOptions control how a dataset directory is uploaded.
type PublishOptions struct {
	// Concurrency bounds the number of parallel uploads.
	Concurrency int
	// Limiter, if set, throttles upload starts.
	Limiter *rate.Limiter
	// Prefix is prepended to every uploaded blob name.
	Prefix string
}

// PublishOption configures Publish.
type PublishOption func(*PublishOptions)

// WithConcurrency sets the number of parallel uploads.
func WithConcurrency(n int) PublishOption {
	return func(o *PublishOptions) {
		o.Concurrency = n
	}
}

// WithRateLimit throttles upload starts to n per second.
func WithRateLimit(n float64) PublishOption {
	return func(o *PublishOptions) {
		o.Limiter = rate.NewLimiter(rate.Limit(n), 1)
	}
}

// WithPrefix prepends a path prefix to every uploaded blob name.
func WithPrefix(prefix string) PublishOption {
	return func(o *PublishOptions) {
		o.Prefix = prefix
	}
}

// Publish uploads every regular file under dir to the store, preserving the
// relative directory layout in the blob names. Uploads run concurrently; the
// first failure cancels the remaining uploads and is returned.
func Publish(ctx context.Context, store Store, dir string, optFns ...PublishOption) error {
	opts := PublishOptions{Concurrency: defaultPublishConcurrency}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if opts.Prefix != "" {
			name = opts.Prefix + "/" + name
		}
		g.Go(func() error {
			if opts.Limiter != nil {
				if err := opts.Limiter.Wait(ctx); err != nil {
					return err
				}
			}
			return uploadFile(ctx, store, name, path)
		})
		return nil
	})
	if err != nil {
		// Walk errors surface alongside any in-flight upload failures.
		g.Go(func() error { return err })
	}
	return g.Wait()
}

func uploadFile(ctx context.Context, store Store, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	return store.Put(ctx, name, f, info.Size())
}
