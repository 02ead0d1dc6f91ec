package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDatasetDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"injection_metadata.parquet": "columnar metadata",
		"simulation_0.gws":           "strain zero",
		"simulation_1.gws":           "strain one",
		"logs/generate.txt":          "run log",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	dir := writeDatasetDir(t)

	err := Publish(ctx, store, dir)
	require.NoError(t, err)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{
		"injection_metadata.parquet",
		"logs/generate.txt",
		"simulation_0.gws",
		"simulation_1.gws",
	}, names)

	blob, err := store.Open(ctx, "simulation_1.gws")
	require.NoError(t, err)
	defer blob.Close()

	buf := make([]byte, blob.Size())
	_, err = blob.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "strain one", string(buf))
}

func TestPublish_Prefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	dir := writeDatasetDir(t)

	err := Publish(ctx, store, dir, WithPrefix("datasets/run-42"))
	require.NoError(t, err)

	names, err := store.List(ctx, "datasets/run-42/")
	require.NoError(t, err)
	require.Len(t, names, 4)

	names, err = store.List(ctx, "simulation")
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestPublish_FirstErrorWins(t *testing.T) {
	ctx := context.Background()
	dir := writeDatasetDir(t)

	wantErr := errors.New("bucket gone")
	store := &failingStore{Store: NewMemoryStore(), failOn: "simulation_0.gws", err: wantErr}

	err := Publish(ctx, store, dir, WithConcurrency(1))
	require.ErrorIs(t, err, wantErr)
}

func TestPublish_BoundedConcurrency(t *testing.T) {
	ctx := context.Background()
	dir := writeDatasetDir(t)

	store := &countingStore{Store: NewMemoryStore()}
	err := Publish(ctx, store, dir, WithConcurrency(2), WithRateLimit(1000))
	require.NoError(t, err)
	require.Equal(t, int64(4), store.puts.Load())
	require.LessOrEqual(t, store.maxInFlight.Load(), int64(2))
}

func TestPublish_MissingDir(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := Publish(ctx, store, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestPublish_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := writeDatasetDir(t)
	store := NewMemoryStore()

	err := Publish(ctx, store, dir, WithRateLimit(1))
	require.ErrorIs(t, err, context.Canceled)
}

type failingStore struct {
	Store
	failOn string
	err    error
}

func (s *failingStore) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	if strings.HasSuffix(name, s.failOn) {
		return s.err
	}
	return s.Store.Put(ctx, name, r, size)
}

type countingStore struct {
	Store
	puts        atomic.Int64
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func (s *countingStore) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	cur := s.inFlight.Add(1)
	for {
		maxSeen := s.maxInFlight.Load()
		if cur <= maxSeen || s.maxInFlight.CompareAndSwap(maxSeen, cur) {
			break
		}
	}
	defer s.inFlight.Add(-1)

	s.puts.Add(1)
	return s.Store.Put(ctx, name, r, size)
}
