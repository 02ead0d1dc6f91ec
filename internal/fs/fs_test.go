package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, lfs.MkdirAll(dir, 0755))

	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, f.Sync())

	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	assert.NoError(t, f.Close())

	newPath := filepath.Join(dir, "renamed.txt")
	assert.NoError(t, lfs.Rename(fpath, newPath))

	assert.NoError(t, lfs.Remove(newPath))
	_, err = lfs.Stat(newPath)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAtomic(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out.bin")

	err := WriteAtomic(nil, path, 0644, func(w io.Writer) error {
		_, err := w.Write([]byte("payload"))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file may survive")
}

func TestWriteAtomic_FnError(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out.bin")
	boom := errors.New("boom")

	err := WriteAtomic(nil, path, 0644, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "destination must not exist after a failed write")

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file must be cleaned up")
}

func TestWriteAtomic_KeepsExistingOnFailure(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	ffs := NewFaultyFS(nil)
	ffs.AddRule(".tmp", Fault{FailOnSync: true})

	err := WriteAtomic(ffs, path, 0644, func(w io.Writer) error {
		_, err := w.Write([]byte("new"))
		return err
	})
	assert.ErrorIs(t, err, ErrInjected)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data), "existing file must be left unmodified")
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("faulty", Fault{FailAfterBytes: 5})

	fpath := filepath.Join(tmp, "faulty.txt")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = f.Write([]byte("!"))
	assert.ErrorIs(t, err, ErrInjected)
}

func TestFaultyFS_RenameFault(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("blocked", Fault{FailOnRename: true})

	src := filepath.Join(tmp, "plain.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	assert.ErrorIs(t, ffs.Rename(src, filepath.Join(tmp, "blocked.txt")), ErrInjected)
	assert.NoError(t, ffs.Rename(src, filepath.Join(tmp, "ok.txt")))
}

func TestFaultyFS_UnmatchedFilesPassThrough(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("other", Fault{FailAfterBytes: 1})

	fpath := filepath.Join(tmp, "clean.txt")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	_, err = f.Write([]byte("plenty of bytes"))
	assert.NoError(t, err)
	assert.NoError(t, f.Close())
}
