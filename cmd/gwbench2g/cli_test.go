package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/gwbench/gwbench2g"
)

const testConfigYAML = `duration: 2.0
sampling_frequency: 512.0
detectors: [H1, L1]
seed: 7
n_simulations: 2
`

func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	root := &cobra.Command{Use: "gwbench2g"}
	root.AddCommand(cmd)
	root.SetArgs(args)
	return root.Execute()
}

func TestGenerateAndInspect(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dataset.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigYAML), 0o644))

	outDir := filepath.Join(dir, "out")
	err := execute(t, generateCmd,
		"generate",
		"--config", cfgPath,
		"--output-dir", outDir,
		"--compression", "lz4",
		"--log-level", "error",
	)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, gwbench2g.MetadataFileName))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, gwbench2g.StrainFileName(1)))
	require.NoError(t, err)

	err = execute(t, inspectCmd, "inspect", outDir)
	require.NoError(t, err)

	err = execute(t, inspectCmd, "inspect", outDir, "--index", "1")
	require.NoError(t, err)

	err = execute(t, inspectCmd, "inspect", outDir, "--index", "5")
	require.Error(t, err)
}

func TestGenerate_BadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dataset.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("n_simulations: 0\n"), 0o644))

	err := execute(t, generateCmd,
		"generate",
		"--config", cfgPath,
		"--output-dir", filepath.Join(dir, "out"),
	)
	require.Error(t, err)
}

func TestPublish_LocalBackend(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("x"), 0o644))

	dst := t.TempDir()
	err := execute(t, publishCmd,
		"publish", src,
		"--backend", "local",
		"--target", dst,
	)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
}

func TestPublish_UnknownBackend(t *testing.T) {
	err := execute(t, publishCmd,
		"publish", t.TempDir(),
		"--backend", "ftp",
	)
	require.Error(t, err)
}
