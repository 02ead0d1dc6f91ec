package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gwbench2g",
		Short: "Synthetic gravitational-wave benchmark dataset generator",
		Long: `gwbench2g generates synthetic gravitational-wave benchmark datasets:
Gaussian-noise frequency-domain strain with compact-binary injections plus a
columnar metadata table, optionally blinded for challenge-style evaluation.`,
	}

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(publishCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
