package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gwbench/gwbench2g"
	"github.com/gwbench/gwbench2g/metaio"
)

func init() {
	inspectCmd.Flags().Int64("index", -1, "Row index to print (default: table summary)")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <dataset-dir|metadata-file>",
	Short: "Inspect a dataset's metadata table",
	Long: `Print a summary of the metadata table, or a single stored record when
--index is given. The single-record path reads only that row.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, gwbench2g.MetadataFileName)
		}

		index, _ := cmd.Flags().GetInt64("index")
		if index < 0 {
			rows, err := metaio.RowCount(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d records\n", path, rows)
			return nil
		}

		rec, err := metaio.DecodeOne(path, index)
		if err != nil {
			return err
		}
		printRecord(index, rec)
		return nil
	},
}

func printRecord(index int64, rec metaio.InjectionMetaData) {
	fmt.Printf("record %d\n", index)
	fmt.Printf("  duration: %g s, sampling_frequency: %g Hz\n", rec.Duration, rec.SamplingFrequency)

	if rec.Seed != nil {
		fmt.Printf("  seed: %d\n", *rec.Seed)
	} else {
		fmt.Println("  seed: (blinded)")
	}

	printFloatMap("injection_parameters", rec.InjectionParameters, "(blinded)")
	printFloatMap("fixed_parameters", rec.FixedParameters, "(none)")

	fmt.Println("  waveform_kwargs:")
	for _, k := range sortedKeys(rec.WaveformKwargs) {
		fmt.Printf("    %s: %s\n", k, rec.WaveformKwargs[k].GoString())
	}

	fmt.Println("  detectors:")
	for _, name := range sortedKeys(rec.Detectors) {
		det := rec.Detectors[name]
		fmt.Printf("    %s: [%g, %g] Hz", name, det.MinimumFrequency, det.MaximumFrequency)
		if det.OptimalSNR != nil && det.MatchedFilterSNR != nil {
			fmt.Printf(", optimal_snr=%.3f, matched_filter_snr=%.3f", *det.OptimalSNR, *det.MatchedFilterSNR)
		}
		fmt.Println()
	}

	if rec.NetworkOptimalSNR != nil && rec.NetworkMatchedFilterSNR != nil {
		fmt.Printf("  network: optimal_snr=%.3f, matched_filter_snr=%.3f\n",
			*rec.NetworkOptimalSNR, *rec.NetworkMatchedFilterSNR)
	} else {
		fmt.Println("  network: (blinded)")
	}
}

func printFloatMap(name string, m map[string]float64, absent string) {
	if m == nil {
		fmt.Printf("  %s: %s\n", name, absent)
		return
	}
	fmt.Printf("  %s:\n", name)
	for _, k := range sortedKeys(m) {
		fmt.Printf("    %s: %g\n", k, m[k])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
