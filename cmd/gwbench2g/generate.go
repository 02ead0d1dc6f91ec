package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gwbench/gwbench2g"
	"github.com/gwbench/gwbench2g/simulate"
	"github.com/gwbench/gwbench2g/strain"
)

func init() {
	generateCmd.Flags().String("config", "", "Dataset configuration YAML (required)")
	generateCmd.Flags().Int("level", 0, "Simulation level")
	generateCmd.Flags().String("output-dir", "./dataset", "Directory the dataset is written into")
	generateCmd.Flags().String("compression", "zstd", "Strain file compression (none, lz4, zstd)")
	generateCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	generateCmd.Flags().Bool("json-logs", false, "Emit JSON-formatted logs")
	_ = generateCmd.MarkFlagRequired("config")
}

// bindFlags wires cobra flags through viper so each flag can also be set via
// a GWBENCH_-prefixed environment variable (e.g. GWBENCH_OUTPUT_DIR).
func bindFlags(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("GWBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())
	return v
}

func newLogger(v *viper.Viper) (*gwbench2g.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", v.GetString("log-level"))
	}
	if v.GetBool("json-logs") {
		return gwbench2g.NewJSONLogger(level), nil
	}
	return gwbench2g.NewTextLogger(level), nil
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a benchmark dataset",
	Long: `Run the configured simulation and write the dataset: one strain file
per event (simulation_<i>.gws) plus the metadata table
(injection_metadata.parquet).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := bindFlags(cmd)

		cfg, err := simulate.LoadConfig(v.GetString("config"))
		if err != nil {
			return err
		}

		level, err := simulate.ParseLevel(v.GetInt("level"))
		if err != nil {
			return err
		}

		compression, err := strain.ParseCompression(v.GetString("compression"))
		if err != nil {
			return err
		}

		logger, err := newLogger(v)
		if err != nil {
			return err
		}

		gen, err := gwbench2g.NewGenerator(cfg, level,
			gwbench2g.WithLogger(logger),
			gwbench2g.WithCompression(compression),
		)
		if err != nil {
			return err
		}

		report, err := gen.Run(cmd.Context(), v.GetString("output-dir"))
		if err != nil {
			return err
		}

		fmt.Printf("Generated %d events in %s (%s)\n",
			report.Events, v.GetString("output-dir"), report.Elapsed.Round(time.Millisecond))
		return nil
	},
}
