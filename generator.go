package gwbench2g

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gwbench/gwbench2g/metaio"
	"github.com/gwbench/gwbench2g/simulate"
	"github.com/gwbench/gwbench2g/strain"
)

// MetadataFileName is the name of the columnar metadata table inside a
// dataset directory.
const MetadataFileName = "injection_metadata.parquet"

// StrainFileName returns the name of the strain file for the event at the
// given index.
func StrainFileName(index int) string {
	return fmt.Sprintf("simulation_%d.gws", index)
}

// Generator runs a benchmark simulation and materializes the resulting
// dataset: one strain file per event plus a single metadata table.
type Generator struct {
	cfg   simulate.Config
	level simulate.Level
	opts  options
}

// NewGenerator creates a Generator for the given configuration and
// simulation level. The configuration is validated up front.
func NewGenerator(cfg simulate.Config, level simulate.Level, optFns ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, translateError(err)
	}
	return &Generator{
		cfg:   cfg,
		level: level,
		opts:  applyOptions(optFns),
	}, nil
}

// RunReport summarizes a completed generation run.
type RunReport struct {
	Events       int
	MetadataPath string
	StrainPaths  []string
	Elapsed      time.Duration
}

// Run simulates the configured number of events and writes the dataset into
// outputDir. Events are written in order; the metadata table is written
// last, once all events succeeded. The context is checked between events,
// so a cancellation stops the run at the next event boundary.
func (g *Generator) Run(ctx context.Context, outputDir string) (*RunReport, error) {
	start := time.Now()

	if err := g.opts.fsys.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	records := make([]metaio.InjectionMetaData, 0, g.cfg.NSimulations)
	strainPaths := make([]string, 0, g.cfg.NSimulations)

	err := simulate.Run(g.level, g.cfg, func(ev simulate.Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(outputDir, StrainFileName(ev.Index))
		err := strain.Write(path, strainEvent(ev),
			strain.WithCompression(g.opts.compression),
			strain.WithFileSystem(g.opts.fsys),
		)
		g.opts.logger.LogStrainWrite(ctx, path, err)
		if err != nil {
			return err
		}
		strainPaths = append(strainPaths, path)
		records = append(records, ev.Metadata)

		var snr float64
		if ev.Metadata.NetworkOptimalSNR != nil {
			snr = *ev.Metadata.NetworkOptimalSNR
		}
		g.opts.logger.LogEvent(ctx, ev.Index, snr, nil)
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	metaPath := filepath.Join(outputDir, MetadataFileName)
	codec := metaio.NewCodec(metaio.WithFileSystem(g.opts.fsys))
	err = codec.Encode(records, metaPath)
	g.opts.logger.LogMetadataWrite(ctx, metaPath, len(records), err)
	if err != nil {
		return nil, err
	}

	g.opts.logger.LogRun(ctx, len(records), outputDir)

	return &RunReport{
		Events:       len(records),
		MetadataPath: metaPath,
		StrainPaths:  strainPaths,
		Elapsed:      time.Since(start),
	}, nil
}

// strainEvent converts a simulated event's per-detector arrays into the
// strain file payload. All detectors share one frequency array.
func strainEvent(ev simulate.Event) *strain.Event {
	out := &strain.Event{
		Detectors: make(map[string]strain.Series, len(ev.Data)),
	}
	for name, d := range ev.Data {
		if out.FrequencyArray == nil {
			out.FrequencyArray = d.FrequencyArray
		}
		out.Detectors[name] = strain.Series{Strain: d.Strain, PSD: d.PSD}
	}
	return out
}
