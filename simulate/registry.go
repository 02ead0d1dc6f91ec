package simulate

import (
	"fmt"

	"github.com/gwbench/gwbench2g/metaio"
)

// Level selects a dataset-generation strategy. The set is closed: every
// level is a constant here with a matching case in Run.
type Level int

// Level0 is the baseline dataset: aligned-spin BBH injections into
// stationary Gaussian noise.
const Level0 Level = 0

// String returns the string representation of the Level.
func (l Level) String() string { return fmt.Sprintf("level %d", int(l)) }

// ParseLevel validates a numeric level from configuration or flags.
func ParseLevel(v int) (Level, error) {
	switch Level(v) {
	case Level0:
		return Level0, nil
	default:
		return 0, &UnknownLevelError{Level: v}
	}
}

// UnknownLevelError reports a level with no simulation strategy.
type UnknownLevelError struct {
	Level int
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("no simulation strategy for level %d", e.Level)
}

// FrequencyDomainData is one interferometer's simulated output for one
// event. The arrays are parallel: bin i of Strain and PSD belongs to
// FrequencyArray[i].
type FrequencyDomainData struct {
	Strain         []complex128
	PSD            []float64
	FrequencyArray []float64
}

// Event is one simulated injection: the per-detector data and its metadata
// record.
type Event struct {
	Index    int
	Data     map[string]FrequencyDomainData
	Metadata metaio.InjectionMetaData
}

// Run simulates cfg.NSimulations events at the given level, calling emit
// once per event in order. Returning an error from emit stops the run and
// propagates the error.
func Run(level Level, cfg Config, emit func(Event) error) error {
	switch level {
	case Level0:
		return runLevel0(cfg, emit)
	default:
		return &UnknownLevelError{Level: int(level)}
	}
}
