package gwbench2g

import (
	"errors"
	"fmt"

	"github.com/gwbench/gwbench2g/simulate"
)

var (
	// ErrUnknownLevel is returned when no simulation strategy exists for the
	// requested level.
	ErrUnknownLevel = errors.New("unknown simulation level")

	// ErrInvalidConfig is returned when the dataset configuration fails
	// validation.
	ErrInvalidConfig = errors.New("invalid dataset config")
)

// translateError normalizes errors from the simulation and codec layers
// into the root sentinels where one applies. Typed codec errors
// (metaio.SchemaViolationError, metaio.CorruptDataError,
// metaio.OutOfRangeError) pass through unchanged; they are already the
// public taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ul *simulate.UnknownLevelError
	if errors.As(err, &ul) {
		return fmt.Errorf("%w: %w", ErrUnknownLevel, err)
	}

	if errors.Is(err, simulate.ErrNoSimulations) || errors.Is(err, simulate.ErrNoDetectors) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return err
}
