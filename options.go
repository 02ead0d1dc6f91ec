package gwbench2g

import (
	"log/slog"

	"github.com/gwbench/gwbench2g/internal/fs"
	"github.com/gwbench/gwbench2g/strain"
)

type options struct {
	logger      *Logger
	compression strain.Compression
	fsys        fs.FileSystem
}

// Option configures Generator behavior.
type Option func(*options)

// WithLogger configures structured logging for the run.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := gwbench2g.NewJSONLogger(slog.LevelInfo)
//	gen, _ := gwbench2g.NewGenerator(cfg, simulate.Level0, gwbench2g.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCompression selects the strain file payload compression.
// The default is zstd.
func WithCompression(c strain.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithFileSystem overrides the filesystem used for output. Mainly for
// fault-injection tests.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:      NoopLogger(),
		compression: strain.CompressionZstd,
		fsys:        fs.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
