package gwbench2g

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dataset-generation context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRun adds a run identifier field to the logger.
func (l *Logger) WithRun(run string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", run),
	}
}

// LogEvent logs the completion of one simulated event.
func (l *Logger) LogEvent(ctx context.Context, index int, networkSNR float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "event failed",
			"index", index,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "event completed",
			"index", index,
			"network_optimal_snr", networkSNR,
		)
	}
}

// LogStrainWrite logs a strain file write.
func (l *Logger) LogStrainWrite(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "strain write failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "strain file written",
			"path", path,
		)
	}
}

// LogMetadataWrite logs the metadata table write.
func (l *Logger) LogMetadataWrite(ctx context.Context, path string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "metadata write failed",
			"path", path,
			"rows", rows,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "metadata table written",
			"path", path,
			"rows", rows,
		)
	}
}

// LogRun logs a completed generation run.
func (l *Logger) LogRun(ctx context.Context, events int, outputDir string) {
	l.InfoContext(ctx, "generation run completed",
		"events", events,
		"output_dir", outputDir,
	)
}
