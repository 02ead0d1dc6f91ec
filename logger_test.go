package gwbench2g

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopLoggerDiscardsEverything(t *testing.T) {
	l := NoopLogger()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, l.Enabled(context.Background(), level), "level %s must be disabled", level)
	}
	l.Error("dropped") // must stay silent
}

func TestNewLoggerNilHandlerDefaults(t *testing.T) {
	l := NewLogger(nil)
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLoggerCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, nil))
	l.Info("generation started", "run", "r1")
	assert.Contains(t, buf.String(), "generation started")
}
