package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newBufferedLogger returns a JSON logger at trace level writing to a buffer.
func newBufferedLogger(t *testing.T, sampling SamplingConfig) (*Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	cfg := NewDefaultConfig()
	cfg.Level = TraceLevel
	cfg.Format = "json"
	cfg.Sampling = sampling

	logger, err := NewLogger(cfg, zapcore.AddSync(&buf))
	require.NoError(t, err)
	return logger, &buf
}

func countLines(buf *bytes.Buffer, msg string) int {
	return strings.Count(buf.String(), `"msg":"`+msg+`"`)
}

func TestNewCore_DefaultKeepsEveryWarning(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(NewDefaultConfig(), zapcore.AddSync(&buf))
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 500; i++ {
		logger.Warn(ctx, "bank skipped", zap.Int("line", i+1))
	}

	assert.Equal(t, 500, strings.Count(buf.String(), "bank skipped"))
}

func TestNewCore_SamplesEachLevelSeparately(t *testing.T) {
	logger, buf := newBufferedLogger(t, SamplingConfig{
		Enabled: true,
		Tick:    time.Minute,
		Levels: map[zapcore.Level]LevelSamplingConfig{
			zapcore.DebugLevel: {Initial: 5, Thereafter: 10},
			zapcore.InfoLevel:  {Initial: 3, Thereafter: 0},
		},
	})

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		logger.Trace(ctx, "selection")
		logger.Debug(ctx, "bank solved")
		logger.Info(ctx, "progress")
		logger.Warn(ctx, "bank skipped")
	}

	assert.Equal(t, 100, countLines(buf, "selection"))
	// First 5, then every 10th of the remaining 95.
	assert.Equal(t, 5+9, countLines(buf, "bank solved"))
	assert.Equal(t, 3, countLines(buf, "progress"))
	assert.Equal(t, 100, countLines(buf, "bank skipped"))
}

func TestNewCore_ErrorsNeverSampled(t *testing.T) {
	logger, buf := newBufferedLogger(t, SamplingConfig{
		Enabled: true,
		Tick:    time.Minute,
		Levels: map[zapcore.Level]LevelSamplingConfig{
			zapcore.WarnLevel: {Initial: 1, Thereafter: 0},
		},
	})

	ctx := context.Background()
	for i := 0; i < 50; i++ {
		logger.Error(ctx, "solve failed")
		logger.Warn(ctx, "bank skipped")
	}

	assert.Equal(t, 50, countLines(buf, "solve failed"))
	assert.Equal(t, 1, countLines(buf, "bank skipped"))
}

func TestNewCore_RespectsMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewDefaultConfig()
	cfg.Level = zapcore.InfoLevel
	cfg.Format = "json"
	cfg.Sampling = SamplingConfig{
		Enabled: true,
		Tick:    time.Minute,
		Levels:  DefaultLevelSamplingConfig(),
	}

	logger, err := NewLogger(cfg, zapcore.AddSync(&buf))
	require.NoError(t, err)

	ctx := context.Background()
	logger.Trace(ctx, "selection")
	logger.Debug(ctx, "bank solved")
	logger.Info(ctx, "solved")

	assert.Equal(t, 0, countLines(&buf, "selection"))
	assert.Equal(t, 0, countLines(&buf, "bank solved"))
	assert.Equal(t, 1, countLines(&buf, "solved"))
	assert.False(t, logger.Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Enabled(zapcore.InfoLevel))
}

func TestNewCore_ChildLoggersShareSampling(t *testing.T) {
	logger, buf := newBufferedLogger(t, SamplingConfig{
		Enabled: true,
		Tick:    time.Minute,
		Levels: map[zapcore.Level]LevelSamplingConfig{
			zapcore.DebugLevel: {Initial: 2, Thereafter: 0},
		},
	})

	child := logger.Named("solver").With(zap.Int("digits", 12))
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		child.Debug(ctx, "bank solved")
	}
	child.Warn(ctx, "bank skipped")

	assert.Equal(t, 2, countLines(buf, "bank solved"))
	assert.Equal(t, 1, countLines(buf, "bank skipped"))
	assert.Contains(t, buf.String(), `"digits":12`)
}
