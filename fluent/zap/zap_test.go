//go:build unit

package zap

import (
	"context"
	"errors"
	"testing"

	logpkg "github.com/LerianStudio/lib-fluent/fluent/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, observed := observer.New(level)

	return Wrap(zap.New(core)), observed
}

func TestNilLoggerFallsBackToNop(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger

	assert.NotPanics(t, func() {
		nilLogger.Log(context.Background(), logpkg.LevelError, "message")
		_ = nilLogger.With(logpkg.String("k", "v"))
	})

	assert.NotPanics(t, func() {
		(&Logger{}).Log(context.Background(), logpkg.LevelInfo, "message")
	})
}

func TestLogLevelsAndFields(t *testing.T) {
	t.Parallel()

	logger, observed := newObservedLogger(zapcore.DebugLevel)
	ctx := context.Background()

	logger.Log(ctx, logpkg.LevelDebug, "collected", logpkg.String("method", "IsEqualTo"))
	logger.Log(ctx, logpkg.LevelInfo, "info")
	logger.Log(ctx, logpkg.LevelWarn, "fault", logpkg.Err(errors.New("boom")))
	logger.Log(ctx, logpkg.LevelError, "error")

	entries := observed.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "IsEqualTo", entries[0].ContextMap()["method"])
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	logger, observed := newObservedLogger(zapcore.WarnLevel)

	logger.Log(context.Background(), logpkg.LevelDebug, "hidden")
	logger.Log(context.Background(), logpkg.LevelWarn, "shown")

	require.Equal(t, 1, observed.Len())
	assert.False(t, logger.Enabled(logpkg.LevelDebug))
	assert.True(t, logger.Enabled(logpkg.LevelError))
}

func TestWithAndWithGroup(t *testing.T) {
	t.Parallel()

	logger, observed := newObservedLogger(zapcore.DebugLevel)

	child := logger.With(logpkg.String("container_id", "c-1"))
	child.Log(context.Background(), logpkg.LevelInfo, "child")

	grouped := logger.WithGroup("soft")
	grouped.Log(context.Background(), logpkg.LevelInfo, "grouped", logpkg.Int("seq", 2))

	entries := observed.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "c-1", entries[0].ContextMap()["container_id"])
	assert.Equal(t, map[string]any{"seq": int64(2)}, entries[1].ContextMap()["soft"])
}

func TestTraceCorrelation(t *testing.T) {
	t.Parallel()

	logger, observed := newObservedLogger(zapcore.DebugLevel)

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.Log(ctx, logpkg.LevelInfo, "with span")

	fields := observed.All()[0].ContextMap()
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])
}

func TestSyncHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	logger, _ := newObservedLogger(zapcore.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, logger.Sync(ctx), context.Canceled)
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		wantLevel zapcore.Level
	}{
		{name: "local defaults to debug", cfg: Config{Environment: EnvironmentLocal}, wantLevel: zapcore.DebugLevel},
		{name: "ci defaults to warn", cfg: Config{Environment: EnvironmentCI}, wantLevel: zapcore.WarnLevel},
		{name: "explicit level", cfg: Config{Environment: EnvironmentProduction, Level: "error"}, wantLevel: zapcore.ErrorLevel},
		{name: "invalid environment", cfg: Config{Environment: "mars"}, wantErr: true},
		{name: "invalid level", cfg: Config{Environment: EnvironmentLocal, Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, logger)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, logger.Level().Level())
		})
	}
}
