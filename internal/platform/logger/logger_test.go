package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case level", logLevel: "WARN"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{
				Port:     8080,
				LogLevel: tt.logLevel,
			})
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns stored logger", func(t *testing.T) {
		t.Parallel()

		logger, _ := GetTestLogger(t)
		ctx := WithLogger(context.Background(), logger)

		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback, _ := GetTestLogger(t)

	t.Run("prefers context logger", func(t *testing.T) {
		t.Parallel()

		ctxLogger, _ := GetTestLogger(t)
		ctx := WithLogger(context.Background(), ctxLogger)

		assert.Same(t, ctxLogger, FromContextOrDefault(ctx, fallback))
	})

	t.Run("uses fallback when context is empty", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("uses default when both are absent", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	})
}

func TestCIHandlerAddsMetadata(t *testing.T) {
	t.Setenv("GITHUB_RUN_ID", "12345")
	t.Setenv("GITHUB_SHA", "abcdef")

	logBuf := &TestLogBuffer{}
	handler := NewCIHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(handler)

	logger.Info("pipeline event")

	AssertLogContains(t, logBuf, "pipeline event")
	AssertLogField(t, logBuf, "ci_run_id", "12345")
	AssertLogField(t, logBuf, "ci_sha", "abcdef")
}

func TestLogBufferEntries(t *testing.T) {
	t.Parallel()

	logger, logBuf := GetTestLogger(t)
	logger.Info("first", slog.String("key", "value"))
	logger.Warn("second")

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, "WARN", entries[1]["level"])
}
