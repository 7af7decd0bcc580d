package logger_test

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/onerror/logger"
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	tcs := []struct {
		val      string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"info", logger.LogLevelInfo},
		{"Warn", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"", logger.LogLevelUnk},
		{"loud", logger.LogLevelUnk},
	}

	for _, tc := range tcs {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}
}

func TestColorLogger(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	t.Run("Level", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(logger.LogLevelWarn))

		// Act
		l.Debug("debug", nil)
		l.Info("info", nil)

		// Assert
		require.Zero(t, b.Len())
		require.Equal(t, logger.LogLevelWarn, l.LogLevel())

		// Act
		l.Warn("warn", nil)

		// Assert
		require.Contains(t, b.String(), "[WARN]")
		require.Contains(t, b.String(), "'warn'")
	})

	t.Run("Call-Site", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		l := logger.New(logger.WithLogger(newTestLogger(b)))

		// Act
		l.Error("boom", nil)

		// Assert
		require.Contains(t, b.String(), "[ERROR]")
		require.Contains(t, b.String(), "logger/logger_test.go:")
		require.NotContains(t, b.String(), "log_context")
	})

	t.Run("Log-Context", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		l := logger.New(logger.WithLogger(newTestLogger(b)))

		// Act
		l.Info("with context", &logger.LogContext{Data: map[string]any{"go": "rocks"}})

		// Assert
		require.Contains(t, b.String(), `log_context: {"data":{"go":"rocks"}}`)
	})

	t.Run("Skip", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		l := logger.New(logger.WithLogger(newTestLogger(b))).(logger.SkipLogger)

		// Act
		skipped := l.AddSkip(1)

		// Assert
		require.Equal(t, 1, skipped.Skip())
		require.Zero(t, l.Skip())
	})
}
