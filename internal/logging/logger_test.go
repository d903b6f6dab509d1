package logging_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/seglabco/segtok/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			if logger == nil {
				t.Fatal("New returned nil logger")
			}

			if logger.GetLevel() != testCase.expected {
				t.Errorf("expected level %v, got %v", testCase.expected, logger.GetLevel())
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	logger := logging.Default()
	if logger == nil {
		t.Fatal("Default returned nil logger")
	}

	if logger != logging.Default() {
		t.Error("Default should return the same logger on repeated calls")
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns attached logger", func(t *testing.T) {
		t.Parallel()

		logger := logging.New("debug")
		ctx := logging.WithLogger(context.Background(), logger)

		if got := logging.FromContext(ctx); got != logger {
			t.Error("expected the attached logger")
		}
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Parallel()

		if got := logging.FromContext(context.Background()); got != logging.Default() {
			t.Error("expected the default logger")
		}
	})

	t.Run("nil context falls back to default", func(t *testing.T) {
		t.Parallel()

		//nolint:staticcheck // Exercising the nil-context guard on purpose
		if got := logging.FromContext(nil); got != logging.Default() {
			t.Error("expected the default logger")
		}
	})
}
