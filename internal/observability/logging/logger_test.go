package logging

import (
	"log/slog"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("LOG_LEVEL="+tt.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			if got := levelFromEnv(); got != tt.want {
				t.Errorf("levelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerNotNil(t *testing.T) {
	if NewLogger() == nil {
		t.Fatal("NewLogger returned nil")
	}
	if NewTextLogger() == nil {
		t.Fatal("NewTextLogger returned nil")
	}
}

func TestNewLoggerFormatSwitch(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	if _, ok := NewLogger().Handler().(*slog.JSONHandler); !ok {
		t.Error("default handler is not JSON")
	}

	t.Setenv("LOG_FORMAT", "text")
	if _, ok := NewLogger().Handler().(*slog.TextHandler); !ok {
		t.Error("LOG_FORMAT=text did not select the text handler")
	}
}
