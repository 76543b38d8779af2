// ABOUTME: Tests for logger construction and level parsing.
// ABOUTME: Unknown levels fall back to info.
package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHonorsLevel(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := New("warn", format)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", format, err)
		}
		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("%s logger: info enabled at warn level", format)
		}
		if !logger.Core().Enabled(zapcore.ErrorLevel) {
			t.Errorf("%s logger: error disabled at warn level", format)
		}
	}
}

func TestNewOrNop(t *testing.T) {
	if NewOrNop("info", "console") == nil {
		t.Error("NewOrNop returned nil")
	}
}
