package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	levels := []string{"trace", "debug", "info", "warn", "error"}

	for ci, configured := range levels {
		for mi, message := range levels {
			shouldAppear := mi >= ci
			name := configured + " logger, " + message + " message"

			t.Run(name, func(t *testing.T) {
				buf := &bytes.Buffer{}
				logger := NewConsoleLogger(buf, configured)

				switch message {
				case "trace":
					logger.LogTrace("msg")
				case "debug":
					logger.LogDebug("msg")
				case "info":
					logger.LogInfo("msg")
				case "warn":
					logger.LogWarn("msg")
				case "error":
					logger.LogError("msg")
				}

				contains := strings.Contains(buf.String(), "msg")
				if shouldAppear && !contains {
					t.Errorf("expected %s message at %s level, got %q", message, configured, buf.String())
				}
				if !shouldAppear && contains {
					t.Errorf("did not expect %s message at %s level, got %q", message, configured, buf.String())
				}
			})
		}
	}
}

// TestNormalizeLogLevel verifies case handling and the info fallback
func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DEBUG", "debug"},
		{"  Warn ", "warn"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NewConsoleLogger(nil, tt.input).Level(); got != tt.expected {
				t.Errorf("Level() = %q, want %q", got, tt.expected)
			}
		})
	}
}
