package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		got := ParseLevel(tt.input)
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.InfoLevel, false)

	logger.Info().Str("domain", "orders").Msg("normalized")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v\noutput: %s", err, buf.String())
	}
	if m["message"] != "normalized" {
		t.Errorf("expected message 'normalized', got %q", m["message"])
	}
	if m["domain"] != "orders" {
		t.Errorf("expected domain 'orders', got %q", m["domain"])
	}
	if _, ok := m["time"]; !ok {
		t.Error("expected a time field")
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel, false)

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info written at warn level: %s", buf.String())
	}
	logger.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn not written: %s", buf.String())
	}
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.InfoLevel, true)

	logger.Info().Str("key", "value").Msg("test message")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Errorf("expected console output, got JSON: %s", out)
	}
	if !strings.Contains(out, "test message") || !strings.Contains(out, "value") {
		t.Errorf("expected console output with message and field, got: %s", out)
	}
}
