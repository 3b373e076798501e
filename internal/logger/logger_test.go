package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: " warn ", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSetup_JSON(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	Setup(&buf, slog.LevelInfo, "json")

	Debug("hidden")
	WithRun("run-1").Info("filtered", "matched", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected exactly one log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Failed to parse log line: %v", err)
	}

	if entry["msg"] != "filtered" || entry["run_id"] != "run-1" || entry["matched"] != float64(2) {
		t.Errorf("Unexpected log entry: %v", entry)
	}
}

func TestSetup_Text(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	Setup(&buf, slog.LevelDebug, "text")

	Debug("debug message")
	Logger.Warn("warn message")
	Logger.Error("error message")
	Info("info message")

	out := buf.String()
	for _, want := range []string{"level=DEBUG", "level=WARN", "level=ERROR", "level=INFO", `msg="info message"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %q", want, out)
		}
	}
}
