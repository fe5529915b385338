package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, LevelInfo)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.WithSession("s-abc").Info("step advanced", "from", "qualify", "to", "recipient_review")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, line)
	}
	if entry["msg"] != "step advanced" {
		t.Errorf("msg = %v, want %q", entry["msg"], "step advanced")
	}
	if entry["session"] != "s-abc" {
		t.Errorf("session = %v, want s-abc", entry["session"])
	}
	if entry["to"] != "recipient_review" {
		t.Errorf("to = %v, want recipient_review", entry["to"])
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, LevelWarn)
	if err != nil {
		t.Fatal(err)
	}

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Errorf("got %d log lines, want 1 (only WARN)", len(lines))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
