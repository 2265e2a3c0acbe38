package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestZeroValueIsSilent(t *testing.T) {
	var l Logger
	l.Info("nothing happens")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestWithFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelInfo).With(String("component", "schedule"))

	l.Debug("hidden")
	l.Warn("write failed", Int64("id", 42), Err(errors.New("disk full")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["component"] != "schedule" || entry["message"] != "write failed" || entry["err"] != "disk full" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["id"] != float64(42) {
		t.Fatalf("id = %v", entry["id"])
	}
	if _, ok := entry["caller"]; !ok {
		t.Fatal("expected caller field")
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chikita.log")
	l, err := New(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("hello")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"hello"`) {
		t.Fatalf("log content = %q", data)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel(""); err != nil || l != LevelInfo {
		t.Fatalf("ParseLevel(\"\") = %v, %v", l, err)
	}
	if l, err := ParseLevel("WARN"); err != nil || l != LevelWarn {
		t.Fatalf("ParseLevel(WARN) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
