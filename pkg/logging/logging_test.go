package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New(Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected a disabled logger without a path")
	}
}

func TestNewWritesSeverityAndMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "navigation.log")
	logger, err := New(Config{Path: path, Level: "debug"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Warn("user lookup failed", zap.String("login", "ghost"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	if entry["severity"] != "WARNING" {
		t.Fatalf("severity = %v", entry["severity"])
	}
	if entry["message"] != "user lookup failed" {
		t.Fatalf("message = %v", entry["message"])
	}
	if entry["login"] != "ghost" {
		t.Fatalf("login = %v", entry["login"])
	}
	if _, ok := entry["timestamp"].(string); !ok {
		t.Fatalf("missing timestamp in %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel(""); err != nil || lvl != zapcore.InfoLevel {
		t.Fatalf("empty level = %v, %v", lvl, err)
	}
	if lvl, err := ParseLevel("WARN"); err != nil || lvl != zapcore.WarnLevel {
		t.Fatalf("WARN = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
