package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestZapLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(path, true)

	l.Info("TestModule", "hello from the logger", map[string]interface{}{"key": "value"})
	_ = l.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, want := range []string{"hello from the logger", "TestModule", `"key":"value"`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("log file missing %q, got: %s", want, content)
		}
	}
}

func TestIsolatedLoggerWritesToFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	l := NewIsolatedLogger(path)

	l.Info("ArchiveService", "archived announcement", map[string]interface{}{"session_id": "s1"})
	l.Error("ArchiveService", "persist failed", map[string]interface{}{"error": "boom"})
	_ = l.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, want := range []string{"archived announcement", "persist failed", "s1"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("log file missing %q, got: %s", want, content)
		}
	}
}

func TestNilDetailsAreTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(path, true)

	l.Debug("M", "d", nil)
	l.Info("M", "i", nil)
	l.Warn("M", "w", nil)
	l.Error("M", "e", nil)
	_ = l.Sync()
}
