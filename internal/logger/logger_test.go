package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	h, err := New(Config{Debug: false, ConfigDir: configDir})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer h.Close()

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if h.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want %v", h.GetLevel(), log.WarnLevel)
	}

	h.Warn("Test warning message", "name", "Alice")
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(logDir, "praylist.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test warning message") {
		t.Errorf("log file missing message, got %q", string(data))
	}
}

func TestNewDebugMode(t *testing.T) {
	h, err := New(Config{Debug: true, ConfigDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Failed to create logger in debug mode: %v", err)
	}
	defer h.Close()

	if h.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want %v", h.GetLevel(), log.DebugLevel)
	}
}

func TestNewWithFileAsDirectory(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "config")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}

	if _, err := New(Config{ConfigDir: blocker}); err == nil {
		t.Error("expected error when config dir is a regular file")
	}
}

func TestDiscardAndNilClose(t *testing.T) {
	Discard().Error("dropped")

	var h *Handle
	if err := h.Close(); err != nil {
		t.Errorf("nil handle Close returned %v", err)
	}
}
