package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesToLogFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("hidden debug message")
	Warn("streak lookup failed", "habit", "read")

	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "streak lookup failed") {
		t.Errorf("log file missing warning entry: %q", content)
	}
	if strings.Contains(content, "hidden debug message") {
		t.Errorf("debug entry written outside debug mode: %q", content)
	}
	if !strings.Contains(content, "habitual") {
		t.Errorf("log entry missing prefix: %q", content)
	}
}

func TestInit_DebugModeMirrorsToConsole(t *testing.T) {
	var console bytes.Buffer
	configDir := t.TempDir()

	if err := Init(Config{Debug: true, ConfigDir: configDir, Console: &console}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("loading habits", "count", 3)

	if !strings.Contains(console.String(), "loading habits") {
		t.Errorf("console output missing debug entry: %q", console.String())
	}
}

func TestInit_Level(t *testing.T) {
	tests := []struct {
		level   string
		logged  bool
		wantErr bool
	}{
		{"", false, false},
		{"info", true, false},
		{"WARN", false, false},
		{"loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			configDir := t.TempDir()
			err := Init(Config{ConfigDir: configDir, Level: tt.level})
			t.Cleanup(func() { Logger = nil })
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for invalid level")
				}
				return
			}
			if err != nil {
				t.Fatalf("Init failed: %v", err)
			}

			Info("applying pending migrations")

			data, _ := os.ReadFile(LogFile(configDir))
			if got := strings.Contains(string(data), "applying pending migrations"); got != tt.logged {
				t.Errorf("level %q: info logged = %v, want %v", tt.level, got, tt.logged)
			}
		})
	}
}

func TestWith(t *testing.T) {
	Logger = nil
	if With("habit", "x") != nil {
		t.Error("With should return nil before Init")
	}

	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if With("habit", "x") == nil {
		t.Error("With returned nil after Init")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// Must not panic
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestLogFile(t *testing.T) {
	got := LogFile("/tmp/habitual")
	want := filepath.Join("/tmp/habitual", "logs", "habitual.log")
	if got != want {
		t.Errorf("LogFile() = %q, want %q", got, want)
	}
}
