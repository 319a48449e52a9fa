// ABOUTME: Tests for dose configuration management.
// ABOUTME: Covers defaults, path expansion, and save/load round trip.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend = %q, want badger", got)
	}
	if got := cfg.GetSnoozeMinutes(); got != 5 {
		t.Errorf("GetSnoozeMinutes = %d, want 5", got)
	}
	if got := cfg.GetAlert(); got.Volume != 1.0 || got.Loop {
		t.Errorf("GetAlert = %+v, want default sound options", got)
	}
	if got := cfg.GetChannel(); got.Channel != "medication-reminders" {
		t.Errorf("GetChannel = %+v, want default channel", got)
	}
	if cfg.GetDataDir() == "" {
		t.Error("GetDataDir should fall back to XDG data dir")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/dose-data", filepath.Join(home, "dose-data")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		Backend:       "badger",
		DataDir:       "~/dose-test",
		SnoozeMinutes: 10,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Backend != "badger" || loaded.DataDir != "~/dose-test" || loaded.SnoozeMinutes != 10 {
		t.Errorf("loaded config = %+v", loaded)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetBackend() != "badger" {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "postgres"}
	if _, err := cfg.OpenStore(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpenStoreBadger(t *testing.T) {
	cfg := &Config{Backend: "badger", DataDir: t.TempDir()}
	s, err := cfg.OpenStore()
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer s.Close()

	if err := s.Set("k", []byte("v")); err != nil {
		t.Errorf("store not usable: %v", err)
	}
}
