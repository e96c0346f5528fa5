package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigReadsYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := "path: " + filepath.Join(dir, "db") + "\nmode: release\nlogin: admin\nload_delay: 1s\n"
	if err := os.WriteFile(filepath.Join(dir, ".navigation.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnv, dir)

	settings, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if settings.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("path = %q", settings.BasePath())
	}
	if settings.Mode != "release" || settings.Login != "admin" {
		t.Fatalf("unexpected settings %#v", settings)
	}
	if settings.LoadDelay != time.Second {
		t.Fatalf("load delay = %v", settings.LoadDelay)
	}
	if settings.Source == "" {
		t.Fatal("expected config source to be recorded")
	}
}

func TestLoadConfigEnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".navigation.yaml"), []byte("mode: release\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnv, dir)
	t.Setenv("NAVIGATION_MODE", "debug")
	t.Setenv("NAVIGATION_LOAD_DELAY", "0s")

	settings, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if settings.Mode != "debug" {
		t.Fatalf("mode = %q, want env override", settings.Mode)
	}
	if settings.LoadDelay != 0 {
		t.Fatalf("load delay = %v", settings.LoadDelay)
	}
}
