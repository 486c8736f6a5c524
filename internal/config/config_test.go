package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BakeDuration != 8*time.Second {
		t.Fatalf("bake duration = %s, want 8s", cfg.BakeDuration)
	}
	if cfg.RhythmLength != 15 || cfg.RhythmDuration != 5*time.Second {
		t.Fatalf("rhythm = %d over %s, want 15 over 5s", cfg.RhythmLength, cfg.RhythmDuration)
	}
	if !cfg.Sound {
		t.Fatal("sound should default on")
	}
	if cfg.Seed != 0 {
		t.Fatalf("seed = %d, want 0", cfg.Seed)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OTTOCAKE_BAKE_DURATION", "3s")
	t.Setenv("OTTOCAKE_SEED", "42")
	t.Setenv("OTTOCAKE_SOUND", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BakeDuration != 3*time.Second || cfg.Seed != 42 || cfg.Sound {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.env")
	if err := os.WriteFile(path, []byte("OTTOCAKE_RHYTHM_LENGTH=9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("OTTOCAKE_RHYTHM_LENGTH") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RhythmLength != 9 {
		t.Fatalf("rhythm length = %d, want 9", cfg.RhythmLength)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for a named file that does not exist")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("OTTOCAKE_RHYTHM_LENGTH", "lots")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{TickInterval: time.Millisecond, BakeDuration: time.Second, RhythmDuration: time.Second, RhythmLength: 1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg.RhythmLength = 0
	cfg.BakeDuration = -time.Second
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"rhythm length", "bake duration"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}
