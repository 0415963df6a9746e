package store

import (
	"os"
	"path/filepath"
	"testing"

	"quickcomm/internal/model"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("QUICKCOMM_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.EventsEnabled() {
		t.Fatalf("expected events enabled by default")
	}
	if cfg.PinnedCount() != 5 {
		t.Fatalf("expected default pinned 5; got %d", cfg.PinnedCount())
	}
	if cfg.StateFileName() != "qcs_state.json" {
		t.Fatalf("unexpected default state file %q", cfg.StateFileName())
	}
	if cfg.Level() != "info" || cfg.Glyphs() != "unicode" {
		t.Fatalf("unexpected defaults: level=%q glyphs=%q", cfg.Level(), cfg.Glyphs())
	}
	qa, err := cfg.QuickAccessRoutes()
	if err != nil || qa != nil {
		t.Fatalf("expected nil quick access (use defaults); got %v, %v", qa, err)
	}
}

func TestSaveConfig_RoundTripAndBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUICKCOMM_CONFIG_DIR", dir)

	off := false
	cfg := &Config{
		Events:      &off,
		Pinned:      3,
		QuickAccess: []string{"places/Library", "activities/Games"},
		TUI:         &TUIConfig{Glyphs: "ascii"},
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig (second): %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml.bak")); err != nil {
		t.Fatalf("expected backup of previous config: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.EventsEnabled() || got.PinnedCount() != 3 || got.Glyphs() != "ascii" {
		t.Fatalf("unexpected config: %#v", got)
	}
	qa, err := got.QuickAccessRoutes()
	if err != nil {
		t.Fatalf("QuickAccessRoutes: %v", err)
	}
	if len(qa) != 2 || qa[0] != model.MustCategory(model.ScopePlaces, "Library") {
		t.Fatalf("unexpected quick access: %#v", qa)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUICKCOMM_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("pinned: [oops"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestResolveDir_Precedence(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("QUICKCOMM_CONFIG_DIR", cfgDir)

	if got, _ := ResolveDir("/tmp/explicit", &Config{DataDir: "/tmp/cfg"}); got != "/tmp/explicit" {
		t.Fatalf("expected explicit dir; got %q", got)
	}
	if got, _ := ResolveDir("", &Config{DataDir: "/tmp/cfg"}); got != "/tmp/cfg" {
		t.Fatalf("expected config dir; got %q", got)
	}
	if got, _ := ResolveDir("", &Config{}); got != cfgDir {
		t.Fatalf("expected config dir fallback %q; got %q", cfgDir, got)
	}
}
