package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quickcomm/internal/model"

	"gopkg.in/yaml.v3"
)

const (
	configFileName  = "config.yaml"
	defaultPinned   = 5
	defaultLogLevel = "info"
)

// Config is the optional user configuration in ~/.quickcomm/config.yaml.
type Config struct {
	// DataDir holds the state file and activity log. Defaults to the config dir.
	DataDir string `yaml:"dataDir,omitempty"`
	// StateFile is the snapshot file name inside DataDir.
	StateFile string `yaml:"stateFile,omitempty"`

	// Events toggles the SQLite activity log (default on).
	Events *bool `yaml:"events,omitempty"`

	LogFile  string `yaml:"logFile,omitempty"`
	LogLevel string `yaml:"logLevel,omitempty"`

	// Pinned is how many favorites the home screen pins.
	Pinned int `yaml:"pinned,omitempty"`

	// QuickAccess are category refs like "places/Gym" shown as home shortcuts.
	QuickAccess []string `yaml:"quickAccess,omitempty"`

	TUI *TUIConfig `yaml:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `yaml:"glyphs,omitempty"`
}

func (c *Config) EventsEnabled() bool {
	return c == nil || c.Events == nil || *c.Events
}

func (c *Config) PinnedCount() int {
	if c == nil || c.Pinned <= 0 {
		return defaultPinned
	}
	return c.Pinned
}

func (c *Config) Level() string {
	if c == nil || strings.TrimSpace(c.LogLevel) == "" {
		return defaultLogLevel
	}
	return strings.ToLower(strings.TrimSpace(c.LogLevel))
}

func (c *Config) StateFileName() string {
	if c == nil || strings.TrimSpace(c.StateFile) == "" {
		return stateFileName
	}
	return filepath.Base(strings.TrimSpace(c.StateFile))
}

func (c *Config) Glyphs() string {
	if c == nil || c.TUI == nil || strings.TrimSpace(c.TUI.Glyphs) == "" {
		return "unicode"
	}
	return strings.ToLower(strings.TrimSpace(c.TUI.Glyphs))
}

// QuickAccessRoutes parses QuickAccess; nil means "use the built-in defaults".
func (c *Config) QuickAccessRoutes() ([]model.Category, error) {
	if c == nil || len(c.QuickAccess) == 0 {
		return nil, nil
	}
	out := make([]model.Category, 0, len(c.QuickAccess))
	for _, ref := range c.QuickAccess {
		cat, err := model.ParseCategory(ref)
		if err != nil {
			return nil, fmt.Errorf("config quickAccess: %w", err)
		}
		out = append(out, cat)
	}
	return out, nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.quickcomm).
	if v := strings.TrimSpace(os.Getenv("QUICKCOMM_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quickcomm"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Keep a copy of the previous config so an accidental overwrite is recoverable.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.yaml.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}

// ResolveDir picks the data directory: explicit dir, then config, then the config dir.
func ResolveDir(dir string, cfg *Config) (string, error) {
	if v := strings.TrimSpace(dir); v != "" {
		return filepath.Clean(v), nil
	}
	if cfg != nil && strings.TrimSpace(cfg.DataDir) != "" {
		return filepath.Clean(os.ExpandEnv(strings.TrimSpace(cfg.DataDir))), nil
	}
	return ConfigDir()
}
