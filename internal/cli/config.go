package cli

import (
	"errors"
	"fmt"
	"os"

	"quickcomm/internal/model"
	"quickcomm/internal/phrases"
	"quickcomm/internal/store"

	"github.com/spf13/cobra"
)

// effectiveConfig is the config with every default filled in.
type effectiveConfig struct {
	Path        string   `json:"path"`
	DataDir     string   `json:"dataDir"`
	StateFile   string   `json:"stateFile"`
	Events      bool     `json:"events"`
	LogFile     string   `json:"logFile"`
	LogLevel    string   `json:"logLevel"`
	Pinned      int      `json:"pinned"`
	QuickAccess []string `json:"quickAccess"`
	Glyphs      string   `json:"glyphs"`
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize ~/.quickcomm/config.yaml",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := store.ResolveDir(app.Dir, cfg)
			if err != nil {
				return writeErr(cmd, err)
			}
			quick, err := cfg.QuickAccessRoutes()
			if err != nil {
				return writeErr(cmd, err)
			}
			if quick == nil {
				quick = phrases.DefaultQuickAccess()
			}
			return writeOut(cmd, app, map[string]any{"data": effectiveConfig{
				Path:        path,
				DataDir:     dir,
				StateFile:   cfg.StateFileName(),
				Events:      cfg.EventsEnabled(),
				LogFile:     cfg.LogFile,
				LogLevel:    cfg.Level(),
				Pinned:      cfg.PinnedCount(),
				QuickAccess: refs(quick),
				Glyphs:      cfg.Glyphs(),
			}})
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": path})
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults spelled out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return writeErr(cmd, fmt.Errorf("config already exists: %s (use --force to overwrite)", path))
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return writeErr(cmd, err)
			}
			on := true
			cfg := &store.Config{
				Events:      &on,
				LogLevel:    "info",
				Pinned:      5,
				QuickAccess: refs(phrases.DefaultQuickAccess()),
				TUI:         &store.TUIConfig{Glyphs: "unicode"},
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path, "created": true}})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config (a .bak copy is kept)")

	cmd.AddCommand(showCmd, pathCmd, initCmd)
	return cmd
}

func refs(cs []model.Category) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Ref())
	}
	return out
}
