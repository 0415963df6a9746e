package tui

import (
	"quickcomm/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	// StatePath is watched so writes from another process show up live.
	StatePath string
	// Glyphs is "unicode" or "ascii".
	Glyphs string
	Logger *zap.Logger
}

func Run(sess *session.Session, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := newAppModel(sess, log)
	if opts.StatePath != "" {
		w, err := watchStateFile(opts.StatePath, log)
		if err != nil {
			log.Warn("watch state file", zap.String("path", opts.StatePath), zap.Error(err))
		} else {
			defer w.Close()
			m.watcher = w
		}
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
