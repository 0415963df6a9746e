package store

import (
	"context"
	"os"
	"path/filepath"
)

const eventsFileName = "events.sqlite"

// Store is the data directory holding the snapshot and the activity log.
type Store struct {
	Dir string
	Cfg *Config
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) StatePath() string {
	return filepath.Join(s.Dir, s.Cfg.StateFileName())
}

func (s Store) State() StateFile {
	return StateFile{Path: s.StatePath()}
}

func (s Store) EventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

// OpenEventLog opens the activity log, or returns nil when events are disabled.
func (s Store) OpenEventLog(ctx context.Context) (*EventLog, error) {
	if !s.Cfg.EventsEnabled() {
		return nil, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return OpenEventLog(ctx, s.EventsPath())
}
