package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// stateChangedMsg reports that the state file changed on disk.
type stateChangedMsg struct{}

// stateWatcher watches the state file's directory. The file is replaced by
// rename on every save, so watching the file itself would lose the watch.
type stateWatcher struct {
	w       *fsnotify.Watcher
	changed chan struct{}
}

func watchStateFile(path string, log *zap.Logger) (*stateWatcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	sw := &stateWatcher{w: w, changed: make(chan struct{}, 1)}
	go sw.loop(filepath.Base(path), log)
	return sw, nil
}

func (sw *stateWatcher) loop(base string, log *zap.Logger) {
	defer close(sw.changed)
	for {
		select {
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			// Coalesce bursts; one pending notification is enough.
			select {
			case sw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			log.Warn("state watcher", zap.Error(err))
		}
	}
}

// next waits for the following change.
func (sw *stateWatcher) next() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-sw.changed; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func (sw *stateWatcher) Close() error {
	return sw.w.Close()
}
