// Package watcher re-loads the configuration file when it changes on disk,
// so layout spacing can be tuned against a running server without restarts.
package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mpetrov/lifeline/internal/config"
	"github.com/mpetrov/lifeline/internal/util"
)

// ConfigWatcher watches one config file and emits the re-parsed Config on
// every write.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	updates chan config.Config
}

// New starts watching the given config file.
func New(path string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file, which drops a
	// watch installed on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		watcher: w,
		path:    path,
		updates: make(chan config.Config, 1),
	}
	go cw.processEvents()
	return cw, nil
}

func (cw *ConfigWatcher) processEvents() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(cw.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := config.Load(cw.path)
			if err != nil {
				util.LogWarnf("config reload failed: %v", err)
				continue
			}
			util.LogInfof("config reloaded from %s", cw.path)
			// Drop the stale pending update, if any, then queue the new one.
			select {
			case <-cw.updates:
			default:
			}
			cw.updates <- cfg

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			util.LogErrorf("config watch error: %v", err)
		}
	}
}

// Updates returns the channel of re-parsed configurations.
func (cw *ConfigWatcher) Updates() <-chan config.Config {
	return cw.updates
}

// Close stops watching.
func (cw *ConfigWatcher) Close() error {
	return cw.watcher.Close()
}
