package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Carmen-Shannon/oxy-fps/engine/logger"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it is rewritten and hands the result to the frame loop.
// Bursts of writes within the debounce window produce a single reload. Files that fail to parse
// or validate are reported on Errors and the previous configuration stays in effect.
// Consumers apply an update through the Configure methods of the gateway and the controllers.
//
// Updates and Errors are closed once the watcher stops.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	Updates chan *Config
	Errors  chan error

	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the file at path.
// The parent directory is watched so editors that replace the file on save are still seen.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if the directory cannot be watched
func NewWatcher(path string) (*Watcher, error) {
	return newWatcher(path, defaultDebounce)
}

func newWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		Updates:  make(chan *Config, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Safe to call more than once.
//
// Returns:
//   - error: error from closing the underlying fsnotify watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Updates)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				logger.L().Warn("config reload failed", "path", w.path, "error", err)
				w.sendError(err)
				continue
			}
			logger.L().Info("config reloaded", "path", w.path)
			w.sendUpdate(cfg)
		case <-w.closeCh:
			return
		}
	}
}

// sendUpdate replaces any reload the frame loop has not picked up yet.
func (w *Watcher) sendUpdate(cfg *Config) {
	for {
		select {
		case w.Updates <- cfg:
			return
		case <-w.closeCh:
			return
		default:
			select {
			case <-w.Updates:
			default:
			}
		}
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	default:
		// a pending error is already waiting
	}
}
