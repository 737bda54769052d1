package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Path returns the config file Load would read for flags, or "".
func Path(flags *Flags) string {
	if flags != nil && flags.Config != "" {
		return flags.Config
	}
	return findConfigFile()
}

// Watcher reloads a config file whenever it is written and publishes the
// result. Invalid edits are logged and skipped.
type Watcher struct {
	path    string
	flags   Flags
	log     *zap.Logger
	watcher *fsnotify.Watcher
	updates chan *Config

	closeOnce sync.Once
	done      chan struct{}
}

// Watch starts watching path. The directory is watched rather than the file
// so editors that save by rename are still seen.
func Watch(path string, flags *Flags, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		log:     log,
		watcher: fw,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	if flags != nil {
		w.flags = *flags
	}
	w.flags.Config = abs

	go w.loop()
	return w, nil
}

// Updates delivers reloaded configurations. Only the newest pending one is
// kept.
func (w *Watcher) Updates() <-chan *Config { return w.updates }

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := load(&w.flags, os.LookupEnv)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		w.log.Warn("config reload skipped", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("config reloaded", zap.String("path", w.path))

	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
