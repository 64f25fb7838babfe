// ABOUTME: Watches the config file and reloads it after external edits.
// ABOUTME: Bursts of filesystem events are debounced into one reload.

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits for events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange with the reloaded document whenever the config file
// is created or written. It blocks until ctx is done.
//
// The parent directory is watched rather than the file, since Save replaces
// the file by rename.
func (s *Store) Watch(ctx context.Context, debounce time.Duration, onChange func(Document)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return s.fail("create config watcher", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return s.fail("watch config directory", err)
	}
	s.log.Debug("watching config", zap.String("path", s.path))

	target := filepath.Clean(s.path)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("config watcher error", zap.Error(err))

		case <-timer.C:
			doc, err := s.Load()
			if err != nil {
				s.log.Warn("config reload failed", zap.Error(err))
				continue
			}
			s.log.Debug("config reloaded", zap.String("path", s.path))
			onChange(doc)
		}
	}
}
