package level

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch calls fn with a freshly loaded layout every time the file at path is
// written or re-created, until ctx is done. Parse errors are handed to fn
// too, so a broken edit can be reported and the old level kept.
//
// The directory is watched rather than the file: editors that save by
// renaming would otherwise detach the watch.
func Watch(ctx context.Context, path string, log logrus.FieldLogger, fn func(*Layout, error)) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("level: watch: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("level: watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("level: watch %s: %w", abs, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				log.WithField("file", abs).Debug("level: reloading")
				fn(Load(abs))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("level: watcher error")
		}
	}
}
