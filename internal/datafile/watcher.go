// Package datafile reloads the JSON restaurant file while the API runs.
package datafile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc re-reads the file and swaps it into whatever serves it. A
// failed reload leaves the previous data in place.
type ReloadFunc func(ctx context.Context) error

// Watcher calls a ReloadFunc after the watched file settles. It watches the
// parent directory because atomic writers replace the file by rename.
type Watcher struct {
	path     string
	reload   ReloadFunc
	debounce time.Duration
	logger   *zap.Logger
}

func NewWatcher(path string, reload ReloadFunc, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{path: path, reload: reload, debounce: DefaultDebounce, logger: logger}
}

func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.logger.Info("[DATA] watching for changes", zap.String("file", target))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("[DATA] watcher error", zap.Error(err))

		case <-timer.C:
			if err := w.reload(ctx); err != nil {
				w.logger.Error("[DATA] reload failed, keeping previous records",
					zap.String("file", target),
					zap.Error(err),
				)
				continue
			}
			w.logger.Info("[DATA] reloaded", zap.String("file", target))
		}
	}
}
