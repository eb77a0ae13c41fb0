// Package watch re-runs a reload callback when files under the mod's trees change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc receives the sorted set of paths that changed since the last reload.
type ReloadFunc func(ctx context.Context, changed []string) error

type Watcher struct {
	fs       *fsnotify.Watcher
	log      *zap.Logger
	reload   ReloadFunc
	debounce time.Duration
	pending  map[string]struct{}
}

// New watches every directory below each root. Missing roots are skipped.
func New(roots []string, reload ReloadFunc, log *zap.Logger) (*Watcher, error) {
	if reload == nil {
		return nil, errors.New("reload callback is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		log:      log,
		reload:   reload,
		debounce: DefaultDebounce,
		pending:  make(map[string]struct{}),
	}
	watched := 0
	for _, root := range roots {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			log.Warn("watch root missing", zap.String("root", root))
			continue
		}
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, err
		}
		watched++
	}
	if watched == 0 {
		fw.Close()
		return nil, errors.New("no watch roots exist")
	}
	return w, nil
}

// SetDebounce changes the quiet period before a reload fires.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.log.Debug("watching directory", zap.String("path", path))
		return nil
	})
}

// Run blocks until ctx is cancelled and closes the underlying watcher on return.
// A failed reload is logged and does not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", zap.Error(err))

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// handle records an event and reports whether it should trigger a reload.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Warn("watching new directory", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}
	w.log.Debug("file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	w.pending[event.Name] = struct{}{}
	return true
}

func (w *Watcher) flush(ctx context.Context) {
	if len(w.pending) == 0 {
		return
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	slices.Sort(changed)
	clear(w.pending)

	w.log.Info("reloading", zap.Int("changed", len(changed)))
	if err := w.reload(ctx, changed); err != nil {
		w.log.Error("reload failed", zap.Error(err))
	}
}
