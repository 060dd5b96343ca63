// Package watch rebuilds the site when the documentation tree changes.
//
// Rebuilds are strictly sequential: events collapse into a debounced
// trigger and the next build starts only after the previous one finished.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of filesystem events into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a documentation tree and triggers rebuilds.
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	rebuild  func() error
	debounce time.Duration
}

// New creates a watcher over root. rebuild runs after each debounced batch
// of changes; a failing rebuild is logged and watching continues, so a
// transient editing state does not kill the watch session.
func New(root string, rebuild func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}

	return &Watcher{
		root:     absRoot,
		watcher:  watcher,
		rebuild:  rebuild,
		debounce: DefaultDebounce,
	}, nil
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	slog.Info("Watching documentation tree", "root", w.root)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			// New directories must be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				if err := w.addRecursive(event.Name); err != nil {
					slog.Warn("Failed to watch new path", "path", event.Name, "error", err)
				}
			}
			slog.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.rebuild(); err != nil {
				slog.Error("Rebuild failed", "error", err)
			}
		}
	}
}

// addRecursive adds path and every directory below it to the watch set.
// Non-directories are ignored; fsnotify watches their parent already.
func (w *Watcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// The path may have vanished between event and walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != path {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}

// relevant filters events that cannot affect build output.
func relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}
