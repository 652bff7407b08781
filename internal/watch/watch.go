// Package watch reruns document generation when watched directories change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
)

// Watcher calls a rerun function after changes under its directories settle.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	rerun    func(ctx context.Context)
	logger   *slog.Logger
}

// New creates a watcher over dirs. rerun is never called concurrently with itself.
func New(dirs []string, debounce time.Duration, rerun func(ctx context.Context), logger *slog.Logger) (*Watcher, error) {
	if len(dirs) == 0 {
		return nil, errors.ValidationError("at least one directory must be watched").Build()
	}
	if debounce <= 0 {
		return nil, errors.ValidationError("debounce must be > 0").Build()
	}
	if rerun == nil {
		return nil, errors.ValidationError("rerun function is required").Build()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{dirs: dirs, debounce: debounce, rerun: rerun, logger: logger}, nil
}

// Run watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to create file watcher").Build()
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.dirs {
		if err := w.addRecursive(fw, dir); err != nil {
			return err
		}
	}

	rerunReq, trigger, stop := newDebouncer(w.debounce)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-rerunReq:
				w.logger.Info("Change detected; regenerating documents")
				w.rerun(ctx)
			}
		}
	}()
	defer wg.Wait()

	w.logger.Info("Watching for changes", slog.Any("dirs", w.dirs), logfields.Duration(w.debounce))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev, trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnore(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addRecursive(fw, ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.WrapError(err, errors.CategoryNotFound, "watched directory does not exist").
			WithContext("path", root).
			Build()
	}
	if !info.IsDir() {
		return errors.ValidationError("watched path is not a directory").WithContext("path", root).Build()
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// newDebouncer returns a channel that receives one value once trigger has not
// been called for quiet.
func newDebouncer(quiet time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(quiet, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

// shouldIgnore reports editor and system files that must not trigger a rerun.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}
