// Package watch re-runs the analysis whenever .txt files under the watched
// directories change, and publishes each outcome to an events.Store.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/wordhist/pkg/events"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Status values published under events.KeyStatus.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusError   = "error"
)

// AnalyzeFunc runs one analysis of the watched inputs.
type AnalyzeFunc func(ctx context.Context) (manifest.Output, error)

// Option customizes a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets how long the tree must stay quiet before a re-run.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher owns an fsnotify watcher over a set of directory trees.
type Watcher struct {
	logger   *zap.SugaredLogger
	store    *events.Store
	analyze  AnalyzeFunc
	debounce time.Duration
	dirs     []string

	fs      *fsnotify.Watcher
	pending time.Time
	runs    int
}

// NewWatcher watches every directory under dirs. New subdirectories are
// picked up as they appear.
func NewWatcher(dirs []string, store *events.Store, analyze AnalyzeFunc, opts ...Option) (*Watcher, error) {
	if len(dirs) == 0 {
		return nil, errors.New("no directories to watch")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		logger:   zap.NewNop().Sugar(),
		store:    store,
		analyze:  analyze,
		debounce: 500 * time.Millisecond,
		dirs:     dirs,
		fs:       fsw,
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
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
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.logger.Debugw("Watching directory", "dir", path)
		return nil
	})
}

// Run analyses once, then again after every settled burst of changes, until
// ctx is done. Analysis failures are published, not returned. The underlying
// watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	w.logger.Infow("Watching for changes", "dirs", w.dirs, "debounce", w.debounce)
	w.trigger(ctx)

	tick := time.NewTicker(max(w.debounce/5, 10*time.Millisecond))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infow("Watch stopped", "runs", w.runs)
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", "error", err)

		case now := <-tick.C:
			if !w.pending.IsZero() && now.Sub(w.pending) >= w.debounce {
				w.pending = time.Time{}
				w.trigger(ctx)
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warnw("Failed to watch new directory", "dir", ev.Name, "error", err)
			}
			w.pending = time.Now()
			return
		}
	}
	if !relevant(ev) {
		return
	}
	w.logger.Debugw("Change detected", "path", ev.Name, "op", ev.Op.String())
	w.pending = time.Now()
}

// relevant reports whether ev can change the analysis: a .txt file was
// created, written, removed or renamed.
func relevant(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), ".txt") {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) trigger(ctx context.Context) {
	w.runs++
	w.store.Set(events.KeyStatus, StatusRunning)

	out, err := w.analyze(ctx)
	if err != nil {
		w.logger.Errorw("Analysis failed", "run", w.runs, "error", err)
		w.store.Set(events.KeyError, err.Error())
		w.store.Set(events.KeyStatus, StatusError)
		return
	}
	w.logger.Infow("Analysis finished", "run", w.runs, "files", out.Meta.Files, "total_tokens", out.Meta.TotalTokens)
	w.store.Set(events.KeyReport, out)
	w.store.Set(events.KeyStatus, StatusDone)
}
