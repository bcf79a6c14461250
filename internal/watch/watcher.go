// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a generation when the source tree changes.
//
// Events under a root directory are filtered by doublestar patterns and
// coalesced: the callback fires once per quiet period with every path that
// changed during it, and never overlaps a run still in progress.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is unset.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: already running")

	// noise is never reported: VCS metadata, dependencies, editor swap
	// files and OS metadata.
	noise = []string{
		"**/.git/**",
		"**/node_modules/**",
		"**/*.swp",
		"**/*.swo",
		"**/*~",
		"**/.DS_Store",
	}
)

type (
	// ChangeFunc is called with the changed paths, relative to the root and
	// slash-separated, sorted.
	ChangeFunc func(ctx context.Context, changed []string) error

	// Options configures a Watcher.
	Options struct {
		// Root is the directory watched recursively.
		Root string
		// Patterns select the reported files. Empty reports every file.
		Patterns []string
		// Ignore excludes files on top of the built-in noise patterns.
		Ignore []string
		// Debounce is the quiet period before OnChange fires.
		Debounce time.Duration
		OnChange ChangeFunc
	}

	// Watcher reports debounced changes under a root directory.
	Watcher struct {
		root     string
		patterns []string
		ignore   []string
		debounce time.Duration
		onChange ChangeFunc
		fsw      *fsnotify.Watcher
		started  atomic.Bool
	}

	// batch collects changed paths between two callback runs.
	batch struct {
		mu      sync.Mutex
		pending map[string]struct{}
		timer   *time.Timer
		busy    atomic.Bool
	}
)

// New validates opts and registers every directory under the root.
func New(opts Options) (*Watcher, error) {
	if err := checkPatterns(opts.Patterns); err != nil {
		return nil, err
	}
	if err := checkPatterns(opts.Ignore); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", opts.Root, err)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		root:     root,
		patterns: slices.Clone(opts.Patterns),
		ignore:   slices.Concat(noise, opts.Ignore),
		debounce: debounce,
		onChange: opts.OnChange,
		fsw:      fsw,
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run dispatches changes until ctx is done. It returns nil on cancellation
// and an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		if err := w.fsw.Close(); err != nil {
			slog.Warn("closing file watcher", "error", err)
		}
	}()

	b := &batch{pending: make(map[string]struct{})}
	defer b.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			rel, report := w.classify(evt)
			if !report {
				continue
			}
			b.add(rel, w.debounce, func() { w.fire(ctx, b) })

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			if isFatalWatchError(err) {
				return fmt.Errorf("watch: %w", err)
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}

// classify registers new directories and decides whether evt is reported.
func (w *Watcher) classify(evt fsnotify.Event) (string, bool) {
	rel, err := filepath.Rel(w.root, evt.Name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if w.ignored(rel) {
		return "", false
	}
	if evt.Has(fsnotify.Create) {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			if err := w.addTree(evt.Name); err != nil {
				slog.Warn("watching new directory", "path", evt.Name, "error", err)
			}
			return "", false
		}
	}
	return rel, w.selected(rel)
}

// fire runs the callback with the pending paths. A run still in progress
// postpones the batch by one debounce period instead of dropping it.
func (w *Watcher) fire(ctx context.Context, b *batch) {
	if ctx.Err() != nil {
		return
	}
	if !b.busy.CompareAndSwap(false, true) {
		slog.Debug("previous run in progress, postponing")
		b.reset(w.debounce)
		return
	}
	defer b.busy.Store(false)

	changed := b.drain()
	if len(changed) == 0 || w.onChange == nil {
		return
	}
	slog.Debug("sources changed", "files", len(changed))
	if err := w.onChange(ctx, changed); err != nil {
		slog.Error("rebuild failed", "error", err)
	}
}

// addTree registers dir and every directory below it that is not ignored.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(w.root, path); relErr == nil && rel != "." && w.ignored(filepath.ToSlash(rel)+"/") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(rel string) bool { return matchAny(w.ignore, rel) }

func (w *Watcher) selected(rel string) bool {
	return len(w.patterns) == 0 || matchAny(w.patterns, rel)
}

func (b *batch) add(rel string, debounce time.Duration, fire func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[rel] = struct{}{}
	if b.timer == nil {
		b.timer = time.AfterFunc(debounce, fire)
		return
	}
	b.timer.Reset(debounce)
}

func (b *batch) reset(debounce time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Reset(debounce)
	}
}

func (b *batch) drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	changed := slices.Sorted(maps.Keys(b.pending))
	clear(b.pending)
	return changed
}

func (b *batch) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func checkPatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("watch: invalid pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return nil
}
