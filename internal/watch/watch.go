// Package watch re-runs an operation when source files change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chiseltools/chisel/internal/scanner"
	"github.com/chiseltools/chisel/pkg/config"
	"github.com/chiseltools/chisel/pkg/parser"
)

// DefaultDebounce is how long a file must be quiet before it is reported.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a directory tree and invokes a callback for source
// files after edits settle.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	scanner   *scanner.Scanner
	config    *config.Config
	root      string
	debounce  time.Duration
	callback  func(path string)
	onError   func(err error)

	mu      sync.Mutex
	pending map[string]time.Time
}

// New creates a watcher rooted at root. Exclusion rules come from cfg,
// matching what file-set resolution would skip.
func New(root string, cfg *config.Config, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		scanner:   scanner.New(cfg),
		config:    cfg,
		root:      root,
		debounce:  debounce,
		pending:   make(map[string]time.Time),
	}, nil
}

// SetCallback sets the function invoked for each settled file change.
func (w *Watcher) SetCallback(cb func(path string)) {
	w.callback = cb
}

// SetErrorHandler sets the function invoked for watch errors.
func (w *Watcher) SetErrorHandler(fn func(err error)) {
	w.onError = fn
}

// Start registers the directory tree and blocks processing events until
// the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != w.root && w.scanner.Excluded(w.root, path) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
	if err != nil {
		return err
	}

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// handleEvent records a write or create to a supported source file.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	path := event.Name
	if w.scanner.Excluded(w.root, path) {
		return
	}
	if parser.DetectLanguage(path) == parser.LangUnknown {
		return
	}

	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// processDebounced periodically flushes files that have been quiet for
// the debounce period.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) processPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for path, lastMod := range w.pending {
		if now.Sub(lastMod) < w.debounce {
			continue
		}
		delete(w.pending, path)
		if w.callback != nil {
			go w.callback(path)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// WatchedPaths returns the directories currently registered.
func (w *Watcher) WatchedPaths() []string {
	return w.fsWatcher.WatchList()
}
