// Package watch re-renders a project directory whenever its source
// files change. Events are debounced so a burst of editor writes
// produces one render pass.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

var ignoredDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// Handler runs after the debounce window closes. The changed paths are
// informational; a full re-render over the directory follows either way.
type Handler func(paths []string)

// Watcher debounces filesystem events over a project root.
type Watcher struct {
	root     string
	handler  Handler
	debounce time.Duration
	fsw      *fsnotify.Watcher
	changes  chan string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New creates a watcher over root. Call Run to start it.
func New(root string, handler Handler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		handler:  handler,
		debounce: defaultDebounce,
		fsw:      fsw,
		changes:  make(chan string, 256),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	go w.readEvents(ctx)
	debounceLoop(ctx, w.changes, w.debounce, w.handler)
	return nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if ignoredDirs[d.Name()] || strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) readEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ignoredDirs[filepath.Base(event.Name)] {
				continue
			}
			// Newly created directories need their own watch.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}
			select {
			case w.changes <- event.Name:
			default:
				// Buffer full during a burst; the pending flush
				// re-renders the whole directory anyway.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", "error", err)
		}
	}
}

// debounceLoop batches change paths and invokes the handler once the
// window expires without further events. Split out so it can be tested
// without touching the filesystem.
func debounceLoop(ctx context.Context, changes <-chan string, window time.Duration, handler Handler) {
	var batch []string
	seen := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) > 0 && handler != nil {
			handler(batch)
		}
		batch = nil
		seen = make(map[string]bool)
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case path := <-changes:
			if !seen[path] {
				seen[path] = true
				batch = append(batch, path)
			}
			if timer == nil {
				timer = time.NewTimer(window)
				timerC = timer.C
			} else {
				timer.Reset(window)
			}
		case <-timerC:
			flush()
		}
	}
}
