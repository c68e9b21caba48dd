// Package watch rebuilds the glossary whenever its input file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/glossarybuilder/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc runs one build.
type RebuildFunc func(ctx context.Context) error

// Watcher watches a single input file.
type Watcher struct {
	input    string
	debounce time.Duration
	rebuild  RebuildFunc
}

// New returns a watcher that calls rebuild after changes to input.
func New(input string, rebuild RebuildFunc) *Watcher {
	return &Watcher{input: filepath.Clean(input), debounce: DefaultDebounce, rebuild: rebuild}
}

// WithDebounce overrides the debounce window.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run watches until ctx is cancelled. The directory of the input is watched
// rather than the file so editors that replace the file on save keep working.
// Rebuild errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		_ = fsw.Close()
	}()

	dir := filepath.Dir(w.input)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Info("Watching glossary input", logfields.Input(w.input))

	rebuildReq, trigger, stop := newDebouncer(w.debounce)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.Matches(ev) {
				slog.Debug("Input change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		case <-rebuildReq:
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// Matches reports whether ev changes the watched input.
func (w *Watcher) Matches(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.input {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// newDebouncer returns a request channel, a trigger that (re)arms the timer,
// and a stop function.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
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
