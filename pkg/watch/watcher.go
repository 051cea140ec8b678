// Package watch re-runs test cases when their YAML definitions change
// on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDefault absorbs editor write bursts (save + rename + chmod)
// into a single handler invocation per file.
const debounceDefault = 500 * time.Millisecond

// Watcher watches a directory of test-case YAML files and invokes the
// handler for each file that is created or modified.
type Watcher struct {
	dir      string
	handler  func(path string)
	debounce time.Duration
	log      *zap.Logger
}

// New creates a watcher over dir. The handler runs on the watch
// goroutine; long executions delay subsequent events but are never
// dropped.
func New(dir string, handler func(path string)) *Watcher {
	return &Watcher{
		dir:      dir,
		handler:  handler,
		debounce: debounceDefault,
		log:      zap.NewNop(),
	}
}

// SetLogger replaces the no-op default.
func (w *Watcher) SetLogger(log *zap.Logger) {
	if log != nil {
		w.log = log
	}
}

// Run blocks until ctx is cancelled, dispatching debounced change
// events to the handler.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching for test case changes", zap.String("dir", w.dir))

	// Paths accumulated since the last flush. A single timer resets on
	// each event; when it fires the whole batch is handled in order.
	pending := make(map[string]bool)

	debounceTimer := time.NewTimer(w.debounce)
	debounceTimer.Stop()
	defer debounceTimer.Stop()

	flush := func() {
		batch := make([]string, 0, len(pending))
		for p := range pending {
			batch = append(batch, p)
		}
		pending = make(map[string]bool)
		for _, p := range batch {
			w.safeHandle(p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-debounceTimer.C:
			flush()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isCaseFile(event.Name) {
				continue
			}

			pending[event.Name] = true

			if !debounceTimer.Stop() {
				select {
				case <-debounceTimer.C:
				default:
				}
			}
			debounceTimer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// safeHandle shields the watch loop from a panicking handler.
func (w *Watcher) safeHandle(path string) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("handler panic", zap.String("path", path), zap.Any("panic", r))
		}
	}()
	w.handler(path)
}

// ScanExisting invokes the handler for every test-case file already in
// dir. Used at startup so cases written while the watcher was down are
// not missed.
func ScanExisting(dir string, handler func(path string)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if isCaseFile(path) {
			handler(path)
		}
	}
	return nil
}

// isCaseFile reports whether path looks like a test-case definition
// (YAML, not an editor temp file).
func isCaseFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
