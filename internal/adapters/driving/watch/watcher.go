// Package watch imports spreadsheets dropped into a directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driving"
	"github.com/custodia-labs/propdesk/internal/logger"
)

// DefaultSettle is how long a file must stop changing before it is imported.
const DefaultSettle = 500 * time.Millisecond

// Event reports the outcome of importing one file.
type Event struct {
	Path   string
	Result *domain.ImportResult
	Err    error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period before a changed file is imported.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// WithForce imports eligible rows even when blocking violations exist.
func WithForce(force bool) Option {
	return func(w *Watcher) {
		w.opts.Force = force
	}
}

// WithHandler receives an Event after each import attempt.
func WithHandler(fn func(Event)) Option {
	return func(w *Watcher) {
		w.handler = fn
	}
}

// Watcher imports .xlsx files created or rewritten in a directory.
// Files are processed one at a time.
type Watcher struct {
	importer driving.ImportService
	opts     domain.ImportOptions
	settle   time.Duration
	handler  func(Event)
}

// New creates a watcher that feeds files to importer.
func New(importer driving.ImportService, opts ...Option) *Watcher {
	w := &Watcher{
		importer: importer,
		settle:   DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches dir until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	if w.importer == nil {
		return domain.ErrNotImplemented
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching %s for spreadsheets", dir)

	ready := make(chan string)
	done := make(chan struct{})
	timers := make(map[string]*time.Timer)
	defer func() {
		close(done)
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			path, ok := importable(ev)
			if !ok {
				continue
			}
			if t, exists := timers[path]; exists {
				// A stopped-late timer is already queued on ready.
				if t.Stop() {
					t.Reset(w.settle)
				}
				continue
			}
			timers[path] = time.AfterFunc(w.settle, func() {
				select {
				case ready <- path:
				case <-done:
				}
			})

		case path := <-ready:
			delete(timers, path)
			w.process(ctx, path)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	ev := Event{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		ev.Err = fmt.Errorf("read %s: %w", path, err)
	} else {
		// A started import runs to completion or its first failure.
		ev.Result, ev.Err = w.importer.Import(context.WithoutCancel(ctx), data, w.opts, nil)
	}

	if ev.Err != nil {
		logger.Warn("import %s failed: %v", filepath.Base(path), ev.Err)
	} else {
		logger.Info("imported %s: %d written, %d skipped", filepath.Base(path), ev.Result.Written, ev.Result.Skipped)
	}
	if w.handler != nil {
		w.handler(ev)
	}
}

// importable returns the file path when ev is a create or write of an
// .xlsx workbook. Office lock files and hidden files are ignored.
func importable(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}

	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return "", false
	}

	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return ev.Name, true
}
