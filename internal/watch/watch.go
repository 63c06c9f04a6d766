// Package watch reports changes to the section documents and page template so
// serve mode can rebuild the cached page.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-sitegen/internal/logger"
)

// DefaultDebounce coalesces bursts of editor writes into one change.
const DefaultDebounce = 150 * time.Millisecond

// Change names the files touched since the last notification.
type Change struct {
	Paths []string
	At    time.Time
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is emitted.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher observes directories and individual files.
type Watcher struct {
	targets  []string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// New returns a watcher over targets. Directories are watched for section
// documents, files for direct edits.
func New(targets []string, options ...Option) *Watcher {
	w := &Watcher{targets: targets, debounce: DefaultDebounce, logger: logger.Discard()}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Watch starts watching and returns a channel of debounced changes. The
// channel is closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	if len(w.targets) == 0 {
		return nil, errors.New("watch: no targets")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}

	// Files are watched through their parent directory so editors that
	// replace files on save keep triggering events.
	watched := map[string]bool{}
	for _, target := range w.targets {
		dir := target
		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			dir = filepath.Dir(target)
		}
		if watched[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: add %s: %w", dir, err)
		}
		watched[dir] = true
	}

	w.mu.Lock()
	w.watcher = fsw
	w.mu.Unlock()

	out := make(chan Change)
	go w.loop(ctx, fsw, out)
	return out, nil
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Change) {
	defer close(out)
	defer fsw.Close()

	var (
		pending = map[string]bool{}
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			path, relevant := w.handleEvent(event)
			if !relevant {
				continue
			}
			pending[path] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		case <-fire:
			change := Change{At: time.Now()}
			for path := range pending {
				change.Paths = append(change.Paths, path)
			}
			pending = map[string]bool{}
			fire = nil
			w.logger.Debug("change detected", "paths", change.Paths)
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleEvent filters events down to content edits on section documents,
// templates and configuration.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return "", false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json", ".html", ".tmpl", ".yaml", ".yml", ".toml", ".css", ".js":
		return event.Name, true
	default:
		return "", false
	}
}
