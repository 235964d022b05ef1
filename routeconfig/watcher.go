package routeconfig

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Invalidator drops a cached route table.
type Invalidator interface {
	Delete(ctx context.Context, key string) error
}

// Watcher deletes the cached route table whenever the routes document
// changes on disk, so the next process start reloads it from source.
type Watcher struct {
	path     string
	key      string
	cache    Invalidator
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	onChange func()

	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long to wait for further events before
// invalidating. Defaults to 100ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithWatchLogger sets the logger.
func WithWatchLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithOnChange registers a callback run after each invalidation.
func WithOnChange(f func()) WatcherOption {
	return func(w *Watcher) {
		w.onChange = f
	}
}

// NewWatcher returns a watcher for the routes document at path that
// invalidates key in cache.
func NewWatcher(path, key string, cache Invalidator, opts ...WatcherOption) (*Watcher, error) {
	if cache == nil {
		return nil, errors.New("routeconfig: watcher needs a cache")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:      absPath,
		key:       key,
		cache:     cache,
		watcher:   fsWatcher,
		logger:    zap.NewNop(),
		debounce:  100 * time.Millisecond,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start watches the directory holding the routes document. Watching the
// directory rather than the file survives editors that replace the file.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.running = true
	go w.loop(ctx)

	w.logger.Info("watching routes file", zap.String("path", w.path))

	return nil
}

// Stop ends watching and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh

	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.stoppedCh)

	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.relevant(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.invalidate(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("routes file watch error", zap.Error(err))
		}
	}
}

// relevant reports whether event changes the routes document.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *Watcher) invalidate(ctx context.Context) {
	if err := w.cache.Delete(ctx, w.key); err != nil {
		w.logger.Error("invalidate route cache", zap.String("key", w.key), zap.Error(err))
		return
	}

	w.logger.Info("routes file changed, cache invalidated",
		zap.String("path", w.path),
		zap.String("key", w.key),
	)

	if w.onChange != nil {
		w.onChange()
	}
}
