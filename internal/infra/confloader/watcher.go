package confloader

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher notifies registered callbacks when a watched configuration
// file is rewritten. The server uses it to apply log-level edits
// without a restart.
//
// The parent directory is watched rather than the file itself, so
// editors that replace the file on save (write to a temp file, then
// rename) are still observed. Events for other files in the same
// directory are ignored.
type Watcher struct {
	fs        *fsnotify.Watcher
	files     map[string]struct{}
	callbacks []func(string)
	mu        sync.RWMutex
	done      chan struct{}
	log       *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(log *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.log = log
	}
}

// NewWatcher creates a configuration file watcher.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:    fs,
		files: make(map[string]struct{}),
		done:  make(chan struct{}),
		log:   slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Watch registers a configuration file to watch.
func (w *Watcher) Watch(path string) error {
	dir := filepath.Dir(path)
	if err := w.fs.Add(dir); err != nil {
		w.log.Error("failed to watch config directory",
			"path", dir,
			"error", err,
		)
		return err
	}

	w.mu.Lock()
	w.files[filepath.Clean(path)] = struct{}{}
	w.mu.Unlock()

	w.log.Debug("watching config file",
		"dir", dir,
		"file", filepath.Base(path),
	)
	return nil
}

// OnChange registers a callback invoked with the path of a watched
// file after it changes.
func (w *Watcher) OnChange(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start runs the event loop. It blocks until Stop is called.
func (w *Watcher) Start() {
	w.log.Info("config watch started")

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				w.log.Debug("config watch events channel closed")
				return
			}
			// A save either writes in place or creates a replacement
			// under the same name.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.watched(event.Name) {
				continue
			}
			w.log.Debug("config file changed",
				"file", event.Name,
				"op", event.Op.String(),
			)
			w.notify(event.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				w.log.Debug("config watch errors channel closed")
				return
			}
			w.log.Error("config watch error", "error", err)
		case <-w.done:
			w.log.Debug("config watch received stop signal")
			return
		}
	}
}

// StartAsync runs the event loop in a goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	if err := w.fs.Close(); err != nil {
		w.log.Error("failed to close config watch", "error", err)
		return err
	}
	w.log.Info("config watch stopped")
	return nil
}

func (w *Watcher) watched(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.files[filepath.Clean(path)]
	return ok
}

func (w *Watcher) notify(path string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, cb := range w.callbacks {
		cb(path)
	}
}
