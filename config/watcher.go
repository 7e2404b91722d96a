package config

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 500 * time.Millisecond

// ChangeCallback receives the watched files that changed since the last call
type ChangeCallback func(paths []string) error

// ReloadCallback is called with the freshly loaded config after a config file changes
type ReloadCallback func(*Config) error

// Watcher watches a set of files and calls back, debounced, when they change.
// Parent directories are watched rather than the files themselves so that
// editors which save by rename are still seen.
type Watcher struct {
	watcher        *fsnotify.Watcher
	files          map[string]bool
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	changed        map[string]bool

	isOwnWrite      bool
	isOwnWriteMutex sync.Mutex
}

var (
	globalWatcher   *Watcher
	globalWatcherMu sync.Mutex
)

// NewWatcher creates a watcher for paths
func NewWatcher(paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("nothing to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:        fw,
		files:          make(map[string]bool),
		debouncePeriod: DefaultDebounce,
		changed:        make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
		dirs[dir] = true
	}

	return w, nil
}

// SetDebounce changes the quiet period before callbacks run
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debouncePeriod = d
}

// OnChange registers a callback for changes to any watched file
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// OnReload registers a callback that receives the reloaded configuration
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.OnChange(func(paths []string) error {
		Reset()
		cfg, err := Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		logger.Infow("Config reloaded", logger.FieldFile, strings.Join(paths, ","))
		return callback(cfg)
	})
}

// MarkOwnWrite marks the next write as coming from us (prevents reload loops)
func (w *Watcher) MarkOwnWrite() {
	w.isOwnWriteMutex.Lock()
	defer w.isOwnWriteMutex.Unlock()
	w.isOwnWrite = true
}

func (w *Watcher) checkOwnWrite() bool {
	w.isOwnWriteMutex.Lock()
	defer w.isOwnWriteMutex.Unlock()

	if w.isOwnWrite {
		w.isOwnWrite = false
		return true
	}
	return false
}

// Start watches until ctx is done or Stop is called
func (w *Watcher) Start(ctx context.Context) {
	go w.watchLoop(ctx)
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			name := filepath.Clean(event.Name)
			if !w.files[name] || isBackupFile(name) {
				continue
			}

			if w.checkOwnWrite() {
				logger.Debugw("Watcher ignoring own write", logger.FieldFile, name)
				continue
			}

			logger.Debugw("Watcher detected change",
				logger.FieldFile, name,
				"op", event.Op.String())
			w.scheduleCallbacks(name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// scheduleCallbacks debounces rapid file changes
func (w *Watcher) scheduleCallbacks(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.changed[name] = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.changed))
	for p := range w.changed {
		paths = append(paths, p)
	}
	w.changed = make(map[string]bool)
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	sort.Strings(paths)
	for _, callback := range callbacks {
		if err := callback(paths); err != nil {
			// keep calling the others
			logger.Warnw("Watcher callback error", logger.FieldError, err)
		}
	}
}

// Stop stops watching
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

// isBackupFile reports whether path is one of the rotated .back1..3 copies
func isBackupFile(path string) bool {
	ext := filepath.Ext(path)
	return len(ext) == len(".back1") && strings.HasPrefix(ext, ".back") && ext[5] >= '1' && ext[5] <= '9'
}

// SetGlobalWatcher sets the watcher that config writes mark as their own
func SetGlobalWatcher(w *Watcher) {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	globalWatcher = w
}

// GetGlobalWatcher returns the global watcher instance
func GetGlobalWatcher() *Watcher {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	return globalWatcher
}
