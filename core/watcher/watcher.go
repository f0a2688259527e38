package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports library files that were created or rewritten in watched directories.
type Watcher struct {
	fs       *fsnotify.Watcher
	onChange func(path string)
	filter   func(path string) bool
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	watched map[string]struct{}
	closed  bool
	done    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter restricts reports to paths accepted by filter.
func WithFilter(filter func(path string) bool) Option {
	return func(w *Watcher) {
		w.filter = filter
	}
}

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a watcher calling onChange once per settled file change.
// Event handling starts immediately and runs until Close.
func New(onChange func(path string), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fsw,
		onChange: onChange,
		filter:   func(string) bool { return true },
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		timers:   make(map[string]*time.Timer),
		watched:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.handleEvents()
	return w, nil
}

// Add watches dirs. Missing directories are skipped. It returns the directories
// that are now watched.
func (w *Watcher) Add(dirs ...string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var added []string
	for _, dir := range dirs {
		clean := filepath.Clean(dir)
		if _, ok := w.watched[clean]; ok {
			added = append(added, clean)
			continue
		}
		info, err := os.Stat(clean)
		if err != nil || !info.IsDir() {
			w.logger.Debug("Skipping watch of missing directory", zap.String("dir", clean))
			continue
		}
		if err := w.fs.Add(clean); err != nil {
			w.logger.Warn("Failed to watch directory", zap.String("dir", clean), zap.Error(err))
			continue
		}
		w.watched[clean] = struct{}{}
		w.logger.Info("Started watching", zap.String("dir", clean))
		added = append(added, clean)
	}
	return added
}

// Close stops watching and cancels pending reports.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) handleEvents() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Rebuilt libraries appear as a create, a write, or a rename into place.
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") || !w.filter(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

// schedule restarts the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() { w.fire(path, timer) })
	w.timers[path] = timer
}

// fire reports path once its timer expires. A timer that was replaced
// while it was already running leaves the report to its successor.
func (w *Watcher) fire(path string, timer *time.Timer) {
	w.mu.Lock()
	if w.closed || w.timers[path] != timer {
		w.mu.Unlock()
		return
	}
	delete(w.timers, path)
	w.mu.Unlock()

	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	w.logger.Debug("Library file changed", zap.String("path", path))
	w.onChange(path)
}
