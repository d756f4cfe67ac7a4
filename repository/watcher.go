package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// watchEventBuffer is the size of the watch event channel.
	watchEventBuffer = 64

	// defaultDebounce is the wait for further changes before processing.
	defaultDebounce = 500 * time.Millisecond
)

// WatchOperation indicates the type of model file change.
type WatchOperation string

// WatchOpModify and WatchOpDelete enumerate the watch operation types.
const (
	WatchOpModify WatchOperation = "modify"
	WatchOpDelete WatchOperation = "delete"
)

// WatchEvent represents a model file change.
type WatchEvent struct {
	// Path is the watched model file path.
	Path string

	// Operation is the type of change.
	Operation WatchOperation
}

// Watcher watches a fixed set of model files and emits debounced change
// events, suppressing writes that do not alter content.
type Watcher struct {
	paths    map[string]bool
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection
	hashMu sync.Mutex
	hashes map[string]string

	// Output channel
	events chan WatchEvent

	// Metrics
	droppedEvents atomic.Int64
}

// NewWatcher creates a watcher over the given model file paths.
func NewWatcher(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		watched[abs] = true
	}

	return &Watcher{
		paths:    watched,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan WatchEvent, watchEventBuffer),
	}, nil
}

// Events returns the channel of watch events.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start seeds content hashes and begins watching the parent directories
// of the model files. Watching directories rather than the files
// themselves survives the rename-and-replace writes editors perform.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for path := range w.paths {
		if content, err := os.ReadFile(path); err == nil {
			w.setHash(path, contentHash(content))
		}
		dirs[filepath.Dir(path)] = true
	}

	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("Failed to watch directory",
				"dir", dir,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "dir", dir)
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("Model watcher started",
		"files", len(w.paths),
		"debounce", w.debounce)
	return nil
}

// Stop stops the watcher. The events channel is closed by processEvents
// when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel
// overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

func (w *Watcher) getHash(path string) (string, bool) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent accumulates events for watched model files.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if !w.paths[path] {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Model change detected",
		"path", path,
		"op", event.Op.String())
}

// flushPending processes accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := make(map[string]fsnotify.Op, len(w.pending))
	for k, v := range w.pending {
		toProcess[k] = v
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				w.hashMu.Lock()
				delete(w.hashes, path)
				w.hashMu.Unlock()
				w.sendEvent(WatchEvent{Path: path, Operation: WatchOpDelete})
				continue
			}
		}

		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				w.sendEvent(WatchEvent{Path: path, Operation: WatchOpDelete})
			} else {
				w.logger.Warn("Failed to read model file",
					"path", path,
					"error", err)
			}
			continue
		}

		newHash := contentHash(content)
		if oldHash, ok := w.getHash(path); ok && oldHash == newHash {
			continue
		}
		w.setHash(path, newHash)

		w.sendEvent(WatchEvent{Path: path, Operation: WatchOpModify})
	}
}

// sendEvent sends an event to the output channel.
func (w *Watcher) sendEvent(event WatchEvent) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			"path", event.Path,
			"op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
