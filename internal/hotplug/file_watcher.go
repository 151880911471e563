package hotplug

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"audiomatch/internal/logging"
)

// fileWatcher reports writes to a single file. The parent directory is
// watched so exports replaced via rename are still seen.
type fileWatcher struct {
	path   string
	emit   Emitter
	logger *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	running bool
}

func newFileWatcher(path string, logger *slog.Logger, emit Emitter) *fileWatcher {
	return &fileWatcher{
		path:   filepath.Clean(path),
		emit:   emit,
		logger: logging.NewComponentLogger(logger, "hotplug-file"),
	}
}

func (w *fileWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return err
	}
	w.watcher = watcher
	w.running = true
	go w.loop(ctx, watcher)
	w.logger.Debug("foreign file watch started", logging.String("path", w.path))
	return nil
}

func (w *fileWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || event.Op&relevant == 0 {
				continue
			}
			w.emit(Trigger{Reason: ReasonForeignFile, Detail: event.Op.String(), At: time.Now()})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.WarnWithContext(w.logger, "foreign file watch error", "file_watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "browser export changes may be missed"),
			)
		}
	}
}

func (w *fileWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.running = false
}

func (w *fileWatcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *fileWatcher) Name() string { return "file" }
