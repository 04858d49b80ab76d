// Package watch rebuilds a package whenever its sources change. Used by the
// build command's watch mode during iterative development.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/pkgforge/internal/logfields"
)

// Watcher monitors a package working directory and triggers a rebuild
// callback on changes, debounced so editor save bursts produce one rebuild.
type Watcher struct {
	workingDir   string
	buildDir     string
	rebuild      func(ctx context.Context) error
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	rebuildChan  chan struct{}
	debounceTime time.Duration
}

// NewWatcher creates a watcher over workingDir. Events under buildDir are
// ignored so a rebuild never retriggers itself.
func NewWatcher(workingDir, buildDir string, rebuild func(ctx context.Context) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absDir, err := filepath.Abs(workingDir)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	absBuild, err := filepath.Abs(buildDir)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve build directory: %w", err)
	}

	return &Watcher{
		workingDir:   absDir,
		buildDir:     absBuild,
		rebuild:      rebuild,
		watcher:      fsw,
		stopChan:     make(chan struct{}),
		rebuildChan:  make(chan struct{}, 1),
		debounceTime: 500 * time.Millisecond,
	}, nil
}

// Start begins monitoring the working directory.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.watcher.Add(w.workingDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.workingDir, err)
	}

	slog.Info("Watching for changes", logfields.Path(w.workingDir))

	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	close(w.stopChan)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				slog.Debug("Source change detected", logfields.Path(event.Name))
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.rebuildChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceTime, func() {
				if err := w.rebuild(ctx); err != nil {
					slog.Error("Rebuild failed", logfields.Error(err))
				}
			})
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.rebuildChan <- struct{}{}:
	default:
		// Rebuild already pending.
	}
}

// ignored filters out events from the build directory and hidden files.
func (w *Watcher) ignored(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if abs == w.buildDir || strings.HasPrefix(abs, w.buildDir+string(filepath.Separator)) {
		return true
	}
	return strings.HasPrefix(filepath.Base(abs), ".")
}
