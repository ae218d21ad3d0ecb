// Package watch re-runs sequence compaction when a watched directory
// changes. Events are debounced: a run starts only after the directory
// has been quiet for a settle period, so half-copied sequences are not
// renumbered mid-transfer. The same concurrent-writer caveat as the core
// applies; watch mode only reduces the window, it cannot close it.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/steveoakley/wetatest/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors one directory for file changes using fsnotify and
// invokes a run function after changes settle.
type Watcher struct {
	dir       string
	settle    time.Duration
	run       func()
	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}

	mutex   sync.Mutex
	timer   *time.Timer
	running bool
	busy    bool
}

// New creates a watcher for dir. run is invoked after event bursts settle.
func New(dir string, settle time.Duration, run func()) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	return &Watcher{
		dir:       dir,
		settle:    settle,
		run:       run,
		fsWatcher: fsWatcher,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins the event loop. It returns immediately; the loop runs in a
// goroutine until Stop is called.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	log.LogWithFields(log.F("directory", w.dir)).Info("Watching directory")

	go func() {
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if w.ignorable(event) {
					continue
				}
				log.Debug("Directory changed: %s %s", event.Op, event.Name)
				w.schedule()

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.Warn("Watcher error: %v", err)

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// ignorable filters events the watcher must not react to: churn inside
// the renamer's scratch directory, and the events produced by a run this
// watcher triggered itself.
func (w *Watcher) ignorable(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".compactseq-") {
		return true
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.busy
}

// schedule arms (or re-arms) the settle timer.
func (w *Watcher) schedule() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, func() {
		w.mutex.Lock()
		w.busy = true
		w.mutex.Unlock()

		w.run()

		w.mutex.Lock()
		w.busy = false
		w.mutex.Unlock()
	})
}

// Stop ends the event loop and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.stopChan)
	w.fsWatcher.Close()
}
