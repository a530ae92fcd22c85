// Package watch recursively watches a project tree for C++ source edits
// and feeds them to the LSP client as didChangeWatchedFiles, debounced so
// a burst of saves triggers one reindex instead of many. Adapted from the
// reference CLI's daemon file watcher.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cppintel/mcp-cpp-bridge/internal/logger"
)

// debounceWindow matches the reference CLI's 500ms coalescing window.
const debounceWindow = 500 * time.Millisecond

var skipDirs = map[string]bool{
	"build":                true,
	"cmake-build-debug":    true,
	"cmake-build-release":  true,
	"out":                  true,
	"bin":                  true,
	"obj":                  true,
}

// Watcher watches projectRoot and calls onChange with the set of changed
// file paths, debounced by debounceWindow.
type Watcher struct {
	fsw         *fsnotify.Watcher
	projectRoot string
	onChange    func([]string)
	log         logger.Logger

	mu      sync.Mutex
	timer   *time.Timer
	changed map[string]bool

	stop chan struct{}
	done chan struct{}
}

// New creates a Watcher rooted at projectRoot and starts it immediately.
// onChange is invoked from an internal goroutine; callers must not block
// it indefinitely, per the notification-handler contract the rest of the
// bridge follows (§5).
func New(projectRoot string, onChange func([]string), log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = &logger.NullLogger{}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:         fsw,
		projectRoot: projectRoot,
		onChange:    onChange,
		log:         log,
		changed:     make(map[string]bool),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	if err := w.addRecursive(projectRoot); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") || skipDirs[base] {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Info("watch: failed to watch %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if isCppFile(event.Name) && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.debounce(event.Name)
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addRecursive(event.Name)
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watch: %v", err)
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.changed[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceWindow, func() {
		w.mu.Lock()
		files := make([]string, 0, len(w.changed))
		for f := range w.changed {
			files = append(files, f)
		}
		w.changed = make(map[string]bool)
		w.mu.Unlock()

		if len(files) > 0 {
			w.onChange(files)
		}
	})
}

func isCppFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cpp", ".cc", ".cxx", ".c++", ".h", ".hpp", ".hxx", ".h++", ".c", ".hh":
		return true
	default:
		return false
	}
}

// Stop halts the watcher and releases its OS resources. Idempotent is not
// guaranteed; callers must call it at most once.
func (w *Watcher) Stop() error {
	close(w.stop)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	<-w.done
	return w.fsw.Close()
}
