package gui

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/thiagokokada/gitk-refs/internal/debounce"
	. "modernc.org/tk9.0"
)

const autoReloadDebounceDelay = 350 * time.Millisecond

type autoReloadState struct {
	mu         sync.Mutex
	configured bool
	enabled    bool
	watcher    *fsnotify.Watcher
	debounce   *debounce.Debouncer
}

func (a *Controller) initAutoReload(requested bool) {
	a.state.watch.mu.Lock()
	a.state.watch.configured = requested
	a.state.watch.mu.Unlock()
	if requested {
		if err := a.enableAutoReload(); err != nil {
			slog.Error("auto reload disabled", slog.Any("error", err))
			a.state.watch.mu.Lock()
			a.state.watch.configured = false
			a.state.watch.mu.Unlock()
		}
	}
	a.updateReloadButtonLabel()
}

func (a *Controller) enableAutoReload() error {
	w := &a.state.watch
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.configured || w.enabled {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	for path := range watchPaths(a.repo.path) {
		slog.Debug("adding path to FS watcher", slog.String("path", path))
		if err := watcher.Add(path); err != nil {
			err := errors.Join(err, watcher.Close())
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	debounce.Ensure(&w.debounce, autoReloadDebounceDelay, func() {
		PostEvent(a.reloadRefsAsync, false)
	})
	w.watcher = watcher
	w.enabled = true
	go a.watchLoop(watcher)
	return nil
}

func (a *Controller) disableAutoReload() {
	w := &a.state.watch
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			slog.Error("watcher close", slog.Any("error", err))
		}
		w.watcher = nil
	}
	w.enabled = false
}

func (a *Controller) shutdown() {
	a.disableAutoReload()
}

func (a *Controller) watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if shouldIgnoreWatchPath(ev.Name) {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			a.scheduleAutoReload()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

func (a *Controller) scheduleAutoReload() {
	w := &a.state.watch
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled || w.debounce == nil {
		return
	}
	slog.Debug("auto reload scheduled")
	w.debounce.Trigger()
}

// watchPaths yields the git directory and every directory below refs/, since
// fsnotify does not watch recursively. Packed refs and HEAD live in the git
// directory itself.
func watchPaths(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if root == "" {
			return
		}
		gitDir := filepath.Join(root, ".git")
		info, err := os.Stat(gitDir)
		if err != nil || !info.IsDir() {
			yield(root)
			return
		}
		if !yield(gitDir) {
			return
		}
		var dirs []string
		err = filepath.WalkDir(filepath.Join(gitDir, "refs"), func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			slog.Debug("walk refs", slog.Any("error", err))
		}
		slices.Sort(dirs)
		for _, dir := range dirs {
			if !yield(dir) {
				return
			}
		}
	}
}

func shouldIgnoreWatchPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".lock" || ext == ".ipc" {
		return true
	}
	switch filepath.Base(name) {
	case "index", "ORIG_HEAD", "FETCH_HEAD", "COMMIT_EDITMSG":
		return true
	}
	return false
}

func (a *Controller) updateReloadButtonLabel() {
	if a.ui.reloadButton == nil {
		return
	}
	a.state.watch.mu.Lock()
	configured := a.state.watch.configured
	enabled := a.state.watch.enabled
	a.state.watch.mu.Unlock()
	a.ui.reloadButton.Configure(Txt(reloadButtonLabel(configured, enabled)))
}

func reloadButtonLabel(configured, enabled bool) string {
	if !configured {
		return "Reload"
	}
	state := "Off"
	if enabled {
		state = "On"
	}
	return fmt.Sprintf("Reload (Auto %s)", state)
}

func (a *Controller) onReloadButton() {
	a.state.watch.mu.Lock()
	configured := a.state.watch.configured
	enabled := a.state.watch.enabled
	a.state.watch.mu.Unlock()
	if !configured {
		a.reloadRefsAsync()
		return
	}
	if enabled {
		a.disableAutoReload()
	} else if err := a.enableAutoReload(); err != nil {
		slog.Error("auto reload enable failed", slog.Any("error", err))
	}
	a.updateReloadButtonLabel()
	a.reloadRefsAsync()
}
