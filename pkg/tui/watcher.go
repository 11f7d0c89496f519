package tui

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/mintnetwork/voteflow/pkg/store"
)

const watchDebounce = 200 * time.Millisecond

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// StartWatcher watches the data directory for changes to the persisted vote
// state and sends StoreChangedMsg. Watcher errors are logged to logger, which
// may be nil.
func StartWatcher(dir string, program Sender, logger *slog.Logger) (func(), error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var debounceTimer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Chmod || !isStateFile(event.Name) {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(watchDebounce, func() {
					program.Send(StoreChangedMsg{})
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watching data directory", "dir", dir, "error", err)

			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}

// isStateFile matches the files the storage backends write, including the
// SQLite journal files.
func isStateFile(path string) bool {
	name := filepath.Base(path)
	switch {
	case name == store.StateFile:
		return true
	case strings.HasPrefix(name, store.DatabaseFile):
		return true
	default:
		return false
	}
}
