package calllog

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"callscope/internal/util"
)

// Watcher notifies when a call-log export file changes, so a live view
// can refresh immediately instead of waiting for the next poll tick.
// Events are coalesced: a burst of writes produces at most one pending
// notification.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
}

// NewWatcher watches the export file at path. The containing directory
// is watched rather than the file itself because export tools typically
// replace the file by rename.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		path:    filepath.Clean(path),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Call log watch error: " + err.Error())
		case <-w.done:
			return
		}
	}
}

// Changes returns the change notification channel.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
