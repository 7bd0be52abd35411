package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports when files open in the editor change on disk, so
// clean buffers can be reloaded and dirty ones flagged instead of being
// silently clobbered on the next save.
type FileWatcher struct {
	fw      *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

// NewFileWatcher starts the watch loop. Callers must Close it.
func NewFileWatcher() (*FileWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FileWatcher{
		fw:      fw,
		changes: make(chan string, 8),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *FileWatcher) run() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Drop the change on the floor if the app is behind; the
			// buffer compares content on reload anyway.
			select {
			case w.changes <- ev.Name:
			default:
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// Add starts watching a file. Editors that write via rename replace the
// inode, so the parent directory is watched and events filtered by name.
func (w *FileWatcher) Add(path string) error {
	if path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.fw.Add(filepath.Dir(abs))
}

// Changes returns the channel of files modified outside the editor.
func (w *FileWatcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
