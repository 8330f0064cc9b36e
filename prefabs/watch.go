package prefabs

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports edits to spec and script files under the watched
// directories. Paths arrive on Events after debouncing.
type Watcher struct {
	fs      *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	done    chan struct{}
	closing sync.Once
}

const debounceWindow = 100 * time.Millisecond

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fsw,
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.closing.Do(func() {
		close(w.done)
		err = w.fs.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) loop() {
	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod || !watchable(ev.Name) {
				continue
			}
			// editors fire several events per save; collapse the burst
			now := time.Now()
			if now.Sub(seen[ev.Name]) < debounceWindow {
				continue
			}
			seen[ev.Name] = now
			w.Events <- ev.Name
		}
	}
}

func watchable(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}
