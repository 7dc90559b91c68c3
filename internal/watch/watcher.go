package watch

import (
	"context"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watcher forwards OS-level change notifications for a single file.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan struct{}
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{fsw: fsw, events: make(chan struct{}, 1)}, nil
}

// Events delivers one signal per change burst. The channel holds at most one
// pending signal; the Monitor decides what, if anything, actually changed.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Run forwards notifications until the context is cancelled, then closes the
// events channel.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			switch {
			case ev.Op&fsnotify.Write != 0,
				ev.Op&fsnotify.Create != 0,
				ev.Op&fsnotify.Remove != 0,
				ev.Op&fsnotify.Rename != 0:
				select {
				case w.events <- struct{}{}:
				default: // a signal is already pending
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}
