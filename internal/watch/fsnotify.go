package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a directory tree using fsnotify and emits classified
// Events. fsnotify only watches single directories, so the watcher walks the
// tree at startup and adds newly created directories as they appear.
type Watcher struct {
	mu sync.Mutex

	fsw  *fsnotify.Watcher
	root string

	ignoreDirs map[string]struct{}

	events chan Event
	errors chan error

	closed  bool
	closeCh chan struct{}
	loopWg  sync.WaitGroup
}

// NewWatcher creates a watcher rooted at dir and starts its event loop.
// The root and every non-ignored subdirectory are registered before
// NewWatcher returns, so no early events are missed.
func NewWatcher(dir string, opts ...Option) (*Watcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrNotDirectory
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:        fsw,
		root:       root,
		ignoreDirs: make(map[string]struct{}, len(config.IgnoreDirs)),
		events:     make(chan Event, config.BufferSize),
		errors:     make(chan error, config.BufferSize),
		closeCh:    make(chan struct{}),
	}
	for _, name := range config.IgnoreDirs {
		w.ignoreDirs[name] = struct{}{}
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	w.loopWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Root returns the absolute path the watcher is rooted at.
func (w *Watcher) Root() string {
	return w.root
}

// Events returns the channel of classified change events.
// The channel is closed when the watcher is closed.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watch errors.
// The channel is closed when the watcher is closed.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.loopWg.Wait()

	close(w.events)
	close(w.errors)
	return err
}

// addTree registers dir and every non-ignored subdirectory.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entry, keep walking
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir {
			if _, ignored := w.ignoreDirs[d.Name()]; ignored {
				return filepath.SkipDir
			}
		}
		if addErr := w.fsw.Add(p); addErr != nil {
			w.sendError(addErr)
		}
		return nil
	})
}

// processLoop drains fsnotify until the underlying watcher closes.
func (w *Watcher) processLoop() {
	defer w.loopWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleFSEvent classifies and forwards a raw fsnotify event.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return // chmod or unknown
	}

	if op == OpCreate {
		// A new directory must be registered so events inside it are seen.
		// Directory events themselves are not forwarded; only file changes
		// are reviewable.
		if info, err := os.Stat(fsEvent.Name); err == nil && info.IsDir() {
			if _, ignored := w.ignoreDirs[filepath.Base(fsEvent.Name)]; !ignored {
				if err := w.addTree(fsEvent.Name); err != nil {
					w.sendError(err)
				}
			}
			return
		}
	}

	w.sendEvent(Event{
		Path:      fsEvent.Name,
		Op:        op,
		Timestamp: time.Now(),
	})
}

func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	case <-w.closeCh:
	default:
		// Channel full, drop event.
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	case <-w.closeCh:
	default:
		// Channel full, drop error.
	}
}

// convertOp maps an fsnotify operation to a watch Op. Renames are reported
// as modifications; chmod-only events return 0 and are dropped.
func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Write):
		return OpModify
	case op.Has(fsnotify.Rename):
		return OpModify
	case op.Has(fsnotify.Remove):
		return OpRemove
	default:
		return 0
	}
}
