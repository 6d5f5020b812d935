// Package watch reports filesystem changes under a project root, plus a few
// extra files such as the settings file, as debounced batches.
package watch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op represents the type of file operation
type Op int

const (
	// Created indicates a new file or directory appeared
	Created Op = iota
	// Written indicates a file was written to
	Written
	// Removed indicates a file was removed or renamed away
	Removed
)

// String returns a human-readable representation of the operation
func (op Op) String() string {
	switch op {
	case Created:
		return "created"
	case Written:
		return "written"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is one filesystem change.
type Event struct {
	Path      string    // Absolute path to the file
	Op        Op        // Type of operation
	Timestamp time.Time // When the event occurred
}

// DefaultDebounce is the default quiet period before a batch is delivered
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// ExcludeDirs lists directory names that are neither watched nor reported
	ExcludeDirs []string
	// IncludeHidden watches directories whose name starts with "."
	IncludeHidden bool
	// Files are extra files watched outside the tree filters
	Files []string
	// Debounce is the quiet period that closes a batch (0 = DefaultDebounce)
	Debounce time.Duration
}

// Watcher watches a project tree and delivers coalesced change batches.
type Watcher struct {
	watcher *fsnotify.Watcher
	batches chan []Event
	errors  chan error
	done    chan struct{}
	root    string
	exclude map[string]bool
	files   map[string]bool
	opts    Options

	mu      sync.Mutex
	pending map[string]Event
	timer   *time.Timer
	closed  bool
}

// New starts watching root and every directory below it.
func New(root string, opts Options) (*Watcher, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: watcher,
		batches: make(chan []Event, 16),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
		root:    root,
		exclude: make(map[string]bool, len(opts.ExcludeDirs)),
		files:   make(map[string]bool, len(opts.Files)),
		opts:    opts,
		pending: make(map[string]Event),
	}
	for _, name := range opts.ExcludeDirs {
		w.exclude[name] = true
	}

	if err := w.addRecursive(root); err != nil {
		watcher.Close()
		return nil, err
	}

	// Files are watched through their parent directory so atomic renames
	// over them are still seen.
	for _, file := range opts.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		w.files[abs] = true
		// a home that does not exist yet is not an error
		if err := watcher.Add(filepath.Dir(abs)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			watcher.Close()
			return nil, err
		}
	}

	go w.processEvents()

	return w, nil
}

// addRecursive adds dir and all its visible subdirectories to the watcher
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) || os.IsPermission(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != w.root && w.skipDir(info.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		return nil
	})
}

func (w *Watcher) skipDir(name string) bool {
	return w.exclude[name] || (!w.opts.IncludeHidden && strings.HasPrefix(name, "."))
}

// inTree reports whether path is inside the root and outside any skipped
// directory.
func (w *Watcher) inTree(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	parts := strings.Split(rel, string(filepath.Separator))
	for _, part := range parts[:len(parts)-1] {
		if w.skipDir(part) {
			return false
		}
	}
	// the last element may be a file; hidden files are shown only with hidden dirs
	last := parts[len(parts)-1]
	return w.opts.IncludeHidden || !strings.HasPrefix(last, ".")
}

// processEvents converts fsnotify events until the watcher closes
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	tracked := w.files[path]
	if !tracked && !w.inTree(path) {
		return
	}

	if event.Has(fsnotify.Create) && !tracked {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() && !w.skipDir(info.Name()) {
			if err := w.addRecursive(path); err != nil {
				w.sendError(err)
			}
		}
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = Created
	case event.Has(fsnotify.Write):
		op = Written
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = Removed
	default:
		// chmod
		return
	}

	w.queue(Event{Path: path, Op: op, Timestamp: time.Now()})
}

// queue adds event to the open batch and restarts the quiet period
func (w *Watcher) queue(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.pending[event.Path] = event
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.flush)
}

// flush delivers the pending batch, ordered by path
func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := make([]Event, 0, len(w.pending))
	for _, event := range w.pending {
		batch = append(batch, event)
	}
	w.pending = make(map[string]Event)
	w.timer = nil
	w.mu.Unlock()

	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })

	select {
	case w.batches <- batch:
	case <-w.done:
	default:
		// Batch channel full, the consumer is behind; drop it
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Error channel full, drop the error
	}
}

// Batches returns the channel of coalesced change batches
func (w *Watcher) Batches() <-chan []Event {
	return w.batches
}

// Errors returns the channel for receiving errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Root returns the directory being watched
func (w *Watcher) Root() string {
	return w.root
}

// Tracks reports whether path is one of the extra files passed in Options.
func (w *Watcher) Tracks(path string) bool {
	return w.files[path]
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	close(w.done)

	return w.watcher.Close()
}
