// Package settings owns the nesting configuration.
//
// The Store is the only place the configuration is mutated. Readers get
// immutable snapshots via Snapshot, and interested parties (the watch loop,
// for instance) subscribe to be told when a new snapshot is published.
package settings

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/harrison/nestree/internal/filelock"
	"github.com/harrison/nestree/internal/nesting"
)

// DefaultExtensions are the languages commonly organized with concerns.
var DefaultExtensions = []string{"php", "rb", "py", "js", "ts", "java", "kt", "go"}

// File is the on-disk settings format.
type File struct {
	// Enabled turns nesting on or off
	Enabled bool `yaml:"enabled"`

	// Extensions lists the file extensions eligible for nesting
	Extensions []string `yaml:"extensions"`
}

// Default returns the settings used when no file exists.
func Default() nesting.Config {
	return nesting.Config{
		Enabled:    true,
		Extensions: slices.Clone(DefaultExtensions),
	}
}

// Listener is called with every newly published snapshot.
type Listener func(nesting.Config)

// Store holds the current nesting configuration and persists changes to
// a YAML file.
type Store struct {
	path string

	mu        sync.RWMutex
	current   nesting.Config
	listeners map[uuid.UUID]Listener
	order     []uuid.UUID
}

// Open loads the settings at path. A missing file yields the defaults; it is
// not created until the first Apply.
func Open(path string) (*Store, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		path:      path,
		current:   cfg,
		listeners: make(map[uuid.UUID]Listener),
	}, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() nesting.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

// Apply normalizes next, persists it and publishes it. If persisting fails
// the previous configuration stays active.
func (s *Store) Apply(next nesting.Config) (nesting.Config, error) {
	next = Normalize(next)

	data, err := yaml.Marshal(File{Enabled: next.Enabled, Extensions: next.Extensions})
	if err != nil {
		return nesting.Config{}, fmt.Errorf("failed to encode settings: %w", err)
	}

	s.mu.Lock()
	if err := filelock.LockAndWrite(s.path, data); err != nil {
		s.mu.Unlock()
		return nesting.Config{}, fmt.Errorf("failed to save settings: %w", err)
	}
	s.current = next
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, next)
	return clone(next), nil
}

// Update applies fn to a copy of the current configuration and applies the
// result.
func (s *Store) Update(fn func(*nesting.Config)) (nesting.Config, error) {
	cfg := s.Snapshot()
	fn(&cfg)
	return s.Apply(cfg)
}

// Reload re-reads the settings file, typically after an external edit.
// Listeners are notified only when the configuration actually changed.
func (s *Store) Reload() (bool, error) {
	cfg, err := load(s.path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if equal(s.current, cfg) {
		s.mu.Unlock()
		return false, nil
	}
	s.current = cfg
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, cfg)
	return true, nil
}

// Subscribe registers fn for future snapshots and returns an ID for
// Unsubscribe. Listeners run synchronously, in subscription order, after the
// store's lock has been released.
func (s *Store) Subscribe(fn Listener) uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return id
}

// Unsubscribe removes a listener. Unknown IDs are ignored.
func (s *Store) Unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listeners[id]; !ok {
		return
	}
	delete(s.listeners, id)
	s.order = slices.DeleteFunc(s.order, func(other uuid.UUID) bool { return other == id })
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.listeners[id])
	}
	return out
}

func notify(listeners []Listener, cfg nesting.Config) {
	for _, fn := range listeners {
		fn(clone(cfg))
	}
}

// Normalize trims and lowercases extensions, drops leading dots, empties and
// duplicates, keeping first-seen order.
func Normalize(cfg nesting.Config) nesting.Config {
	seen := make(map[string]bool, len(cfg.Extensions))
	exts := make([]string, 0, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		ext = NormalizeExtension(ext)
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return nesting.Config{Enabled: cfg.Enabled, Extensions: exts}
}

// NormalizeExtension trims, drops leading dots and lowercases one extension.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(ext), "."))
}

func load(path string) (nesting.Config, error) {
	data, found, err := filelock.LockAndRead(path)
	if err != nil {
		return nesting.Config{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if !found {
		return Default(), nil
	}

	// enabled defaults to true when the key is absent
	raw := struct {
		Enabled    *bool     `yaml:"enabled"`
		Extensions *[]string `yaml:"extensions"`
	}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nesting.Config{}, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	cfg := Default()
	if raw.Enabled != nil {
		cfg.Enabled = *raw.Enabled
	}
	if raw.Extensions != nil {
		cfg.Extensions = *raw.Extensions
	}
	return Normalize(cfg), nil
}

func clone(cfg nesting.Config) nesting.Config {
	return nesting.Config{Enabled: cfg.Enabled, Extensions: slices.Clone(cfg.Extensions)}
}

func equal(a, b nesting.Config) bool {
	return a.Enabled == b.Enabled && slices.Equal(a.Extensions, b.Extensions)
}
