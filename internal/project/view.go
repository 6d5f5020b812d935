// Package project is the tree view host: it turns a directory on an afero
// filesystem into entries, one level at a time, and lets the nesting
// provider rewrite every level before it is shown.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/harrison/nestree/internal/models"
	"github.com/harrison/nestree/internal/nesting"
)

// Options controls which raw entries a view shows and in what order.
type Options struct {
	// ShowHidden includes names starting with a dot
	ShowHidden bool

	// FoldersFirst sorts directories ahead of files
	FoldersFirst bool

	// ExcludeDirs lists directory names that are never shown
	ExcludeDirs []string
}

// View reads a project tree lazily from fs.
type View struct {
	fs       afero.Fs
	root     string
	provider *nesting.Provider
	opts     Options
	exclude  map[string]bool
}

// NewView creates a view rooted at root. A nil provider shows the raw tree.
func NewView(fs afero.Fs, root string, provider *nesting.Provider, opts Options) *View {
	exclude := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		exclude[name] = true
	}
	return &View{
		fs:       fs,
		root:     filepath.Clean(root),
		provider: provider,
		opts:     opts,
		exclude:  exclude,
	}
}

// RootPath returns the directory the view is rooted at.
func (v *View) RootPath() string {
	return v.root
}

// Fs returns the filesystem the view reads from.
func (v *View) Fs() afero.Fs {
	return v.fs
}

// Options returns the view's filtering and ordering options.
func (v *View) Options() Options {
	return v.opts
}

// Root returns the root directory entry.
func (v *View) Root() models.Entry {
	return v.Directory(v.root)
}

// Directory returns the entry for any directory path, usually one below the
// root found by a scan.
func (v *View) Directory(dir string) models.Entry {
	dir = filepath.Clean(dir)
	return models.DirectoryEntry(models.NewDirectory(filepath.Base(dir), dir, v.loader(dir)))
}

// Stat checks that the root exists and is a directory.
func (v *View) Stat() error {
	info, err := v.fs.Stat(v.root)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", v.root)
	}
	return nil
}

// Children returns parent's children after filtering, ordering and nesting.
// Errors reading the directory are returned as-is; they belong to the parent,
// not to the nesting step.
func (v *View) Children(parent models.Entry) ([]models.Entry, error) {
	raw, err := parent.Children()
	if err != nil {
		return nil, err
	}
	return v.provider.Modify(parent, raw, v.settings()), nil
}

func (v *View) settings() nesting.ViewSettings {
	return nesting.ViewSettings{
		ShowHidden:   v.opts.ShowHidden,
		FoldersFirst: v.opts.FoldersFirst,
	}
}

// loader returns the lazy child accessor for dir. Nothing is read until the
// accessor runs, and every run reads the filesystem again.
func (v *View) loader(dir string) models.ChildLoader {
	return func() ([]models.Entry, error) {
		infos, err := afero.ReadDir(v.fs, dir)
		if err != nil {
			return nil, fmt.Errorf("read dir %q: %w", dir, err)
		}

		infos = v.filter(infos)
		v.sort(infos)

		entries := make([]models.Entry, 0, len(infos))
		for _, info := range infos {
			entries = append(entries, v.entry(dir, info))
		}
		return entries, nil
	}
}

func (v *View) entry(dir string, info os.FileInfo) models.Entry {
	name := info.Name()
	full := filepath.Join(dir, name)

	switch {
	case isSymlink(info):
		// never followed
		return models.OtherEntry(models.Other{Label: name, Path: full, Icon: "symlink"})
	case info.IsDir():
		return models.DirectoryEntry(models.NewDirectory(name, full, v.loader(full)))
	case info.Mode().IsRegular():
		return models.FileEntry(models.File{Name: name, Path: full})
	default:
		return models.OtherEntry(models.Other{Label: name, Path: full, Icon: "special"})
	}
}

func (v *View) filter(infos []os.FileInfo) []os.FileInfo {
	out := infos[:0:0]
	for _, info := range infos {
		name := info.Name()
		if !v.opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if info.IsDir() && v.exclude[name] {
			continue
		}
		out = append(out, info)
	}
	return out
}

func (v *View) sort(infos []os.FileInfo) {
	sort.SliceStable(infos, func(i, j int) bool {
		if v.opts.FoldersFirst && infos[i].IsDir() != infos[j].IsDir() {
			return infos[i].IsDir()
		}
		li, lj := strings.ToLower(infos[i].Name()), strings.ToLower(infos[j].Name())
		if li != lj {
			return li < lj
		}
		return infos[i].Name() < infos[j].Name()
	})
}

func isSymlink(info os.FileInfo) bool {
	return info.Mode()&os.ModeSymlink != 0
}
