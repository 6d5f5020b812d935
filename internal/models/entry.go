package models

import (
	"strings"
)

// Kind identifies which variant an Entry holds.
type Kind int

const (
	// KindOther is anything that is neither a file nor a directory (symlinks,
	// placeholders, host-specific nodes). It always passes through untouched.
	KindOther Kind = iota
	// KindFile is a regular file.
	KindFile
	// KindDirectory is a directory with lazily loaded children.
	KindDirectory
	// KindComposite is a file that exposes a sibling directory's children.
	KindComposite
)

// String returns a human-readable representation of the kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindComposite:
		return "composite"
	default:
		return "other"
	}
}

// ChildLoader returns the current children of a directory. It is called on
// every access; implementations must not cache.
type ChildLoader func() ([]Entry, error)

// Presentation is everything a renderer needs to draw one entry.
type Presentation struct {
	Label      string // Text shown in the tree
	Icon       string // Icon key, derived from the extension for files
	Decoration string // Optional trailing annotation
}

// File is a file entry as supplied by the host.
type File struct {
	Name string
	Path string
}

// BaseName returns the name without its final extension.
// "User.php" -> "User", "archive.tar.gz" -> "archive.tar", ".env" -> ".env"
func (f File) BaseName() string {
	ext, ok := f.Extension()
	if !ok {
		return f.Name
	}
	return f.Name[:len(f.Name)-len(ext)-1]
}

// Extension returns the text after the last dot. A leading dot alone does not
// start an extension. A trailing dot yields ("", true).
func (f File) Extension() (string, bool) {
	idx := strings.LastIndexByte(f.Name, '.')
	if idx <= 0 {
		return "", false
	}
	return f.Name[idx+1:], true
}

// Presentation returns how the file is drawn.
func (f File) Presentation() Presentation {
	icon := "file"
	if ext, ok := f.Extension(); ok && ext != "" {
		icon = "file-" + strings.ToLower(ext)
	}
	return Presentation{Label: f.Name, Icon: icon}
}

// Directory is a directory entry as supplied by the host.
type Directory struct {
	Name   string
	Path   string
	loader ChildLoader
}

// NewDirectory creates a directory whose children are produced by loader.
// A nil loader means the directory is always empty.
func NewDirectory(name, path string, loader ChildLoader) Directory {
	return Directory{Name: name, Path: path, loader: loader}
}

// Children returns the directory's current children.
func (d Directory) Children() ([]Entry, error) {
	if d.loader == nil {
		return nil, nil
	}
	return d.loader()
}

// Presentation returns how the directory is drawn.
func (d Directory) Presentation() Presentation {
	return Presentation{Label: d.Name, Icon: "folder"}
}

// Other is an entry the nesting core knows nothing about.
type Other struct {
	Label string
	Path  string
	Icon  string
}

// Entry is one item at a single tree level. Exactly one of the variant
// pointers is set, selected by kind. The zero Entry is an empty Other.
type Entry struct {
	kind      Kind
	file      *File
	dir       *Directory
	composite *Composite
	other     *Other
}

// FileEntry wraps a File.
func FileEntry(f File) Entry {
	return Entry{kind: KindFile, file: &f}
}

// DirectoryEntry wraps a Directory.
func DirectoryEntry(d Directory) Entry {
	return Entry{kind: KindDirectory, dir: &d}
}

// OtherEntry wraps an Other.
func OtherEntry(o Other) Entry {
	return Entry{kind: KindOther, other: &o}
}

// CompositeEntry wraps a Composite.
func CompositeEntry(c *Composite) Entry {
	if c == nil {
		return Entry{}
	}
	return Entry{kind: KindComposite, composite: c}
}

// Kind reports which variant the entry holds.
func (e Entry) Kind() Kind {
	return e.kind
}

// File returns the file variant.
func (e Entry) File() (File, bool) {
	if e.kind != KindFile || e.file == nil {
		return File{}, false
	}
	return *e.file, true
}

// Directory returns the directory variant.
func (e Entry) Directory() (Directory, bool) {
	if e.kind != KindDirectory || e.dir == nil {
		return Directory{}, false
	}
	return *e.dir, true
}

// Composite returns the composite variant.
func (e Entry) Composite() (*Composite, bool) {
	if e.kind != KindComposite || e.composite == nil {
		return nil, false
	}
	return e.composite, true
}

// Other returns the other variant.
func (e Entry) Other() (Other, bool) {
	if e.kind != KindOther || e.other == nil {
		return Other{}, false
	}
	return *e.other, true
}

// Name returns the entry's display name.
func (e Entry) Name() string {
	return e.Presentation().Label
}

// Presentation returns how the entry is drawn.
func (e Entry) Presentation() Presentation {
	switch e.kind {
	case KindFile:
		return e.file.Presentation()
	case KindDirectory:
		return e.dir.Presentation()
	case KindComposite:
		return e.composite.Presentation()
	default:
		if e.other == nil {
			return Presentation{}
		}
		return Presentation{Label: e.other.Label, Icon: e.other.Icon}
	}
}

// Resource returns the filesystem location the entry stands for.
func (e Entry) Resource() string {
	switch e.kind {
	case KindFile:
		return e.file.Path
	case KindDirectory:
		return e.dir.Path
	case KindComposite:
		return e.composite.Resource()
	default:
		if e.other == nil {
			return ""
		}
		return e.other.Path
	}
}

// CanNavigate reports whether activating the entry opens something.
func (e Entry) CanNavigate() bool {
	switch e.kind {
	case KindFile:
		return e.file.Path != ""
	case KindComposite:
		return e.composite.CanNavigate()
	default:
		return false
	}
}

// NavigationTarget returns the path opened on activation, or "".
func (e Entry) NavigationTarget() string {
	if !e.CanNavigate() {
		return ""
	}
	return e.Resource()
}

// ExpandOnActivate reports whether activating (double-click) the entry
// toggles expansion instead of navigating.
func (e Entry) ExpandOnActivate() bool {
	switch e.kind {
	case KindDirectory:
		return true
	case KindComposite:
		return e.composite.ExpandOnActivate()
	default:
		return false
	}
}

// IsExpandable reports whether the entry shows a disclosure control.
func (e Entry) IsExpandable() bool {
	return e.kind == KindDirectory || e.kind == KindComposite
}

// Children returns the entry's children. Files and others have none.
func (e Entry) Children() ([]Entry, error) {
	switch e.kind {
	case KindDirectory:
		return e.dir.Children()
	case KindComposite:
		return e.composite.Children()
	default:
		return nil, nil
	}
}
