package models

// Composite presents a file while sourcing its children from a sibling
// directory. It borrows both entries for one render pass and never mutates
// them.
type Composite struct {
	file File
	dir  Directory
}

// NewComposite binds a file to the directory whose children it exposes.
func NewComposite(file File, dir Directory) *Composite {
	return &Composite{file: file, dir: dir}
}

// File returns the file the composite is displayed as.
func (c *Composite) File() File {
	return c.file
}

// Directory returns the directory the composite draws children from.
func (c *Composite) Directory() Directory {
	return c.dir
}

// Children returns the directory's children as they are now.
func (c *Composite) Children() ([]Entry, error) {
	return c.dir.Children()
}

// Presentation is the file's presentation, unchanged.
func (c *Composite) Presentation() Presentation {
	return c.file.Presentation()
}

// Resource resolves to the file, not the directory.
func (c *Composite) Resource() string {
	return c.file.Path
}

// CanNavigate delegates to the file.
func (c *Composite) CanNavigate() bool {
	return FileEntry(c.file).CanNavigate()
}

// ExpandOnActivate is always false: activation opens the file and expansion
// happens only through the disclosure control.
func (c *Composite) ExpandOnActivate() bool {
	return false
}
