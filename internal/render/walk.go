// Package render walks a project view and writes it out as text, markdown,
// HTML or YAML.
package render

import (
	"time"

	"github.com/harrison/nestree/internal/models"
	"github.com/harrison/nestree/internal/project"
)

// Node is a fully expanded snapshot of one entry, ready for output.
type Node struct {
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"`
	Path     string  `yaml:"path,omitempty"`
	Nested   string  `yaml:"nested,omitempty"` // directory folded into a composite
	Error    string  `yaml:"error,omitempty"`
	Children []*Node `yaml:"children,omitempty"`

	expandable bool
	truncated  bool
}

// Expandable reports whether the entry had a disclosure control.
func (n *Node) Expandable() bool {
	return n.expandable
}

// Truncated reports whether the node's children were not walked because of
// the depth limit.
func (n *Node) Truncated() bool {
	return n.truncated
}

// Walk expands view from its root down to maxDepth levels (0 = unlimited).
// Unreadable directories become nodes carrying an Error instead of failing
// the walk.
func Walk(view *project.View, maxDepth int) (*Node, models.RenderStats) {
	start := time.Now()
	stats := models.RenderStats{Root: view.RootPath()}

	root := newNode(view.Root())
	walk(view, view.Root(), root, 1, maxDepth, &stats)

	stats.Duration = time.Since(start)
	return root, stats
}

func walk(view *project.View, entry models.Entry, node *Node, depth, maxDepth int, stats *models.RenderStats) {
	if maxDepth > 0 && depth > maxDepth {
		node.truncated = true
		stats.Truncated = true
		return
	}

	children, err := view.Children(entry)
	if err != nil {
		node.Error = err.Error()
		stats.Unreadable++
		return
	}

	for _, child := range children {
		stats.Entries++
		if child.Kind() == models.KindComposite {
			stats.Composites++
		}

		childNode := newNode(child)
		if child.IsExpandable() {
			walk(view, child, childNode, depth+1, maxDepth, stats)
		}
		node.Children = append(node.Children, childNode)
	}
}

func newNode(entry models.Entry) *Node {
	node := &Node{
		Name:       entry.Name(),
		Kind:       entry.Kind().String(),
		Path:       entry.Resource(),
		expandable: entry.IsExpandable(),
	}
	if composite, ok := entry.Composite(); ok {
		node.Nested = composite.Directory().Path
	}
	return node
}
