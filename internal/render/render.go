package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/disiqueira/gotree/v3"
	"github.com/fatih/color"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/harrison/nestree/internal/config"
	"github.com/harrison/nestree/internal/models"
)

// Renderer writes a walked tree to w.
type Renderer interface {
	Render(w io.Writer, root *Node) error
}

// Options tweaks renderer output.
type Options struct {
	// Color enables ANSI colors in text output
	Color bool
}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case config.FormatText, "":
		return &TextRenderer{color: opts.Color}, nil
	case config.FormatMarkdown:
		return &MarkdownRenderer{}, nil
	case config.FormatHTML:
		return &HTMLRenderer{}, nil
	case config.FormatYAML:
		return &YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// TextRenderer draws an ASCII tree.
type TextRenderer struct {
	color bool
}

// Render implements Renderer.
func (r *TextRenderer) Render(w io.Writer, root *Node) error {
	tree := gotree.New(r.label(root))
	r.add(tree, root.Children)
	_, err := io.WriteString(w, tree.Print())
	return err
}

func (r *TextRenderer) add(parent gotree.Tree, nodes []*Node) {
	for _, n := range nodes {
		r.add(parent.Add(r.label(n)), n.Children)
	}
}

func (r *TextRenderer) label(n *Node) string {
	label := n.Name
	if n.Kind == models.KindDirectory.String() {
		label += "/"
		if r.color {
			label = paint(color.FgBlue, color.Bold).Sprint(label)
		}
	}
	if n.Kind == models.KindOther.String() && r.color {
		label = paint(color.FgCyan).Sprint(label)
	}
	return label + r.annotation(n)
}

func (r *TextRenderer) annotation(n *Node) string {
	var note string
	switch {
	case n.Error != "":
		note = " [unreadable]"
		if r.color {
			note = paint(color.FgRed).Sprint(note)
		}
	case n.truncated:
		note = " …"
		if r.color {
			note = paint(color.FgHiBlack).Sprint(note)
		}
	}
	return note
}

// paint returns a color that ignores color.NoColor; callers decide.
func paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// MarkdownRenderer writes a nested bullet list.
type MarkdownRenderer struct{}

// Render implements Renderer.
func (r *MarkdownRenderer) Render(w io.Writer, root *Node) error {
	_, err := io.WriteString(w, markdown(root))
	return err
}

func markdown(root *Node) string {
	var b strings.Builder
	b.WriteString("**")
	b.WriteString(escapeMarkdown(root.Name))
	b.WriteString("/**\n\n")
	writeList(&b, root.Children, 0)
	return b.String()
}

func writeList(b *strings.Builder, nodes []*Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		b.WriteString(indent)
		b.WriteString("- ")
		name := escapeMarkdown(n.Name)
		switch {
		case n.Kind == models.KindDirectory.String():
			b.WriteString("**" + name + "/**")
		default:
			b.WriteString(name)
		}
		if n.Error != "" {
			b.WriteString(" _(unreadable)_")
		}
		if n.truncated {
			b.WriteString(" …")
		}
		b.WriteString("\n")
		writeList(b, n.Children, depth+1)
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// HTMLRenderer converts the markdown list to HTML with goldmark.
type HTMLRenderer struct{}

// Render implements Renderer.
func (r *HTMLRenderer) Render(w io.Writer, root *Node) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown(root)), &buf); err != nil {
		return fmt.Errorf("failed to convert tree to html: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// YAMLRenderer writes the node structure as YAML.
type YAMLRenderer struct{}

// Render implements Renderer.
func (r *YAMLRenderer) Render(w io.Writer, root *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	return enc.Close()
}
