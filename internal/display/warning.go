package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Affected values (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow. Color follows color.NoColor.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Items) > 0 {
		for i, item := range w.Items {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, item))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// NormalizedExtensions explains how requested extensions were rewritten or
// dropped on the way into the settings file. It returns false when every
// value was stored exactly as given.
func NormalizedExtensions(requested []string, normalize func(string) string) (Warning, bool) {
	var items []string
	seen := make(map[string]bool, len(requested))
	for _, raw := range requested {
		ext := normalize(raw)
		switch {
		case ext == "":
			items = append(items, fmt.Sprintf("%q ignored (empty)", raw))
		case seen[ext]:
			items = append(items, fmt.Sprintf("%q ignored (duplicate of %q)", raw, ext))
		case ext != raw:
			items = append(items, fmt.Sprintf("%q stored as %q", raw, ext))
		}
		if ext != "" {
			seen[ext] = true
		}
	}
	if len(items) == 0 {
		return Warning{}, false
	}
	return Warning{
		Title:   "Some extensions were normalized",
		Message: "Extensions are stored lowercase, without leading dots.",
		Items:   items,
	}, true
}

// UnknownExtensions warns about extensions that were asked to be removed but
// are not configured.
func UnknownExtensions(missing []string) Warning {
	return Warning{
		Title:      "Extensions not configured",
		Items:      missing,
		Suggestion: "Run 'nestree settings show' to list the configured extensions",
	}
}
