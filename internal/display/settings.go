package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/nestree/internal/nesting"
)

// ShowSettings prints the nesting settings and where they are stored.
func ShowSettings(out io.Writer, cfg nesting.Config, path string) {
	state := color.New(color.FgGreen).Sprint("enabled")
	if !cfg.Enabled {
		state = color.New(color.FgRed).Sprint("disabled")
	}

	exts := "(none)"
	if len(cfg.Extensions) > 0 {
		exts = strings.Join(cfg.Extensions, ", ")
	}

	fmt.Fprintf(out, "Nesting:    %s\n", state)
	fmt.Fprintf(out, "Extensions: %s\n", exts)
	fmt.Fprintf(out, "File:       %s\n", path)
}
