package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/nestree/internal/project"
	"github.com/harrison/nestree/internal/render"
)

// NewShowCommand creates and returns the show subcommand
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [directory]",
		Short: "Print the project tree with nesting applied",
		Long: `Print the tree under a directory (default: current directory).

Files whose extension is enabled in the nesting settings absorb a sibling
folder with the same base name, compared case-insensitively. Nesting is
applied independently at every level, including inside a composite.

Output formats:
  text      ASCII tree (default)
  markdown  nested bullet list
  html      the markdown list rendered to HTML
  yaml      machine-readable node structure`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	addRenderFlags(cmd)

	return cmd
}

// addRenderFlags registers the flags shared by show and watch
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format: text, markdown, html, yaml (default from config)")
	cmd.Flags().IntP("depth", "d", 0, "Maximum depth to expand (0 = unlimited)")
	cmd.Flags().BoolP("all", "a", false, "Show hidden files and directories")
	cmd.Flags().Bool("no-nest", false, "Show the tree as it is on disk")
	cmd.Flags().String("color", "auto", "Colorize text output: auto, always, never")
}

// treeCommand is the resolved state shared by show and watch
type treeCommand struct {
	env   *environment
	view  *project.View
	color bool
}

func prepareTree(cmd *cobra.Command, args []string) (*treeCommand, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	env, err := loadEnvironment(cmd, abs)
	if err != nil {
		return nil, err
	}

	noNest, _ := cmd.Flags().GetBool("no-nest")
	view := env.view(abs, !noNest)
	if err := view.Stat(); err != nil {
		return nil, err
	}

	mode, _ := cmd.Flags().GetString("color")
	color, err := colorEnabled(mode, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	return &treeCommand{env: env, view: view, color: color}, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	tc, err := prepareTree(cmd, args)
	if err != nil {
		return err
	}
	return tc.render(cmd.OutOrStdout())
}

// render walks the view once and writes it in the configured format
func (tc *treeCommand) render(out io.Writer) error {
	renderer, err := render.New(tc.env.cfg.Render.Format, render.Options{Color: tc.color})
	if err != nil {
		return err
	}

	root, stats := render.Walk(tc.view, tc.env.cfg.Render.MaxDepth)
	if err := renderer.Render(out, root); err != nil {
		return fmt.Errorf("failed to write tree: %w", err)
	}

	tc.env.log.LogRenderComplete(stats)
	if stats.Unreadable > 0 {
		tc.env.log.LogWarn(fmt.Sprintf("%d director%s could not be read", stats.Unreadable, plural(stats.Unreadable, "y", "ies")))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
