package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/nestree/internal/fileutil"
)

// NewPairsCommand creates and returns the pairs subcommand
func NewPairsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs [directory]",
		Short: "List every file that would absorb a sibling folder",
		Long: `Scan every directory under a directory (default: current directory)
and list the file/folder pairs the current nesting settings fold together.
Paths are relative to the scanned directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPairs,
	}

	cmd.Flags().IntP("depth", "d", 0, "Maximum directory depth to scan (0 = unlimited)")
	cmd.Flags().BoolP("all", "a", false, "Scan hidden directories")
	cmd.Flags().Bool("yaml", false, "Print pairs as YAML")

	return cmd
}

func runPairs(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	env, err := loadEnvironment(cmd, abs)
	if err != nil {
		return err
	}

	result, err := fileutil.FindPairs(env.view(abs, true), env.cfg.Render.MaxDepth)
	if err != nil {
		return err
	}
	for _, scanErr := range result.Errors {
		env.log.LogWarn(scanErr.Error())
	}

	pairs := make([]fileutil.Pair, 0, len(result.Pairs))
	for _, p := range result.Pairs {
		pairs = append(pairs, fileutil.Pair{File: relative(abs, p.File), Directory: relative(abs, p.Directory)})
	}

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if err := writePairs(cmd.OutOrStdout(), pairs, asYAML); err != nil {
		return err
	}

	env.log.LogDebug(fmt.Sprintf("Found %d pair%s under %s", len(pairs), plural(len(pairs), "", "s"), abs))
	return nil
}

func writePairs(out io.Writer, pairs []fileutil.Pair, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(pairs); err != nil {
			return fmt.Errorf("failed to encode pairs: %w", err)
		}
		return enc.Close()
	}

	for _, p := range pairs {
		if _, err := fmt.Fprintf(out, "%s -> %s%c\n", p.File, p.Directory, filepath.Separator); err != nil {
			return err
		}
	}
	return nil
}

func relative(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
