package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/harrison/nestree/internal/display"
	"github.com/harrison/nestree/internal/nesting"
	"github.com/harrison/nestree/internal/settings"
)

// NewSettingsCommand creates the 'nestree settings' parent command
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change nesting settings",
		Long: `Commands for viewing and changing the nesting settings: whether nesting
is enabled, and which file extensions may absorb a sibling folder.

Settings are stored as YAML in <home>/settings.yaml, or the file given with
--settings. Writes hold an exclusive file lock and replace the file
atomically.`,
	}

	cmd.AddCommand(newSettingsShowCommand())
	cmd.AddCommand(newSettingsToggleCommand("enable", true))
	cmd.AddCommand(newSettingsToggleCommand("disable", false))
	cmd.AddCommand(newSettingsAddCommand())
	cmd.AddCommand(newSettingsRemoveCommand())
	cmd.AddCommand(newSettingsResetCommand())

	return cmd
}

func newSettingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current nesting settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, "")
			if err != nil {
				return err
			}
			display.ShowSettings(cmd.OutOrStdout(), env.store.Snapshot(), env.store.Path())
			return nil
		},
	}
}

func newSettingsToggleCommand(use string, enabled bool) *cobra.Command {
	short := "Enable nesting"
	if !enabled {
		short = "Disable nesting and show the tree as it is on disk"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateSettings(cmd, func(cfg *nesting.Config) {
				cfg.Enabled = enabled
			})
		},
	}
}

func newSettingsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <extension>...",
		Short: "Allow files with these extensions to absorb folders",
		Example: `  nestree settings add swift cs
  nestree settings add .vue`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if w, ok := display.NormalizedExtensions(args, settings.NormalizeExtension); ok {
				w.Display(cmd.ErrOrStderr())
			}
			return updateSettings(cmd, func(cfg *nesting.Config) {
				// Apply normalizes and drops duplicates
				cfg.Extensions = append(cfg.Extensions, args...)
			})
		},
	}
}

func newSettingsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <extension>...",
		Short: "Stop files with these extensions from absorbing folders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drop := make(map[string]bool, len(args))
			for _, arg := range args {
				if ext := settings.NormalizeExtension(arg); ext != "" {
					drop[ext] = true
				}
			}

			var missing []string
			err := updateSettings(cmd, func(cfg *nesting.Config) {
				for ext := range drop {
					if !slices.Contains(cfg.Extensions, ext) {
						missing = append(missing, ext)
					}
				}
				cfg.Extensions = slices.DeleteFunc(cfg.Extensions, func(ext string) bool {
					return drop[ext]
				})
			})
			if err != nil {
				return err
			}

			if len(missing) > 0 {
				slices.Sort(missing)
				display.UnknownExtensions(missing).Display(cmd.ErrOrStderr())
			}
			return nil
		},
	}
}

func newSettingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default nesting settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateSettings(cmd, func(cfg *nesting.Config) {
				*cfg = settings.Default()
			})
		},
	}
}

// updateSettings applies fn to the stored settings and prints the result
func updateSettings(cmd *cobra.Command, fn func(*nesting.Config)) error {
	env, err := loadEnvironment(cmd, "")
	if err != nil {
		return err
	}

	next, err := env.store.Update(fn)
	if err != nil {
		return err
	}
	env.log.LogSettingsChanged(next.Enabled, next.Extensions)

	display.ShowSettings(cmd.OutOrStdout(), next, env.store.Path())
	return nil
}
