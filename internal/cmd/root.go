package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for nestree
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nestree",
		Short: "Project tree viewer that nests files with their same-named folders",
		Long: `Nestree prints a project tree in which a source file and a sibling
folder with the same base name are shown as one entry: the folder's
contents appear under the file.

  app/User.php
  app/User/Authenticatable.php   ->   User.php
  app/User/HasRoles.php                 ├── Authenticatable.php
                                        └── HasRoles.php

Which extensions take part, and whether nesting happens at all, is kept in
a settings file under the nestree home (.nestree or $NESTREE_HOME).`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: <home>/config.yaml)")
	cmd.PersistentFlags().String("settings", "", "Path to nesting settings file (default: <home>/settings.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewPairsCommand())
	cmd.AddCommand(NewSettingsCommand())
	cmd.AddCommand(NewWatchCommand())

	return cmd
}
