package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/harrison/nestree/internal/config"
	"github.com/harrison/nestree/internal/logger"
	"github.com/harrison/nestree/internal/nesting"
	"github.com/harrison/nestree/internal/project"
	"github.com/harrison/nestree/internal/settings"
)

// environment is everything a command needs after flags, config and
// settings have been resolved.
type environment struct {
	cfg   *config.Config
	home  string
	store *settings.Store
	log   logger.Logger
}

// loadEnvironment resolves the nestree home starting at dir, loads config,
// applies flag overrides and opens the settings store.
func loadEnvironment(cmd *cobra.Command, dir string) (*environment, error) {
	home, err := config.GetHome(dir)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromHome(home)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	var logLevel, format, settingsFile *string
	var maxDepth *int
	var showHidden *bool
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		logLevel = &v
	}
	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		format = &v
	}
	if flags.Changed("depth") {
		v, _ := flags.GetInt("depth")
		maxDepth = &v
	}
	if flags.Changed("all") {
		v, _ := flags.GetBool("all")
		showHidden = &v
	}
	if flags.Changed("settings") {
		v, _ := flags.GetString("settings")
		settingsFile = &v
	}
	cfg.MergeWithFlags(logLevel, format, maxDepth, showHidden, settingsFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := settings.Open(cfg.ResolveSettingsFile(home))
	if err != nil {
		return nil, err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	log.LogDebug(fmt.Sprintf("home %s, settings %s", home, store.Path()))

	return &environment{cfg: cfg, home: home, store: store, log: log}, nil
}

// view builds the project view for dir. With nest false the provider sees a
// disabled snapshot and the tree is shown as it is on disk.
func (e *environment) view(dir string, nest bool) *project.View {
	var source nesting.SnapshotSource = e.store
	if !nest {
		source = nesting.StaticSource{}
	}
	return project.NewView(afero.NewOsFs(), dir, nesting.NewProvider(source), project.Options{
		ShowHidden:   e.cfg.Render.ShowHidden,
		FoldersFirst: e.cfg.Render.FoldersFirst,
		ExcludeDirs:  e.cfg.Render.ExcludeDirs,
	})
}

// colorEnabled decides whether text output is colorized.
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := out.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color %q, must be one of: auto, always, never", mode)
	}
}
