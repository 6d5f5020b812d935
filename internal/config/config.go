package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the renderers
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatYAML     = "yaml"
)

// RenderConfig controls how the project tree is drawn
type RenderConfig struct {
	// Format is one of text, markdown, html, yaml
	Format string `yaml:"format"`

	// MaxDepth limits how many levels are expanded (0 = unlimited)
	MaxDepth int `yaml:"max_depth"`

	// ShowHidden includes dot-files and dot-directories
	ShowHidden bool `yaml:"show_hidden"`

	// FoldersFirst lists directories before files at each level
	FoldersFirst bool `yaml:"folders_first"`

	// ExcludeDirs lists directory names that are never shown
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// WatchConfig controls the watch command
type WatchConfig struct {
	// Debounce coalesces bursts of filesystem events
	Debounce time.Duration `yaml:"debounce"`
}

// Config represents nestree configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// SettingsFile is where the nesting settings live; empty means
	// $NESTREE_HOME/settings.yaml
	SettingsFile string `yaml:"settings_file"`

	// Render contains tree rendering options
	Render RenderConfig `yaml:"render"`

	// Watch contains watch command options
	Watch WatchConfig `yaml:"watch"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		SettingsFile: "",
		Render: RenderConfig{
			Format:       FormatText,
			MaxDepth:     0,
			ShowHidden:   false,
			FoldersFirst: true,
			ExcludeDirs:  []string{".git", "node_modules", "vendor"},
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are written as strings ("250ms")
	type yamlConfig struct {
		LogLevel     string `yaml:"log_level"`
		SettingsFile string `yaml:"settings_file"`
		Render       struct {
			Format       string    `yaml:"format"`
			MaxDepth     *int      `yaml:"max_depth"`
			ShowHidden   *bool     `yaml:"show_hidden"`
			FoldersFirst *bool     `yaml:"folders_first"`
			ExcludeDirs  *[]string `yaml:"exclude_dirs"`
		} `yaml:"render"`
		Watch struct {
			Debounce string `yaml:"debounce"`
		} `yaml:"watch"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply values present in the file over the defaults
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.SettingsFile != "" {
		cfg.SettingsFile = yamlCfg.SettingsFile
	}
	if yamlCfg.Render.Format != "" {
		cfg.Render.Format = yamlCfg.Render.Format
	}
	if yamlCfg.Render.MaxDepth != nil {
		cfg.Render.MaxDepth = *yamlCfg.Render.MaxDepth
	}
	if yamlCfg.Render.ShowHidden != nil {
		cfg.Render.ShowHidden = *yamlCfg.Render.ShowHidden
	}
	if yamlCfg.Render.FoldersFirst != nil {
		cfg.Render.FoldersFirst = *yamlCfg.Render.FoldersFirst
	}
	if yamlCfg.Render.ExcludeDirs != nil {
		cfg.Render.ExcludeDirs = *yamlCfg.Render.ExcludeDirs
	}
	if yamlCfg.Watch.Debounce != "" {
		debounce, err := time.ParseDuration(yamlCfg.Watch.Debounce)
		if err != nil {
			return nil, fmt.Errorf("invalid debounce format %q: %w", yamlCfg.Watch.Debounce, err)
		}
		cfg.Watch.Debounce = debounce
	}

	return cfg, nil
}

// ConfigFileName is the config file looked up inside the nestree home
const ConfigFileName = "config.yaml"

// LoadConfigFromHome loads configuration from config.yaml in the nestree home
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromHome(home string) (*Config, error) {
	return LoadConfig(filepath.Join(home, ConfigFileName))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, format *string, maxDepth *int, showHidden *bool, settingsFile *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if format != nil {
		c.Render.Format = *format
	}
	if maxDepth != nil {
		c.Render.MaxDepth = *maxDepth
	}
	if showHidden != nil {
		c.Render.ShowHidden = *showHidden
	}
	if settingsFile != nil {
		c.SettingsFile = *settingsFile
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Render.Format {
	case FormatText, FormatMarkdown, FormatHTML, FormatYAML:
	default:
		return fmt.Errorf("invalid render.format %q, must be one of: text, markdown, html, yaml", c.Render.Format)
	}

	if c.Render.MaxDepth < 0 {
		return fmt.Errorf("render.max_depth must be >= 0, got %d", c.Render.MaxDepth)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %v", c.Watch.Debounce)
	}

	return nil
}

// ResolveSettingsFile returns SettingsFile, or settings.yaml under home when unset
func (c *Config) ResolveSettingsFile(home string) string {
	if c.SettingsFile != "" {
		return c.SettingsFile
	}
	return filepath.Join(home, "settings.yaml")
}
