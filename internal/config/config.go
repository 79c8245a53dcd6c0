// Package config defines the prospekt configuration, its defaults, and the
// viper wiring that loads it from file and environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete prospekt configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Images  ImagesConfig  `mapstructure:"images"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
	Paths   PathsConfig   `mapstructure:"paths"`
}

// SourceConfig controls where snapshots and the manifest come from
type SourceConfig struct {
	// Kind selects the snapshot source implementation
	// Options: "file", "http"
	Kind string `mapstructure:"kind"`
	// DataDir is the directory scanned for snapshot files when kind is "file".
	// Snapshot ids are paths relative to this directory, e.g. "2024/KW01/2024-01-03.json".
	DataDir string `mapstructure:"data_dir"`
	// BaseURL is the URL snapshots are fetched from when kind is "http"
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds bounds a single manifest or snapshot fetch
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// Watch enables manifest refresh when the data directory changes (file kind only)
	Watch bool `mapstructure:"watch"`
}

// FilterConfig controls the default filter state applied on every catalog load
type FilterConfig struct {
	// DefaultExcluded lists category names excluded by default when present
	// in the loaded catalog. Names absent from the catalog are ignored.
	DefaultExcluded []string `mapstructure:"default_excluded"`
}

// ImagesConfig controls which image variants the viewer uses
type ImagesConfig struct {
	// PrimaryVariant is the preferred variant for the table's image column
	PrimaryVariant string `mapstructure:"primary_variant"`
	// PreviewVariant is the preferred higher-resolution variant for the preview pane
	PreviewVariant string `mapstructure:"preview_variant"`
}

// ExportConfig controls the export subcommand and the in-TUI export action
type ExportConfig struct {
	// Format is the default export form
	// Options: "json", "prompt"
	Format string `mapstructure:"format"`
	// Indent is the number of spaces used for pretty-printed JSON
	Indent int `mapstructure:"indent"`
}

// LoggingConfig controls structured logging behavior
type LoggingConfig struct {
	// Enabled turns logging on or off
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: debug, info, warn, error
	Level string `mapstructure:"level"`
}

// PathsConfig controls where prospekt keeps its own files
type PathsConfig struct {
	// StateDir is where the log file lives. If empty, the default
	// ~/.local/state/prospekt (or $XDG_STATE_HOME/prospekt) is used.
	StateDir string `mapstructure:"state_dir"`
}

// Timeout returns the fetch timeout as a duration.
func (s *SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ResolveDataDir returns the resolved data directory path.
// A ~ prefix expands to the user's home directory; relative paths are
// resolved against the working directory by the caller's os functions.
func (s *SourceConfig) ResolveDataDir() string {
	path := s.DataDir
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}
	return path
}

// ResolveStateDir returns the directory for prospekt's own files.
func (p *PathsConfig) ResolveStateDir() string {
	if p.StateDir != "" {
		return p.StateDir
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "prospekt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prospekt"
	}
	return filepath.Join(home, ".local", "state", "prospekt")
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:           "file",
			DataDir:        "data",
			BaseURL:        "",
			TimeoutSeconds: 15,
			Watch:          true,
		},
		Filter: FilterConfig{
			DefaultExcluded: []string{"Fleisch & Wurst", "Tiernahrung"},
		},
		Images: ImagesConfig{
			PrimaryVariant: "app",
			PreviewVariant: "original",
		},
		Export: ExportConfig{
			Format: "json",
			Indent: 2,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Paths: PathsConfig{
			StateDir: "",
		},
	}
}

// SetDefaults registers all default values with viper
func SetDefaults() {
	defaults := Default()

	// Source defaults
	viper.SetDefault("source.kind", defaults.Source.Kind)
	viper.SetDefault("source.data_dir", defaults.Source.DataDir)
	viper.SetDefault("source.base_url", defaults.Source.BaseURL)
	viper.SetDefault("source.timeout_seconds", defaults.Source.TimeoutSeconds)
	viper.SetDefault("source.watch", defaults.Source.Watch)

	// Filter defaults
	viper.SetDefault("filter.default_excluded", defaults.Filter.DefaultExcluded)

	// Images defaults
	viper.SetDefault("images.primary_variant", defaults.Images.PrimaryVariant)
	viper.SetDefault("images.preview_variant", defaults.Images.PreviewVariant)

	// Export defaults
	viper.SetDefault("export.format", defaults.Export.Format)
	viper.SetDefault("export.indent", defaults.Export.Indent)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)

	// Paths defaults
	viper.SetDefault("paths.state_dir", defaults.Paths.StateDir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prospekt")
	}
	// Fall back to ~/.config/prospekt
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prospekt"
	}
	return filepath.Join(home, ".config", "prospekt")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidSourceKinds returns the list of valid source kind values
func ValidSourceKinds() []string {
	return []string{"file", "http"}
}

// ValidExportFormats returns the list of valid export format values
func ValidExportFormats() []string {
	return []string{"json", "prompt"}
}
