// Package cmd defines the prospekt command tree.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prospekt/internal/config"
	"prospekt/internal/logging"
	"prospekt/internal/source"
)

var rootCmd = &cobra.Command{
	Use:   "prospekt",
	Short: "Terminal browser for weekly retail offer catalogs",
	Long: `Prospekt loads weekly offer catalog snapshots from a local directory or
an HTTP endpoint and presents them as a filterable table: free-text search,
category exclusions, lazily loaded image URLs with a preview, and export of
the visible offers as JSON or as a prompt for a language model.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/prospekt/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.PersistentFlags().String("source", "", "snapshot source kind (file, http)")
	_ = viper.BindPFlag("source.kind", rootCmd.PersistentFlags().Lookup("source"))

	rootCmd.PersistentFlags().String("data-dir", "", "directory scanned for snapshots (file source)")
	_ = viper.BindPFlag("source.data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.PersistentFlags().String("base-url", "", "base URL snapshots are fetched from (http source)")
	_ = viper.BindPFlag("source.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/prospekt")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PROSPEKT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., PROSPEKT_SOURCE_DATA_DIR for source.data_dir
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// setup loads the validated configuration and builds the snapshot source.
// The logger writes to the state directory for the TUI and to stderr for the
// non-interactive subcommands.
func setup(interactive bool) (*config.Config, *logging.Logger, source.Source, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	var log *logging.Logger
	if !cfg.Logging.Enabled {
		log = logging.NopLogger()
	} else {
		stateDir := ""
		if interactive {
			stateDir = cfg.Paths.ResolveStateDir()
		}
		log, err = logging.NewLogger(stateDir, cfg.Logging.Level)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	src, err := source.New(cfg)
	if err != nil {
		log.Close()
		return nil, nil, nil, err
	}
	return cfg, log.WithSource(src.Kind()), src, nil
}
