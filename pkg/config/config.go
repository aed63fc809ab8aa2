// pkg/config/config.go

package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// EnvPrefix namespaces environment overrides: ZSCRUB_PASSES,
	// ZSCRUB_HISTFILE, and so on.
	EnvPrefix = "ZSCRUB"

	// DefaultShredPasses is the default overwrite count.
	DefaultShredPasses = 32

	// DefaultShredChunk is the overwrite buffer size in bytes.
	DefaultShredChunk = 64 * 1024
)

// Init wires viper defaults, environment binding and the optional
// config file at ~/.config/zscrub/config.yaml. A missing config file
// is not an error.
func Init(log *zap.Logger) {
	viper.SetDefault("passes", DefaultShredPasses)
	viper.SetDefault("histfile", "")

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(filepath.Join(home, ".config", "zscrub"))
		if err := viper.ReadInConfig(); err == nil {
			log.Debug("Loaded config file", zap.String("path", viper.ConfigFileUsed()))
		}
	}
}

// BindFlags lets explicit CLI flags override file and env settings.
func BindFlags(fs *pflag.FlagSet) error {
	for _, name := range []string{"passes", "histfile"} {
		if f := fs.Lookup(name); f != nil {
			if err := viper.BindPFlag(name, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Histfile resolves the history file path: config/env/flag setting,
// then $HISTFILE, then ~/.zsh_history, then a bare relative fallback
// when even the home directory is unknown.
func Histfile(log *zap.Logger) string {
	if path := viper.GetString("histfile"); path != "" {
		return path
	}
	if path := os.Getenv("HISTFILE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		log.Warn("Cannot determine home directory, using relative .zsh_history")
		return ".zsh_history"
	}
	return filepath.Join(home, ".zsh_history")
}

// ShredPasses returns the configured overwrite pass count.
func ShredPasses() int {
	return viper.GetInt("passes")
}
