// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "FINPULSE"

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		Backend    string `mapstructure:"backend" yaml:"backend"`
		Path       string `mapstructure:"path" yaml:"path"`
		SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	} `mapstructure:"store" yaml:"store"`

	Knowledge struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"knowledge" yaml:"knowledge"`

	Categories struct {
		CreditDefault string `mapstructure:"credit_default" yaml:"credit_default"`
	} `mapstructure:"categories" yaml:"categories"`

	Pattern struct {
		MaxLength int `mapstructure:"max_length" yaml:"max_length"`
	} `mapstructure:"pattern" yaml:"pattern"`

	Engine struct {
		BlockedSources []string `mapstructure:"blocked_sources" yaml:"blocked_sources"`
	} `mapstructure:"engine" yaml:"engine"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config file, then FINPULSE_* environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path searches the default locations.
func InitializeConfigFromFile(path string) (*Config, error) {
	return InitializeConfigWithFlags(path, nil, nil)
}

// FlagKeys maps configuration keys to the names of the global CLI flags
// that override them.
var FlagKeys = map[string]string{
	"log.level":     "log-level",
	"log.format":    "log-format",
	"store.backend": "store",
}

// InitializeConfigWithFlags is InitializeConfigFromFile with the flags named
// in keys bound on top of every other source. Flags left unset do not
// override.
func InitializeConfigWithFlags(path string, flags *pflag.FlagSet, keys map[string]string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if flags != nil {
		for key, name := range keys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fin-pulse")
		v.AddConfigPath(".fin-pulse")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if path != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultDataDir is the directory holding the knowledge files.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".fin-pulse"
	}
	return filepath.Join(home, ".fin-pulse")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	dataDir := DefaultDataDir()
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.path", filepath.Join(dataDir, "knowledge.yaml"))
	v.SetDefault("store.sqlite_path", filepath.Join(dataDir, "knowledge.db"))

	v.SetDefault("knowledge.file", "")
	v.SetDefault("categories.credit_default", "Income")
	v.SetDefault("pattern.max_length", 50)
	v.SetDefault("engine.blocked_sources", []string{
		"com.whatsapp",
		"com.whatsapp.w4b",
		"com.google.android.gm",
	})

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("batch.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Store.Backend {
	case BackendFile:
		if config.Store.Path == "" {
			return fmt.Errorf("store.path is required for the file backend")
		}
	case BackendSQLite:
		if config.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid store backend: %s (must be 'file', 'sqlite' or 'memory')", config.Store.Backend)
	}

	if config.Pattern.MaxLength < 1 {
		return fmt.Errorf("pattern.max_length must be positive, got: %d", config.Pattern.MaxLength)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 256 {
		return fmt.Errorf("batch.workers must be between 1 and 256, got: %d", config.Batch.Workers)
	}

	return nil
}
