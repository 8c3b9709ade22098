// Package config loads flexdb settings from defaults, an optional config
// file, FLEXDB_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"flexdb/pkg/logging"
)

// EnvPrefix is prepended to every environment variable, e.g. FLEXDB_LOG_LEVEL.
const EnvPrefix = "FLEXDB"

// Config is the complete runtime configuration.
type Config struct {
	DataDir string        `mapstructure:"data_dir"`
	Log     LogConfig     `mapstructure:"log"`
	Preload PreloadConfig `mapstructure:"preload"`
	Browse  BrowseConfig  `mapstructure:"browse"`
}

// LogConfig configures the process-wide logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
	Output string `mapstructure:"output"` // file path; empty logs to stderr
}

// PreloadConfig controls eager table opening.
type PreloadConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Workers int  `mapstructure:"workers"`
}

// BrowseConfig controls the interactive browser.
type BrowseConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// flagKeys maps flag names to config keys. Flags missing from a FlagSet are
// skipped, so commands can register only the flags they need.
var flagKeys = map[string]string{
	"db":         "data_dir",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.output",
	"preload":    "preload.enabled",
	"workers":    "preload.workers",
	"page-size":  "browse.page_size",
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".")
	v.SetDefault("log.level", string(logging.LevelWarn))
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "")
	v.SetDefault("preload.enabled", false)
	v.SetDefault("preload.workers", 4)
	v.SetDefault("browse.page_size", 20)
}

// Load builds a Config. configFile may be empty, in which case a flexdb.yaml
// in the working directory is used when present. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("flexdb")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Preload.Workers < 1 {
		return fmt.Errorf("preload.workers must be positive, got %d", c.Preload.Workers)
	}
	if c.Browse.PageSize < 1 {
		return fmt.Errorf("browse.page_size must be positive, got %d", c.Browse.PageSize)
	}
	return nil
}

// LoggingConfig converts the log settings for logging.Init.
func (c *Config) LoggingConfig() logging.Config {
	level, _ := logging.ParseLevel(c.Log.Level)
	return logging.Config{
		Level:      level,
		OutputPath: c.Log.Output,
		Format:     strings.ToLower(c.Log.Format),
	}
}
