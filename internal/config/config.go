// Package config loads thisdate settings from a YAML file, THISDATE_
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "THISDATE"

// Keys understood in the config file, as environment variables (upper-cased,
// dots replaced by underscores) and as bound flags.
const (
	KeyCalendarPreset     = "calendar.preset"
	KeyCalendarDefinition = "calendar.definition"
	KeyDatabasePath       = "database.path"
	KeyLoggingLevel       = "logging.level"
	KeyLoggingFormat      = "logging.format"
)

// Log formats accepted by SetupLogging.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the resolved configuration.
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CalendarConfig selects the calendar commands operate on. Definition wins
// over Preset when both are set.
type CalendarConfig struct {
	Preset     string `mapstructure:"preset"`
	Definition string `mapstructure:"definition"`
}

// DatabaseConfig locates the SQLite warehouse.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig configures the default slog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Calendar: CalendarConfig{Preset: "nyse"},
		Database: DatabaseConfig{Path: "thisdate.db"},
		Logging:  LoggingConfig{Level: "info", Format: FormatConsole},
	}
}

// SetDefaults registers Defaults on v so that unset keys resolve and
// AutomaticEnv can see them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyCalendarPreset, d.Calendar.Preset)
	v.SetDefault(KeyCalendarDefinition, d.Calendar.Definition)
	v.SetDefault(KeyDatabasePath, d.Database.Path)
	v.SetDefault(KeyLoggingLevel, d.Logging.Level)
	v.SetDefault(KeyLoggingFormat, d.Logging.Format)
}

// Read points v at a config file and reads it. An empty path searches
// $HOME/.config/thisdate and the working directory for config.yaml; a missing
// file in those locations is not an error. An explicit path must exist.
func Read(v *viper.Viper, path string) error {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "thisdate"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Decode resolves v into a Config and validates it.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Calendar.Definition = ExpandPath(cfg.Calendar.Definition)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads path (or the default locations when empty) into a fresh viper
// instance and decodes the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	if err := Read(v, path); err != nil {
		return nil, err
	}
	return Decode(v)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != FormatConsole && c.Logging.Format != FormatJSON {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	if c.Calendar.Preset == "" && c.Calendar.Definition == "" {
		return errors.New("config needs calendar.preset or calendar.definition")
	}
	return nil
}

// NewLogger returns a logger writing to w in the given format at the given
// level.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch format {
	case FormatConsole:
		handler = slog.NewTextHandler(w, opts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return slog.New(handler), nil
}

// SetupLogging installs a stderr logger as the slog default.
func SetupLogging(level, format string) error {
	logger, err := NewLogger(os.Stderr, level, format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level: %s", level)
}
