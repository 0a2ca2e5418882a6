// Package settings loads the daemon's runtime settings: battery poll
// interval, log level and telemetry options. These are operator knobs,
// separate from the persisted power-policy document owned by the config
// package.
package settings

import (
	"os"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/telemetry"
	"github.com/spf13/viper"
)

const (
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	defaultInterval = 5
	configName      = "powerctl"
	configDir       = "/etc"

	// envConfig overrides the settings file location, mainly for tests.
	envConfig = "POWERCTL_CONFIG"
)

type Settings struct {
	// Interval is the battery poll interval in seconds.
	Interval int `mapstructure:"interval"`
	// LogLevel is one of debug, info, warning, error.
	LogLevel string `mapstructure:"log_level"`
	// Telemetry enables recording profile transitions.
	Telemetry bool `mapstructure:"telemetry"`
	// Database is the telemetry database path.
	Database string `mapstructure:"database"`
}

// Load reads settings from /etc/powerctl.toml, falling back to defaults
// when the file does not exist.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetDefault("interval", defaultInterval)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", telemetry.DefaultConfig().DBPath)

	if path := os.Getenv(envConfig); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(ErrReadSettings, err).
				WithMessage("Failed to read config file")
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Wrap(ErrUnmarshalSettings, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the loaded settings.
func (s *Settings) Validate() error {
	if s.Interval <= 0 {
		return errors.WithData(ErrInvalidInterval, s.Interval)
	}

	switch s.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errors.WithData(ErrInvalidLogLevel, s.LogLevel)
	}

	return nil
}

// Debug reports whether debug logging is configured.
func (s *Settings) Debug() bool {
	return s.LogLevel == "debug"
}

// Verbose reports whether info-level logging is configured.
func (s *Settings) Verbose() bool {
	return s.LogLevel == "debug" || s.LogLevel == "info"
}
