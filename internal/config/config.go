package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	constants "snmpagent/config"

	"github.com/spf13/viper"
)

// Config represents the agent configuration
type Config struct {
	Service      string `mapstructure:"service"`
	LogFile      string `mapstructure:"log_file"`
	LogLevel     string `mapstructure:"log_level"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	OTLPInterval int    `mapstructure:"otlp_interval"`
	Seed         uint64 `mapstructure:"seed"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// TelemetryEnabled checks if agent counters should be exported via OTLP
func (cfg *Config) TelemetryEnabled() bool {
	return cfg.OTLPEndpoint != ""
}

// TelemetryInterval returns the OTLP export interval
func (cfg *Config) TelemetryInterval() time.Duration {
	if cfg.OTLPInterval <= 0 {
		return constants.DEFAULT_OTLP_INTERVAL * time.Second
	}
	return time.Duration(cfg.OTLPInterval) * time.Second
}

// LogPath returns the log file for this service
func (cfg *Config) LogPath() string {
	if cfg.LogFile != "" {
		return cfg.LogFile
	}
	return fmt.Sprintf(constants.LOG_FILE_PATTERN, cfg.Service)
}

// Validate checks values that viper cannot type-check
func (cfg *Config) Validate() error {
	if cfg.Service == "" {
		return errors.New("service must be set")
	}
	switch cfg.LogLevel {
	case "INFO", "DEBUG", "ERROR":
	default:
		return fmt.Errorf("invalid log_level %q (must be INFO, DEBUG or ERROR)", cfg.LogLevel)
	}
	if cfg.OTLPInterval < 0 {
		return fmt.Errorf("otlp_interval must not be negative, got %d", cfg.OTLPInterval)
	}
	return nil
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("service", constants.DEFAULT_SERVICE)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", constants.DEFAULT_LOG_LEVEL)
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("otlp_insecure", false)
	v.SetDefault("otlp_interval", constants.DEFAULT_OTLP_INTERVAL)
	v.SetDefault("seed", 0)
}

// Load reads configuration from file and environment into v.
// An explicit configFile must exist; otherwise the standard locations are
// searched and a missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(constants.ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(constants.SYSTEM_CONFIG_DIR)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + constants.CONFIG_DIR_NAME)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
