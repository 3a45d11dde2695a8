package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ITK"

type Config struct {
	LogFile                  string `mapstructure:"log_file"`
	LogRefreshSeconds        int    `mapstructure:"log_refresh_seconds"`
	CommandTimeoutSeconds    int    `mapstructure:"command_timeout_seconds"`
	HealthStepTimeoutMinutes int    `mapstructure:"health_step_timeout_minutes"`
	RequireAdmin             bool   `mapstructure:"require_admin"`
	DiagLogLevel             string `mapstructure:"diag_log_level"`
	DiagLogFormat            string `mapstructure:"diag_log_format"`
	DiagLogFile              string `mapstructure:"diag_log_file"`
}

func Default() *Config {
	return &Config{
		LogRefreshSeconds:        2,
		CommandTimeoutSeconds:    300,
		HealthStepTimeoutMinutes: 120,
		RequireAdmin:             true,
		DiagLogLevel:             "info",
		DiagLogFormat:            "text",
		DiagLogFile:              filepath.Join(cacheDir(), "itk.log"),
	}
}

// Load reads cfgFile, or itk.yaml from the user config directory and the
// working directory, then applies ITK_* environment overrides. A missing
// config file is not an error.
func Load(cfgFile string) (*Config, error) {
	cfg := Default()
	v := viper.New()

	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("itk")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AutomaticEnv only resolves keys viper already knows about, so every key
// gets a default.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_refresh_seconds", cfg.LogRefreshSeconds)
	v.SetDefault("command_timeout_seconds", cfg.CommandTimeoutSeconds)
	v.SetDefault("health_step_timeout_minutes", cfg.HealthStepTimeoutMinutes)
	v.SetDefault("require_admin", cfg.RequireAdmin)
	v.SetDefault("diag_log_level", cfg.DiagLogLevel)
	v.SetDefault("diag_log_format", cfg.DiagLogFormat)
	v.SetDefault("diag_log_file", cfg.DiagLogFile)
}

func (c *Config) LogRefreshInterval() time.Duration {
	return time.Duration(c.LogRefreshSeconds) * time.Second
}

func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

func (c *Config) HealthStepTimeout() time.Duration {
	return time.Duration(c.HealthStepTimeoutMinutes) * time.Minute
}

// Dir is where itk.yaml is looked up by default.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "itk")
	}
	return "."
}

func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "itk")
	}
	return os.TempDir()
}
