package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	RoutesFile    string `mapstructure:"routes_file"`
	NotifiersFile string `mapstructure:"notifiers_file"`

	DispatchIntervalSeconds int64         `mapstructure:"dispatch_interval"`
	DispatchInterval        time.Duration `mapstructure:"-"`

	ProbeURL             string        `mapstructure:"probe_url"`
	ProbeIntervalSeconds int64         `mapstructure:"probe_interval"`
	ProbeInterval        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "samvad-api-router")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("routes_file", "./configs/routes.yaml")
	v.SetDefault("notifiers_file", "./configs/notifiers.yaml")
	v.SetDefault("dispatch_interval", 60) // seconds
	v.SetDefault("probe_url", "https://www.gstatic.com/generate_204")
	v.SetDefault("probe_interval", 30) // seconds

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DispatchIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid dispatch_interval (must be positive seconds)")
	}
	cfg.DispatchInterval = time.Duration(cfg.DispatchIntervalSeconds) * time.Second

	if cfg.ProbeIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid probe_interval (must be positive seconds)")
	}
	cfg.ProbeInterval = time.Duration(cfg.ProbeIntervalSeconds) * time.Second

	return &cfg, nil
}
