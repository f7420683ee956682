// Package config provides configuration management for the fight-odds service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "FIGHT_ODDS"

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables override file values
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no config file is supplied:
// the reference model settings with persistence disabled.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}
	// Unmarshal of pure defaults cannot fail; the keys are all known.
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "fight-odds")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("model.weights_name", "default")
	v.SetDefault("model.bootstrap_iterations", 1000)
	v.SetDefault("model.bootstrap_noise", 0.03)
	v.SetDefault("model.bootstrap_seed", 42)
	v.SetDefault("model.total_rounds", 5)

	v.SetDefault("calibration.l2", 1.0)
	v.SetDefault("calibration.learning_rate", 0.05)
	v.SetDefault("calibration.epochs", 1000)
	v.SetDefault("calibration.min_matchups", 25)

	v.SetDefault("dataset.timeout_seconds", 30)
	v.SetDefault("dataset.max_retries", 5)
	v.SetDefault("dataset.rate_limit", 10.0)

	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.max_size", 1000)

	v.SetDefault("health.port", "8080")
}
