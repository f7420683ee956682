// Package config provides configuration management for the fight-odds service.
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Model       ModelConfig       `mapstructure:"model" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	Dataset     DatasetConfig     `mapstructure:"dataset"`
	Cache       CacheConfig       `mapstructure:"cache" validate:"required"`
	Health      HealthConfig      `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents the Postgres connection configuration.
// Optional: the CLIs work without persistence when Host is empty.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// Enabled reports whether a database connection is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// ModelConfig configures scoring and bootstrap resampling
type ModelConfig struct {
	WeightsName         string  `mapstructure:"weights_name" validate:"required"`
	BootstrapIterations int     `mapstructure:"bootstrap_iterations" validate:"required,gt=0"`
	BootstrapNoise      float64 `mapstructure:"bootstrap_noise" validate:"gte=0,lt=1"`
	BootstrapSeed       int64   `mapstructure:"bootstrap_seed"`
	TotalRounds         int     `mapstructure:"total_rounds" validate:"required,gt=0,lte=5"`
}

// CalibrationConfig configures offline weight fitting
type CalibrationConfig struct {
	L2           float64 `mapstructure:"l2" validate:"gte=0"`
	LearningRate float64 `mapstructure:"learning_rate" validate:"required,gt=0"`
	Epochs       int     `mapstructure:"epochs" validate:"required,gt=0"`
	MinMatchups  int     `mapstructure:"min_matchups" validate:"required,gt=0"`
	Schedule     string  `mapstructure:"schedule"`
}

// DatasetConfig configures the HTTP client used to fetch published
// calibration datasets
type DatasetConfig struct {
	URL            string  `mapstructure:"url" validate:"omitempty,url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"omitempty,gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
}

// Timeout returns the configured request timeout.
func (d DatasetConfig) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// CacheConfig configures the in-memory prediction cache
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	MaxSize    int `mapstructure:"max_size" validate:"required,gt=0"`
}

// TTL returns the configured cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// HealthConfig configures the health/metrics HTTP endpoint
type HealthConfig struct {
	Port string `mapstructure:"port"`
}
