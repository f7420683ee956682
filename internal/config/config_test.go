// Package config provides configuration management for the fight-odds service.
package config

import (
	"os"
	"testing"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.App.Name != "fight-odds" {
		t.Errorf("expected app name 'fight-odds', got '%s'", cfg.App.Name)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("expected database host 'localhost', got '%s'", cfg.Database.Host)
	}
	if cfg.Model.BootstrapIterations != 1000 {
		t.Errorf("expected 1000 bootstrap iterations, got %d", cfg.Model.BootstrapIterations)
	}
	if cfg.Calibration.Schedule != "0 3 * * *" {
		t.Errorf("unexpected calibration schedule '%s'", cfg.Calibration.Schedule)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	if _, err := Load(nonexistentConfigPath); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvExpansion tests ${VAR} expansion in the YAML file
func TestLoadConfigEnvExpansion(t *testing.T) {
	os.Setenv("TEST_DB_PASSWORD", "expanded_secret_value")
	defer os.Unsetenv("TEST_DB_PASSWORD")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.Database.Password != "expanded_secret_value" {
		t.Errorf("expected expanded password, got '%s'", cfg.Database.Password)
	}
}

// TestDefaultConfigValidates tests that the built-in defaults pass validation
func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Database.Enabled() {
		t.Errorf("default config should not enable persistence")
	}
	if cfg.Model.TotalRounds != 5 {
		t.Errorf("expected 5 total rounds, got %d", cfg.Model.TotalRounds)
	}
}

// TestValidateRejectsBadEnvironment tests the custom environment rule
func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg := Default()
	cfg.App.Environment = "invalid"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateRejectsBadLogLevel tests the custom loglevel rule
func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.App.LogLevel = "shouty"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
}

// TestValidateCrossFieldIncompleteDatabase tests partial database settings
func TestValidateCrossFieldIncompleteDatabase(t *testing.T) {
	cfg := Default()
	cfg.Database.Host = "db.internal"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for database host without name/user")
	}
}

// TestValidateCrossFieldScheduleNeedsSource tests scheduled calibration rules
func TestValidateCrossFieldScheduleNeedsSource(t *testing.T) {
	cfg := Default()
	cfg.Calibration.Schedule = "@daily"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for schedule without database or dataset URL")
	}

	cfg.Dataset.URL = "https://datasets.example.com/bouts.json"
	if err := Validate(cfg); err != nil {
		t.Fatalf("schedule with dataset URL should validate, got %v", err)
	}
}

// TestValidateRejectsBadBootstrap tests model section bounds
func TestValidateRejectsBadBootstrap(t *testing.T) {
	cfg := Default()
	cfg.Model.BootstrapIterations = 0
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for zero bootstrap iterations")
	}

	cfg = Default()
	cfg.Model.BootstrapNoise = 1.5
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for noise >= 1")
	}
}

// TestSecretsOverlay tests applying a secrets overlay to the configuration
func TestSecretsOverlay(t *testing.T) {
	cfg := Default()
	cfg.Database.Password = "from_file"

	overlaySecretsOnConfig(cfg, &SecretsOverlay{DatabasePassword: "from_aws"})
	if cfg.Database.Password != "from_aws" {
		t.Errorf("expected overlaid password, got '%s'", cfg.Database.Password)
	}

	overlaySecretsOnConfig(cfg, &SecretsOverlay{})
	if cfg.Database.Password != "from_aws" {
		t.Errorf("empty secret must not clear existing password")
	}
}
