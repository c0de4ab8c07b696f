// Package config loads the service configuration from a YAML file.
// cmd/server layers flag and environment overrides on top.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration.
type Config struct {
	// ListenAddr is the HTTP listen address for the dashboard API.
	ListenAddr string `yaml:"listen_addr"`

	// ArtifactDir is the directory the optimization pipeline writes the
	// two artifact JSON files into. Ignored when PostgresDSN is set.
	ArtifactDir string `yaml:"artifact_dir"`

	// PostgresDSN, when set, reads artifacts from the artifact_documents
	// table instead of the filesystem.
	PostgresDSN string `yaml:"postgres_dsn"`

	// ClickhouseDSN enables the equity-curve archive used by cmd/export.
	ClickhouseDSN string `yaml:"clickhouse_dsn"`

	// ArtifactTimeoutSeconds is the soft per-artifact read deadline.
	ArtifactTimeoutSeconds int `yaml:"artifact_timeout_seconds"`

	// MetricsNamespace prefixes all Prometheus metric names.
	MetricsNamespace string `yaml:"metrics_namespace"`

	Simulator SimulatorConfig `yaml:"simulator"`
}

// SimulatorConfig holds the default equity-simulation parameters.
type SimulatorConfig struct {
	StartingBalance float64 `yaml:"starting_balance"`
	RiskPerTrade    float64 `yaml:"risk_per_trade"`
	Points          int     `yaml:"points"`
	HorizonDays     int     `yaml:"horizon_days"`
}

// Load loads configuration from file.
func Load(filename string) (Config, error) {
	var config Config

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}

	setDefaults(&config)

	if err := validate(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var config Config
	setDefaults(&config)
	return config
}

func setDefaults(c *Config) {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.ArtifactDir == "" && c.PostgresDSN == "" {
		c.ArtifactDir = "data"
	}
	if c.ArtifactTimeoutSeconds == 0 {
		c.ArtifactTimeoutSeconds = 5
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = "forex_dashboard"
	}
	if c.Simulator.StartingBalance == 0 {
		c.Simulator.StartingBalance = 10000
	}
	if c.Simulator.RiskPerTrade == 0 {
		c.Simulator.RiskPerTrade = 0.005
	}
	if c.Simulator.Points == 0 {
		c.Simulator.Points = 100
	}
	if c.Simulator.HorizonDays == 0 {
		c.Simulator.HorizonDays = 730
	}
}

func validate(c Config) error {
	if c.ArtifactTimeoutSeconds < 1 {
		return fmt.Errorf("artifact_timeout_seconds must be positive, got %d", c.ArtifactTimeoutSeconds)
	}
	if c.Simulator.RiskPerTrade <= 0 || c.Simulator.RiskPerTrade >= 1 {
		return fmt.Errorf("simulator.risk_per_trade must be in (0,1), got %f", c.Simulator.RiskPerTrade)
	}
	if c.Simulator.Points < 2 {
		return fmt.Errorf("simulator.points must be at least 2, got %d", c.Simulator.Points)
	}
	return nil
}
