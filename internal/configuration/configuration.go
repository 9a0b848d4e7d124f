package configuration

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger — logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Server — HTTP server configuration
	Server ServerConfig `mapstructure:"server"`
	// Datasets — geospatial dataset fetching configuration
	Datasets DatasetsConfig `mapstructure:"datasets"`
	// Readings — environmental readings client configuration
	Readings ReadingsConfig `mapstructure:"readings"`
	// Scores — score cache configuration
	Scores ScoresConfig `mapstructure:"scores"`
	// Publish — Redis publishing configuration
	Publish PublishConfig `mapstructure:"publish"`
	// Alerts — alert rules configuration
	Alerts AlertsConfig `mapstructure:"alerts"`
	// Snapshot — batch snapshot log configuration
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level — log level: debug, info, warn, warning, error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
}

// ServerConfig contains HTTP server parameters.
type ServerConfig struct {
	// Address — address and port where the server will listen (e.g., ":8080").
	Address string `mapstructure:"address"`
	// Static — path to directory with static files served by the server.
	// Can be empty if static serving is not required.
	Static string `mapstructure:"static"`
}

// DatasetsConfig defines where geospatial datasets are fetched from and how
// long parsed features are cached.
type DatasetsConfig struct {
	// BaseURL — base URL of the GeoJSON dataset host.
	BaseURL string `mapstructure:"base_url"`
	// Ttl — lifetime of cached parsed datasets (time.Duration).
	// Example: "1h". Default 1h.
	Ttl time.Duration `mapstructure:"ttl"`
}

// ReadingsConfig defines the environmental readings API client parameters.
type ReadingsConfig struct {
	// BaseURL — base URL of the environmental readings API.
	BaseURL string `mapstructure:"base_url"`
	// Ttl — lifetime of cached PSI and rainfall readings (default 10m).
	Ttl time.Duration `mapstructure:"ttl"`
	// Timeout — per-request HTTP timeout (default 10s).
	Timeout time.Duration `mapstructure:"timeout"`
}

// ScoresConfig defines score memoization parameters.
type ScoresConfig struct {
	// Ttl — lifetime of memoized composite scores and batches (default 10m).
	Ttl time.Duration `mapstructure:"ttl"`
}

// PublishConfig defines Redis score publishing. An empty address disables
// publishing entirely.
type PublishConfig struct {
	// RedisAddr — Redis address (e.g., "localhost:6379"). Empty disables publishing.
	RedisAddr string `mapstructure:"redis_addr"`
	// Password — Redis password, may be empty.
	Password string `mapstructure:"password"`
	// Db — Redis database number.
	Db int `mapstructure:"db"`
	// Key — key the latest batch is stored under (default "district_scores:latest").
	Key string `mapstructure:"key"`
}

// AlertsConfig defines alert rule evaluation.
type AlertsConfig struct {
	// Rules — path to the file with alert rules in YAML format.
	// Can be empty if alerting is not required.
	Rules string `mapstructure:"rules"`
}

// SnapshotConfig defines batch snapshot recording.
type SnapshotConfig struct {
	// Snapshot log file path (optional)
	File string `mapstructure:"file"`
	// Maximal snapshot file size in MB (default 100)
	Size int `mapstructure:"size"`
	// Number of rotated snapshot files (default 20)
	Amount int `mapstructure:"amount"`
	// History — number of batch summaries kept in memory (default 100)
	History int `mapstructure:"history"`
}

// Validate checks the correctness of the entire application configuration.
// Calls validation for each nested structure and returns the first detected error.
// Returns nil if the configuration is valid.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Server.Validate(); err != nil {
		return err
	}

	if err := c.Datasets.Validate(); err != nil {
		return err
	}

	if err := c.Readings.Validate(); err != nil {
		return err
	}

	if err := c.Scores.Validate(); err != nil {
		return err
	}

	if err := c.Publish.Validate(); err != nil {
		return err
	}

	if err := c.Snapshot.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks the correctness of the logger configuration.
// Verifies that the log level is set and is one of the supported values.
// Supported values: debug, info, warn, warning, error (case-insensitive).
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	return nil
}

// Validate checks the correctness of the server configuration.
// Verifies that the server address is set.
func (n *ServerConfig) Validate() error {
	if n.Address == "" {
		return errors.New("server.address: must be specified")
	}

	return nil
}

// Validate checks the datasets configuration and applies defaults.
func (d *DatasetsConfig) Validate() error {
	if d.BaseURL == "" {
		return errors.New("datasets.base_url: must be specified")
	}
	if _, err := url.Parse(d.BaseURL); err != nil {
		return fmt.Errorf("datasets.base_url: %w", err)
	}

	if d.Ttl == 0 {
		d.Ttl = time.Hour
	}

	return nil
}

// Validate checks the readings configuration and applies defaults.
func (r *ReadingsConfig) Validate() error {
	if r.BaseURL == "" {
		return errors.New("readings.base_url: must be specified")
	}
	if _, err := url.Parse(r.BaseURL); err != nil {
		return fmt.Errorf("readings.base_url: %w", err)
	}

	if r.Ttl == 0 {
		r.Ttl = 10 * time.Minute
	}
	if r.Timeout == 0 {
		r.Timeout = 10 * time.Second
	}

	return nil
}

// Validate applies the score cache default.
func (s *ScoresConfig) Validate() error {
	if s.Ttl == 0 {
		s.Ttl = 10 * time.Minute
	}

	return nil
}

// Validate applies the publish key default. Publishing is optional, so an
// empty address is valid.
func (p *PublishConfig) Validate() error {
	if p.Key == "" {
		p.Key = "district_scores:latest"
	}

	return nil
}

// Validate snapshot parameters
func (s *SnapshotConfig) Validate() error {
	if s.Amount == 0 {
		s.Amount = 20
	}

	if s.Size == 0 {
		s.Size = 100
	}

	if s.History == 0 {
		s.History = 100
	}

	return nil
}

// LoadConfig loads configuration from the specified file using Viper.
// Supports YAML format. Also includes environment variable loading (AutomaticEnv),
// which can override values from the file.
//
// Parameter configPath — path to the configuration file.
//
// Returns a pointer to AppConfig or an error if:
// - the file is not found or inaccessible
// - the configuration has invalid format
// - one of the sections fails validation
func LoadConfig(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
