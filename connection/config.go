// Package connection handles named connection configuration and the alias
// registry that maps aliases to configured endpoints.
package connection

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a single named connection.
type Config struct {
	Addresses []string          `envconfig:"GRAIN_ADDRESSES" yaml:"addresses"`
	Username  string            `envconfig:"GRAIN_USERNAME" yaml:"username"`
	Password  string            `envconfig:"GRAIN_PASSWORD" yaml:"password"`
	APIKey    string            `envconfig:"GRAIN_API_KEY" yaml:"api_key"`
	CACert    string            `envconfig:"GRAIN_CA_CERT" yaml:"ca_cert"`
	Timeout   int               `envconfig:"GRAIN_TIMEOUT" yaml:"timeout"` // seconds
	Headers   map[string]string `yaml:"headers"`

	// Log configuration for the connection layer.
	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"GRAIN_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"GRAIN_LOG_FORMAT" yaml:"format"`
}

// Load loads connection configuration from an optional YAML file and
// environment variables, in that order of precedence over the defaults.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv loads connection configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cfg.Addresses = []string{"http://localhost:9200"}
	cfg.Timeout = 10

	cfg.Log = LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if len(c.Addresses) == 0 {
		errs = append(errs, "at least one address is required")
	}
	for _, addr := range c.Addresses {
		if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
			errs = append(errs, fmt.Sprintf("invalid address: %s (must start with http:// or https://)", addr))
		}
	}

	if c.Timeout < 1 {
		errs = append(errs, "timeout must be positive")
	}

	if c.APIKey != "" && (c.Username != "" || c.Password != "") {
		errs = append(errs, "api_key and basic auth are mutually exclusive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Primary returns the first configured address.
func (c *Config) Primary() string {
	if len(c.Addresses) == 0 {
		return ""
	}
	return c.Addresses[0]
}
