// Package config provides configuration loading and validation for the
// matcher CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents settings that can be loaded from a JSON file. All fields
// are optional; missing values use defaults or must be provided via CLI
// flags or environment variables.
type Config struct {
	// Paths
	Catalog  string `json:"catalog,omitempty"`   // Path to the internship catalog CSV
	ModelDir string `json:"model_dir,omitempty"` // Directory holding persisted model artifacts

	// Matching
	TopN     int `json:"top_n,omitempty"`    // Number of ranked rows to return (default 5)
	Clusters int `json:"clusters,omitempty"` // Target cluster count K (default 5)

	// Behavior
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP server port
	Verbose     bool   `json:"verbose,omitempty"`      // Enable debug logging
}

// Defaults mirrored by the CLI flag defaults.
const (
	DefaultCatalog  = "data/internships.csv"
	DefaultModelDir = "data/model_files"
	DefaultPort     = 8080
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("config error: 'top_n' must be non-negative")
	}
	if c.Clusters < 0 {
		return fmt.Errorf("config error: 'clusters' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	return nil
}

// ApplyDefaults fills zero values with package defaults.
func (c *Config) ApplyDefaults() {
	if c.Catalog == "" {
		c.Catalog = DefaultCatalog
	}
	if c.ModelDir == "" {
		c.ModelDir = DefaultModelDir
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}
