/*
PURPOSE:
  Defines the configuration structure and loading logic for precip-analyzer.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of API hosts, cache behavior, retries, output paths,
    default unit and timezone.
  - The demo workflow tolerates failing steps; that behavior must be a
    visible, intentional option, not a shell accident.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Model exclusion by substring is useful when a provider is flaky.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing config file falls back to defaults.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible (1h cache TTL, 3 retries, continue on error).

USAGE:
  cfg, err := config.Load("precip.yaml")

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Hosts holds the base URLs for the Open-Meteo APIs. Overridable so tests
// (and self-hosted API instances) can point elsewhere.
type Hosts struct {
	Geocoding string `yaml:"geocoding"`
	Archive   string `yaml:"archive"`
	Forecast  string `yaml:"forecast"`
	Ensemble  string `yaml:"ensemble"`
}

// Summary configures the optional AI-written recap of the analysis.
type Summary struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
}

// Config represents the full configuration for precip-analyzer.
type Config struct {
	Unit     string `yaml:"unit"`
	Timezone string `yaml:"timezone"`

	OutputDir  string `yaml:"output_dir"`
	OutputFile string `yaml:"output_file"`

	CacheDir string        `yaml:"cache_dir"`
	CacheTTL time.Duration `yaml:"cache_ttl"`

	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ContinueOnError keeps the run going when a data source fails; only a
	// run where every source failed is fatal.
	ContinueOnError bool `yaml:"continue_on_error"`

	// Exclude is a list of strings to filter model names (substring match)
	Exclude []string `yaml:"exclude"`

	Hosts   Hosts   `yaml:"hosts"`
	Summary Summary `yaml:"summary"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Unit:            "mm",
		Timezone:        "UTC",
		OutputDir:       "",
		OutputFile:      "precip_daily.csv",
		CacheDir:        "",
		CacheTTL:        time.Hour,
		MaxRetries:      3,
		RetryDelay:      2 * time.Second,
		RequestTimeout:  30 * time.Second,
		ContinueOnError: true,
		Hosts: Hosts{
			Geocoding: "https://geocoding-api.open-meteo.com/v1/search",
			Archive:   "https://archive-api.open-meteo.com/v1/archive",
			Forecast:  "https://api.open-meteo.com/v1/forecast",
			Ensemble:  "https://ensemble-api.open-meteo.com/v1/ensemble",
		},
		Summary: Summary{
			Enabled: false,
			Model:   "gpt-3.5-turbo",
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		// Search for defaults
		defaults := []string{"precip.yaml", "precip_analyzer.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			// No config file found, return default
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
