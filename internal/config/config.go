// Package config provides unified configuration loading for resonance.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tryfinity/resonance/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config contains all resonance configuration settings. The core node
// primitive takes everything as arguments; this configures the CLI around it.
type Config struct {
	// Simulation contains settings for the per-tick stabilization loop.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and step-trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures the stabilization loop driven by the CLI.
type SimulationConfig struct {
	// Dimensions is the node dimensionality. Default: 11.
	Dimensions int `json:"dimensions" yaml:"dimensions"`

	// Factor is the nominal step size for each stabilization update.
	// Values outside [0, 1] amplify beyond the documented intent. Default: 0.1.
	Factor float64 `json:"factor" yaml:"factor"`

	// Steps is the number of stabilization ticks to run. Default: 50.
	Steps int `json:"steps" yaml:"steps"`

	// Nodes is the number of independent nodes to drive. Nodes never read
	// each other's state. Default: 1.
	Nodes int `json:"nodes" yaml:"nodes"`

	// RandSeed seeds node construction and source generation for
	// reproducible runs. 0 means derive a seed from the current time.
	RandSeed uint64 `json:"rand_seed,omitempty" yaml:"rand_seed,omitempty"`
}

// LoggingConfig configures resonance's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables step-trace logging to .resonance/steps.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Dimensions: constants.DefaultDimensions,
			Factor:     constants.DefaultFactor,
			Steps:      constants.DefaultSteps,
			Nodes:      constants.DefaultNodeCount,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.resonance/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".resonance", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Simulation.Dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive, got %d", c.Simulation.Dimensions)
	}

	if math.IsNaN(c.Simulation.Factor) || math.IsInf(c.Simulation.Factor, 0) {
		return fmt.Errorf("factor must be finite, got %f", c.Simulation.Factor)
	}

	if c.Simulation.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Simulation.Steps)
	}

	if c.Simulation.Nodes < 1 {
		return fmt.Errorf("nodes must be at least 1, got %d", c.Simulation.Nodes)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RESONANCE_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Dimensions = n
		}
	}

	if v := os.Getenv("RESONANCE_FACTOR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Simulation.Factor = f
		}
	}

	if v := os.Getenv("RESONANCE_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Steps = n
		}
	}

	if v := os.Getenv("RESONANCE_NODES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Nodes = n
		}
	}

	if v := os.Getenv("RESONANCE_RAND_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Simulation.RandSeed = n
		}
	}

	if v := os.Getenv("RESONANCE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
