// Package config provides configuration loading and management for the
// QSM core. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Runtime controls the worker pool and FFT concurrency.
	Runtime struct {
		// WorkerPoolSize is the configured worker-pool size. No package
		// in this module reads it: parallel.Default is sized from
		// runtime.NumCPU() at load, and cmd/qsmdemo sizes its pool from
		// its -cores flag.
		WorkerPoolSize int `yaml:"workerPoolSize"`

		// FFTThreads is the configured FFT thread count. No package in
		// this module reads it: pkg/fftplan splits each per-axis pass
		// across the pool it is given.
		FFTThreads int `yaml:"fftThreads"`
	} `yaml:"runtime"`

	// Solver holds the default Options fields a CLI entry point seeds
	// before overriding from flags.
	Solver struct {
		// DefaultMethod is one of "tkd", "tsvd", "tikh".
		DefaultMethod string `yaml:"defaultMethod"`

		// DefaultThreshold is the TKD/TSVD threshold.
		DefaultThreshold float64 `yaml:"defaultThreshold"`

		// DefaultLambda is the Tikhonov regularization weight.
		DefaultLambda float64 `yaml:"defaultLambda"`
	} `yaml:"solver"`

	// Output parameters.
	Output struct {
		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`

		// SaveIntermediaryResults determines whether cmd/qsmdemo
		// writes its debug PNG slices.
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Runtime.WorkerPoolSize = runtime.NumCPU()
	cfg.Runtime.FFTThreads = runtime.NumCPU()

	cfg.Solver.DefaultMethod = "tkd"
	cfg.Solver.DefaultThreshold = 0.19
	cfg.Solver.DefaultLambda = 0.05

	cfg.Output.Verbose = true
	cfg.Output.SaveIntermediaryResults = false

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
