package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Mangle MangleConfig `yaml:"mangle"`
	Audio  AudioConfig  `yaml:"audio"`
	Log    LogConfig    `yaml:"log"`
}

// MangleConfig controls the hit loop and the operation catalog weighting
type MangleConfig struct {
	HitsPerMinute   int                `yaml:"hits_per_minute"`
	HitsPerSecond   int                `yaml:"hits_per_second"` // takes precedence over hits_per_minute when > 0
	BlockRatio      float64            `yaml:"block_ratio"`     // block size as a fraction of one second
	Seed            int64              `yaml:"seed"`            // 0 means time-derived
	RetryFailedHits bool               `yaml:"retry_failed_hits"`
	Weights         map[string]float64 `yaml:"weights"` // per-operation weight overrides
}

// AudioConfig contains audio I/O configuration
type AudioConfig struct {
	Play         bool    `yaml:"play"`
	Volume       float64 `yaml:"volume"`
	LimitSeconds int     `yaml:"limit_seconds"` // 0 means no limit
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty means console only
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Mangle: MangleConfig{
			HitsPerMinute:   180,
			HitsPerSecond:   0,
			BlockRatio:      1.0,
			Seed:            0,
			RetryFailedHits: true,
			Weights:         map[string]float64{},
		},
		Audio: AudioConfig{
			Play:         false,
			Volume:       0.8,
			LimitSeconds: 0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML configuration file, falling back to defaults
// when the file does not exist.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("error reading config: %v", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration to a YAML file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config: %v", err)
	}
	return nil
}

// Validate checks the configuration for values the mangler cannot run with
func (c *Config) Validate() error {
	if c.Mangle.HitsPerMinute < 0 {
		return fmt.Errorf("hits_per_minute must not be negative, got %d", c.Mangle.HitsPerMinute)
	}
	if c.Mangle.HitsPerSecond < 0 {
		return fmt.Errorf("hits_per_second must not be negative, got %d", c.Mangle.HitsPerSecond)
	}
	if c.Mangle.BlockRatio <= 0 {
		return fmt.Errorf("block_ratio must be positive, got %g", c.Mangle.BlockRatio)
	}
	for name, w := range c.Mangle.Weights {
		if w < 0 {
			return fmt.Errorf("weight for %q must not be negative, got %g", name, w)
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("volume must be in [0,1], got %g", c.Audio.Volume)
	}
	if c.Audio.LimitSeconds < 0 {
		return fmt.Errorf("limit_seconds must not be negative, got %d", c.Audio.LimitSeconds)
	}
	return nil
}
