package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"bitsnake/internal/env"
)

// Config is the root configuration structure
type Config struct {
	Seed    uint64        `yaml:"seed"`
	Engine  EngineConfig  `yaml:"engine"`
	Bench   BenchConfig   `yaml:"bench"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig defines the board
type EngineConfig struct {
	Size int `yaml:"size"`
}

// BenchConfig defines a batch of timed episodes
type BenchConfig struct {
	Episodes int `yaml:"episodes"`
	Workers  int `yaml:"workers"` // 0 means one per CPU
}

// LoggingConfig defines log output
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file and returns a Config. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Engine.Size == 0 {
		cfg.Engine.Size = env.MaxSize
	}
	if cfg.Bench.Episodes == 0 {
		cfg.Bench.Episodes = 10000
	}
	if cfg.Bench.Workers == 0 {
		cfg.Bench.Workers = runtime.NumCPU()
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate checks ranges after defaults are applied
func (c *Config) Validate() error {
	if c.Engine.Size < env.MinSize || c.Engine.Size > env.MaxSize {
		return fmt.Errorf("config validation: engine.size must be between %d and %d, got %d",
			env.MinSize, env.MaxSize, c.Engine.Size)
	}
	if c.Bench.Episodes < 0 {
		return fmt.Errorf("config validation: bench.episodes must not be negative, got %d", c.Bench.Episodes)
	}
	if c.Bench.Workers < 0 {
		return fmt.Errorf("config validation: bench.workers must not be negative, got %d", c.Bench.Workers)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config validation: logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config validation: logging.format %q is not one of text, json", c.Logging.Format)
	}
	return nil
}
